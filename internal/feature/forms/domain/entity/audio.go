package entity

import "time"

// Audio は音声入力から生成された要約レコードを表します。
// Audioフィールドには要約クライアントの出力テキストがそのまま入ります。
type Audio struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint   `gorm:"index;not null" json:"userId"`
	Email  string `gorm:"index;size:255;not null" json:"email"`

	Date string `gorm:"size:32;not null" json:"date"`

	// Audio は要約テキストです。
	Audio string `gorm:"type:text" json:"audio"`

	// Degraded は要約APIの失敗により定型の謝罪文が保存されたことを示します。
	// 成功と失敗を保存内容だけで区別できるようにするためのマーカーです。
	Degraded bool `gorm:"not null;default:false" json:"degraded"`

	CreatedAt time.Time `json:"createdAt"`
}
