package entity

import "time"

// Journal は1回分のジャーナルエントリを表します。
// ExperienceDateは"YYYY-MM-DD"形式の文字列として保存されます。
type Journal struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint   `gorm:"index;not null" json:"userId"`
	Email  string `gorm:"index;size:255;not null" json:"email"`

	Medicine  string `gorm:"size:255;not null" json:"medicine"`
	Intention string `gorm:"size:1024;not null" json:"intention"`

	// ExperienceDate は"YYYY-MM-DD"に正規化された体験日です。
	ExperienceDate string `gorm:"size:10;not null" json:"experienceDate"`

	CurrentState   string `gorm:"type:text" json:"currentState"`
	PostExperience string `gorm:"type:text" json:"postExperience"`

	CreatedAt time.Time `json:"createdAt"`
}
