package entity

import "time"

// PostExperience は体験後の振り返りテキストを表します。
type PostExperience struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint   `gorm:"index;not null" json:"userId"`
	Email  string `gorm:"index;size:255;not null" json:"email"`

	Date string `gorm:"size:32;not null" json:"date"`

	PostExperience string `gorm:"type:text" json:"postExperience"`

	CreatedAt time.Time `json:"createdAt"`
}
