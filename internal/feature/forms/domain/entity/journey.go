package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Level はストーリー回答の1レベル（タイトルと質問回答の組）を表します。
type Level struct {
	Title           string           `json:"title"`
	QuestionAnswers []QuestionAnswer `json:"questionAnswers"`
}

// LevelList はJSONカラムとして永続化されるレベルのリストです。
type LevelList []Level

// Value はリストをJSONにシリアライズします（database/sql/driver.Valuer）。
func (l LevelList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan はJSONカラムからリストを復元します（database/sql.Scanner）。
func (l *LevelList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for LevelList: %T", value)
	}
}

// Journey はストーリー（ジャーニー）回答一式を表します。
type Journey struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint   `gorm:"index;not null" json:"userId"`
	Email  string `gorm:"index;size:255;not null" json:"email"`

	Date string `gorm:"size:32;not null" json:"date"`

	Levels LevelList `gorm:"type:jsonb;not null" json:"levels"`

	CreatedAt time.Time `json:"createdAt"`
}
