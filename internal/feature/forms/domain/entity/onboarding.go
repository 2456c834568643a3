// Package entity はフォームレコードのドメインエンティティを定義します。
// 各レコードは追記専用で、作成後に更新・削除されることはありません。
package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// QuestionAnswer は質問と回答の1組を表します。
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuestionAnswerList はJSONカラムとして永続化される質問回答のリストです。
type QuestionAnswerList []QuestionAnswer

// Value はリストをJSONにシリアライズします（database/sql/driver.Valuer）。
func (l QuestionAnswerList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan はJSONカラムからリストを復元します（database/sql.Scanner）。
func (l *QuestionAnswerList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for QuestionAnswerList: %T", value)
	}
}

// OnboardingQuestion はオンボーディング時の質問回答一式を表します。
type OnboardingQuestion struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// UserID は検証済みユーザーの参照です。メール文字列だけに頼らず、
	// 書き込み時に認証済み識別情報から設定されます。
	UserID uint   `gorm:"index;not null" json:"userId"`
	Email  string `gorm:"index;size:255;not null" json:"email"`

	Responses QuestionAnswerList `gorm:"type:jsonb;not null" json:"responses"`

	CreatedAt time.Time `json:"createdAt"`
}
