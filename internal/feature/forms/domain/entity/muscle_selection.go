package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Muscle は身体部位の閉じた列挙型です。
// 語彙に含まれないトークンはParseMuscleで構築時に拒否されます。
type Muscle string

// 身体部位の語彙。
const (
	MuscleChest         Muscle = "CHEST"
	MuscleObliques      Muscle = "OBLIQUES"
	MuscleAbs           Muscle = "ABS"
	MuscleBiceps        Muscle = "BICEPS"
	MuscleTriceps       Muscle = "TRICEPS"
	MuscleNeck          Muscle = "NECK"
	MuscleFrontDeltoids Muscle = "FRONT_DELTOIDS"
	MuscleHead          Muscle = "HEAD"
	MuscleAbductors     Muscle = "ABDUCTORS"
	MuscleQuadriceps    Muscle = "QUADRICEPS"
	MuscleKnees         Muscle = "KNEES"
	MuscleCalves        Muscle = "CALVES"
	MuscleForearm       Muscle = "FOREARM"
	MuscleTrapezius     Muscle = "TRAPEZIUS"
	MuscleBackDeltoids  Muscle = "BACK_DELTOIDS"
	MuscleUpperBack     Muscle = "UPPER_BACK"
	MuscleLowerBack     Muscle = "LOWER_BACK"
	MuscleGluteal       Muscle = "GLUTEAL"
	MuscleHamstring     Muscle = "HAMSTRING"
	MuscleLeftSoleus    Muscle = "LEFT_SOLEUS"
	MuscleRightSoleus   Muscle = "RIGHT_SOLEUS"
)

// validMuscles は有効なトークンの集合です。
var validMuscles = map[Muscle]struct{}{
	MuscleChest: {}, MuscleObliques: {}, MuscleAbs: {}, MuscleBiceps: {},
	MuscleTriceps: {}, MuscleNeck: {}, MuscleFrontDeltoids: {}, MuscleHead: {},
	MuscleAbductors: {}, MuscleQuadriceps: {}, MuscleKnees: {}, MuscleCalves: {},
	MuscleForearm: {}, MuscleTrapezius: {}, MuscleBackDeltoids: {},
	MuscleUpperBack: {}, MuscleLowerBack: {}, MuscleGluteal: {},
	MuscleHamstring: {}, MuscleLeftSoleus: {}, MuscleRightSoleus: {},
}

// ParseMuscle はトークンをトリム・大文字化して語彙と照合します。
// 語彙に含まれない場合は正規化済みトークンとfalseを返します。
func ParseMuscle(token string) (Muscle, bool) {
	m := Muscle(strings.ToUpper(strings.TrimSpace(token)))
	_, ok := validMuscles[m]
	return m, ok
}

// MuscleList はJSONカラムとして永続化される部位のリストです。
type MuscleList []Muscle

// Value はリストをJSONにシリアライズします（database/sql/driver.Valuer）。
func (l MuscleList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan はJSONカラムからリストを復元します（database/sql.Scanner）。
func (l *MuscleList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for MuscleList: %T", value)
	}
}

// MuscleSelection は1回の部位選択の送信を表します。
// 送信のたびに新しいレコードが作られ、更新されることはありません。
type MuscleSelection struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint   `gorm:"index;not null" json:"userId"`
	Email  string `gorm:"index;size:255;not null" json:"email"`

	Date string `gorm:"size:32;not null" json:"date"`

	SelectedMuscles MuscleList `gorm:"type:jsonb;not null" json:"selectedMuscles"`

	CreatedAt time.Time `json:"createdAt"`
}
