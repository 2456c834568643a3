// Package dto はフォーム保存APIのリクエストDTOを定義します。
package dto

// QuestionAnswerReq は質問と回答の1組です。
type QuestionAnswerReq struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

// SaveAnswersReq はオンボーディング回答保存のリクエストです。
type SaveAnswersReq struct {
	Responses []QuestionAnswerReq `json:"responses" binding:"required,min=1,dive"`
}

// JournalEntryReq はジャーナルエントリ本体です。
// 必須チェックはユースケース側で欠落フィールドをまとめて報告するため、
// ここではバインドのみ行います。
type JournalEntryReq struct {
	Medicine       string `json:"medicine"`
	Intention      string `json:"intention"`
	ExperienceDate string `json:"experienceDate"`
	CurrentState   string `json:"currentState"`
	PostExperience string `json:"postExperience"`
}

// SaveJournalReq はジャーナル保存のリクエストです。
type SaveJournalReq struct {
	JournalEntry JournalEntryReq `json:"journalEntry" binding:"required"`
}

// SaveMusclesReq は部位選択保存のリクエストです。
type SaveMusclesReq struct {
	SelectedMuscles []string `json:"selectedMuscles" binding:"required,min=1"`
	Date            string   `json:"date" binding:"required"`
}

// LevelReq はストーリー回答の1レベルです。
type LevelReq struct {
	Title           string              `json:"title" binding:"required"`
	QuestionAnswers []QuestionAnswerReq `json:"questionAnswers" binding:"required,min=1,dive"`
}

// SaveStoryReq はストーリー回答保存のリクエストです。
type SaveStoryReq struct {
	Date   string     `json:"date" binding:"required"`
	Levels []LevelReq `json:"levels" binding:"required,min=1,dive"`
}

// PostExperienceEntryReq は体験後テキスト本体です。
type PostExperienceEntryReq struct {
	PostExperience string `json:"postExperience"`
}

// SavePostExperienceReq は体験後テキスト保存のリクエストです。
type SavePostExperienceReq struct {
	JournalEntry PostExperienceEntryReq `json:"journalEntry" binding:"required"`
	Date         string                 `json:"date" binding:"required"`
}

// SaveAudioReq は音声テキスト要約保存のリクエストです。
type SaveAudioReq struct {
	PostExperience string `json:"postExperience" binding:"required"`
	Date           string `json:"date" binding:"required"`
}
