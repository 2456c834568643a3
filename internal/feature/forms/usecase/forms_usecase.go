package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wellness_backend/internal/feature/forms/domain/entity"
)

const (
	// apologyMessage は要約APIが失敗した場合に保存される定型文です。
	apologyMessage = "I'm sorry, but there was an error processing your request. Please try again."

	// summarizeTimeout は要約API呼び出しの上限時間です。
	summarizeTimeout = 30 * time.Second
)

// RecordRepository はフォームレコードの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
// 各Createは単一レコードの挿入であり、部分的な永続化は発生しません。
type RecordRepository interface {
	CreateOnboarding(ctx context.Context, record *entity.OnboardingQuestion) error
	CreateJournal(ctx context.Context, record *entity.Journal) error
	CreateMuscleSelection(ctx context.Context, record *entity.MuscleSelection) error
	CreateJourney(ctx context.Context, record *entity.Journey) error
	CreatePostExperience(ctx context.Context, record *entity.PostExperience) error
	CreateAudio(ctx context.Context, record *entity.Audio) error
}

// Summarizer は自由テキストを要約する外部クライアントを抽象化します。
type Summarizer interface {
	// Summarize は入力テキストの要約を返します。
	Summarize(ctx context.Context, text string) (string, error)
}

// ProfileInvalidator はユーザーのプロフィールキャッシュを無効化します。
// 各保存の成功後に呼ばれ、次回の集約読み取りに新レコードを反映させます。
type ProfileInvalidator interface {
	Invalidate(ctx context.Context, email string)
}

// JournalInput はジャーナル保存の入力です。
type JournalInput struct {
	Medicine       string
	Intention      string
	ExperienceDate string
	CurrentState   string
	PostExperience string
}

// formsUsecase はフォームレコード保存のユースケースを実装します。
type formsUsecase struct {
	records     RecordRepository
	summarizer  Summarizer
	invalidator ProfileInvalidator
}

// NewFormsUsecase はformsUsecaseの新しいインスタンスを生成します。
func NewFormsUsecase(records RecordRepository, summarizer Summarizer, invalidator ProfileInvalidator) *formsUsecase {
	return &formsUsecase{
		records:     records,
		summarizer:  summarizer,
		invalidator: invalidator,
	}
}

// parseDate は日付文字列を"YYYY-MM-DD"に正規化します。
// "2006-01-02"形式とRFC3339形式を受け付けます。
func parseDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("date is required")
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.Format("2006-01-02"), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Format("2006-01-02"), nil
	}
	return "", fmt.Errorf("invalid date %q", value)
}

// SaveOnboarding はオンボーディング回答を保存します。
func (u *formsUsecase) SaveOnboarding(ctx context.Context, userID uint, email string, responses []entity.QuestionAnswer) (*entity.OnboardingQuestion, error) {
	if len(responses) == 0 {
		return nil, newValidationError("responses are required and must be a non-empty array")
	}
	for i, qa := range responses {
		if strings.TrimSpace(qa.Question) == "" || strings.TrimSpace(qa.Answer) == "" {
			return nil, newValidationError(fmt.Sprintf("responses[%d] must contain a question and an answer", i))
		}
	}

	record := &entity.OnboardingQuestion{
		UserID:    userID,
		Email:     email,
		Responses: responses,
	}
	if err := u.records.CreateOnboarding(ctx, record); err != nil {
		return nil, err
	}
	u.invalidator.Invalidate(ctx, email)
	return record, nil
}

// SaveJournal はジャーナルエントリを保存します。
// 必須フィールドの欠落はすべてまとめて報告されます。
func (u *formsUsecase) SaveJournal(ctx context.Context, userID uint, email string, input JournalInput) (*entity.Journal, error) {
	var missing []string
	if strings.TrimSpace(input.Medicine) == "" {
		missing = append(missing, "medicine")
	}
	if strings.TrimSpace(input.Intention) == "" {
		missing = append(missing, "intention")
	}
	if strings.TrimSpace(input.ExperienceDate) == "" {
		missing = append(missing, "experienceDate")
	}
	if len(missing) > 0 {
		return nil, newValidationError("missing required fields: " + strings.Join(missing, ", "))
	}

	experienceDate, err := parseDate(input.ExperienceDate)
	if err != nil {
		return nil, newValidationError("invalid experience date")
	}

	record := &entity.Journal{
		UserID:         userID,
		Email:          email,
		Medicine:       strings.TrimSpace(input.Medicine),
		Intention:      strings.TrimSpace(input.Intention),
		ExperienceDate: experienceDate,
		CurrentState:   input.CurrentState,
		PostExperience: input.PostExperience,
	}
	if err := u.records.CreateJournal(ctx, record); err != nil {
		return nil, err
	}
	u.invalidator.Invalidate(ctx, email)
	return record, nil
}

// SaveMuscles は部位選択を保存します。
// トークンはトリム・大文字化され、語彙にないものはすべてまとめて報告されます。
func (u *formsUsecase) SaveMuscles(ctx context.Context, userID uint, email, date string, tokens []string) (*entity.MuscleSelection, error) {
	if len(tokens) == 0 {
		return nil, newValidationError("selected muscles must be a non-empty array")
	}
	normalizedDate, err := parseDate(date)
	if err != nil {
		return nil, newValidationError("invalid date")
	}

	muscles := make(entity.MuscleList, 0, len(tokens))
	var invalid []string
	for _, token := range tokens {
		m, ok := entity.ParseMuscle(token)
		if !ok {
			invalid = append(invalid, string(m))
			continue
		}
		muscles = append(muscles, m)
	}
	if len(invalid) > 0 {
		return nil, newValidationError("invalid muscles: " + strings.Join(invalid, ", "))
	}

	record := &entity.MuscleSelection{
		UserID:          userID,
		Email:           email,
		Date:            normalizedDate,
		SelectedMuscles: muscles,
	}
	if err := u.records.CreateMuscleSelection(ctx, record); err != nil {
		return nil, err
	}
	u.invalidator.Invalidate(ctx, email)
	return record, nil
}

// SaveJourney はストーリー回答を保存します。
func (u *formsUsecase) SaveJourney(ctx context.Context, userID uint, email, date string, levels []entity.Level) (*entity.Journey, error) {
	if len(levels) == 0 {
		return nil, newValidationError("levels are required and must be a non-empty array")
	}
	for i, level := range levels {
		if strings.TrimSpace(level.Title) == "" {
			return nil, newValidationError(fmt.Sprintf("levels[%d] must have a title", i))
		}
		if len(level.QuestionAnswers) == 0 {
			return nil, newValidationError(fmt.Sprintf("levels[%d] must contain question answers", i))
		}
	}
	normalizedDate, err := parseDate(date)
	if err != nil {
		return nil, newValidationError("invalid date")
	}

	record := &entity.Journey{
		UserID: userID,
		Email:  email,
		Date:   normalizedDate,
		Levels: levels,
	}
	if err := u.records.CreateJourney(ctx, record); err != nil {
		return nil, err
	}
	u.invalidator.Invalidate(ctx, email)
	return record, nil
}

// SavePostExperience は体験後の振り返りテキストを保存します。
func (u *formsUsecase) SavePostExperience(ctx context.Context, userID uint, email, date, text string) (*entity.PostExperience, error) {
	normalizedDate, err := parseDate(date)
	if err != nil {
		return nil, newValidationError("invalid date")
	}

	record := &entity.PostExperience{
		UserID:         userID,
		Email:          email,
		Date:           normalizedDate,
		PostExperience: text,
	}
	if err := u.records.CreatePostExperience(ctx, record); err != nil {
		return nil, err
	}
	u.invalidator.Invalidate(ctx, email)
	return record, nil
}

// SaveAudio は自由テキストを要約して保存します。
// 要約APIが失敗した場合でもレコードは保存されます。その際は定型の
// 謝罪文とDegradedマーカーが保存され、実際の失敗理由はログに残ります。
func (u *formsUsecase) SaveAudio(ctx context.Context, userID uint, email, date, text string) (*entity.Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, newValidationError("postExperience text is required")
	}
	normalizedDate, err := parseDate(date)
	if err != nil {
		return nil, newValidationError("invalid date")
	}

	summary, degraded := "", false
	if u.summarizer == nil {
		slog.Error("no summarizer configured, storing degraded record", "email", email)
		summary, degraded = apologyMessage, true
	} else {
		summarizeCtx, cancel := context.WithTimeout(ctx, summarizeTimeout)
		defer cancel()
		if s, err := u.summarizer.Summarize(summarizeCtx, text); err != nil {
			slog.Error("summarization failed, storing degraded record", "error", err, "email", email)
			summary, degraded = apologyMessage, true
		} else {
			summary = s
		}
	}

	record := &entity.Audio{
		UserID:   userID,
		Email:    email,
		Date:     normalizedDate,
		Audio:    summary,
		Degraded: degraded,
	}
	if err := u.records.CreateAudio(ctx, record); err != nil {
		return nil, err
	}
	u.invalidator.Invalidate(ctx, email)
	return record, nil
}
