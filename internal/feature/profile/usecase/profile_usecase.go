package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	authentity "wellness_backend/internal/feature/auth/domain/entity"
	"wellness_backend/internal/feature/forms/domain/entity"
)

// Profile はユーザーの全フォーム履歴を集約したバンドルです。
// 単数フィールドは各コレクションの最新レコード（存在しない場合はnull）、
// Allフィールドは作成順の全履歴です。
type Profile struct {
	User *authentity.User `json:"user"`

	// Dates は全ジャーナルの体験日を作成順に並べたリストです。
	Dates []string `json:"dates"`

	JournalAllData []entity.Journal `json:"journalAllData"`

	OnboardingQuestion *entity.OnboardingQuestion `json:"onboardingQuestion"`
	Journals           *entity.Journal            `json:"journals"`
	MuscleSelections   *entity.MuscleSelection    `json:"muscleSelections"`
	Journeys           *entity.Journey            `json:"journeys"`
	PostExperiences    *entity.PostExperience     `json:"postExperiences"`
	Audios             *entity.Audio              `json:"audios"`

	MuscleSelectionsAll []entity.MuscleSelection `json:"muscleSelectionsAll"`
	JourneysAll         []entity.Journey         `json:"journeysAll"`
	PostExperiencesAll  []entity.PostExperience  `json:"postExperiencesAll"`
	AudiosAll           []entity.Audio           `json:"audiosAll"`
}

// ProfileRepository はプロフィール集約に必要な読み取りを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
// Latest系はレコードが存在しない場合に (nil, nil) を返します。
type ProfileRepository interface {
	FindUserByEmail(ctx context.Context, email string) (*authentity.User, error)

	LatestOnboarding(ctx context.Context, email string) (*entity.OnboardingQuestion, error)
	LatestJournal(ctx context.Context, email string) (*entity.Journal, error)
	LatestMuscleSelection(ctx context.Context, email string) (*entity.MuscleSelection, error)
	LatestJourney(ctx context.Context, email string) (*entity.Journey, error)
	LatestPostExperience(ctx context.Context, email string) (*entity.PostExperience, error)
	LatestAudio(ctx context.Context, email string) (*entity.Audio, error)

	AllJournals(ctx context.Context, email string) ([]entity.Journal, error)
	AllMuscleSelections(ctx context.Context, email string) ([]entity.MuscleSelection, error)
	AllJourneys(ctx context.Context, email string) ([]entity.Journey, error)
	AllPostExperiences(ctx context.Context, email string) ([]entity.PostExperience, error)
	AllAudios(ctx context.Context, email string) ([]entity.Audio, error)
}

// BundleCache は組み立て済みプロフィールのキャッシュを抽象化します。
// 実装はベストエフォートであり、失敗しても集約読み取りは続行されます。
type BundleCache interface {
	Get(ctx context.Context, email string) ([]byte, bool)
	Set(ctx context.Context, email string, bundle []byte)
}

// profileUsecase はプロフィール集約のユースケースを実装します。
type profileUsecase struct {
	repo  ProfileRepository
	cache BundleCache
}

// NewProfileUsecase はprofileUsecaseの新しいインスタンスを生成します。
func NewProfileUsecase(repo ProfileRepository, cache BundleCache) *profileUsecase {
	return &profileUsecase{repo: repo, cache: cache}
}

// GetProfile は指定メールアドレスのプロフィールバンドルを返します。
// キャッシュヒット時はDBを読まず、ミス時は組み立て後にキャッシュへ格納します。
func (u *profileUsecase) GetProfile(ctx context.Context, email string) (*Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	if cached, ok := u.cache.Get(ctx, email); ok {
		var profile Profile
		if err := json.Unmarshal(cached, &profile); err == nil {
			return &profile, nil
		}
		// 壊れたキャッシュエントリは無視して組み立て直す
		slog.Warn("discarding malformed cached profile", "email", email)
	}

	user, err := u.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	profile, err := u.assemble(ctx, email, user)
	if err != nil {
		return nil, err
	}

	if bundle, err := json.Marshal(profile); err == nil {
		u.cache.Set(ctx, email, bundle)
	}
	return profile, nil
}

// assemble は11個の独立した読み取りを実行してバンドルを構築します。
// 存在しないコレクションはnull（単数）または空リスト（All系）になります。
func (u *profileUsecase) assemble(ctx context.Context, email string, user *authentity.User) (*Profile, error) {
	profile := &Profile{
		User:                user,
		Dates:               []string{},
		JournalAllData:      []entity.Journal{},
		MuscleSelectionsAll: []entity.MuscleSelection{},
		JourneysAll:         []entity.Journey{},
		PostExperiencesAll:  []entity.PostExperience{},
		AudiosAll:           []entity.Audio{},
	}

	var err error
	if profile.OnboardingQuestion, err = u.repo.LatestOnboarding(ctx, email); err != nil {
		return nil, err
	}
	if profile.Journals, err = u.repo.LatestJournal(ctx, email); err != nil {
		return nil, err
	}
	if profile.MuscleSelections, err = u.repo.LatestMuscleSelection(ctx, email); err != nil {
		return nil, err
	}
	if profile.Journeys, err = u.repo.LatestJourney(ctx, email); err != nil {
		return nil, err
	}
	if profile.PostExperiences, err = u.repo.LatestPostExperience(ctx, email); err != nil {
		return nil, err
	}
	if profile.Audios, err = u.repo.LatestAudio(ctx, email); err != nil {
		return nil, err
	}

	journals, err := u.repo.AllJournals(ctx, email)
	if err != nil {
		return nil, err
	}
	if journals != nil {
		profile.JournalAllData = journals
	}
	for _, j := range journals {
		profile.Dates = append(profile.Dates, j.ExperienceDate)
	}

	if all, err := u.repo.AllMuscleSelections(ctx, email); err != nil {
		return nil, err
	} else if all != nil {
		profile.MuscleSelectionsAll = all
	}
	if all, err := u.repo.AllJourneys(ctx, email); err != nil {
		return nil, err
	} else if all != nil {
		profile.JourneysAll = all
	}
	if all, err := u.repo.AllPostExperiences(ctx, email); err != nil {
		return nil, err
	} else if all != nil {
		profile.PostExperiencesAll = all
	}
	if all, err := u.repo.AllAudios(ctx, email); err != nil {
		return nil, err
	} else if all != nil {
		profile.AudiosAll = all
	}

	return profile, nil
}
