// Package adapters はプロフィール集約の読み取りアダプターを実装します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	authentity "wellness_backend/internal/feature/auth/domain/entity"
	"wellness_backend/internal/feature/forms/domain/entity"
	"wellness_backend/internal/feature/profile/usecase"
)

// latestOrder は最新レコードの決定順序です。
// created_atの同時刻タイはidで解決し、結果を決定的にします。
const latestOrder = "created_at DESC, id DESC"

// profileGorm はGORMを使用したProfileRepositoryの実装です。
type profileGorm struct {
	db *gorm.DB
}

// NewProfileRepository はprofileGormの新しいインスタンスを生成します。
func NewProfileRepository(db *gorm.DB) *profileGorm {
	return &profileGorm{db: db}
}

// FindUserByEmail はメールアドレスでユーザーを検索します。
func (r *profileGorm) FindUserByEmail(ctx context.Context, email string) (*authentity.User, error) {
	var user authentity.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// LatestOnboarding は最新のオンボーディング回答を返します。存在しない場合は (nil, nil) です。
func (r *profileGorm) LatestOnboarding(ctx context.Context, email string) (*entity.OnboardingQuestion, error) {
	var record entity.OnboardingQuestion
	if ok, err := r.latest(ctx, email, &record); !ok {
		return nil, err
	}
	return &record, nil
}

// LatestJournal は最新のジャーナルを返します。
func (r *profileGorm) LatestJournal(ctx context.Context, email string) (*entity.Journal, error) {
	var record entity.Journal
	if ok, err := r.latest(ctx, email, &record); !ok {
		return nil, err
	}
	return &record, nil
}

// LatestMuscleSelection は最新の部位選択を返します。
func (r *profileGorm) LatestMuscleSelection(ctx context.Context, email string) (*entity.MuscleSelection, error) {
	var record entity.MuscleSelection
	if ok, err := r.latest(ctx, email, &record); !ok {
		return nil, err
	}
	return &record, nil
}

// LatestJourney は最新のストーリー回答を返します。
func (r *profileGorm) LatestJourney(ctx context.Context, email string) (*entity.Journey, error) {
	var record entity.Journey
	if ok, err := r.latest(ctx, email, &record); !ok {
		return nil, err
	}
	return &record, nil
}

// LatestPostExperience は最新の体験後テキストを返します。
func (r *profileGorm) LatestPostExperience(ctx context.Context, email string) (*entity.PostExperience, error) {
	var record entity.PostExperience
	if ok, err := r.latest(ctx, email, &record); !ok {
		return nil, err
	}
	return &record, nil
}

// LatestAudio は最新の音声要約を返します。
func (r *profileGorm) LatestAudio(ctx context.Context, email string) (*entity.Audio, error) {
	var record entity.Audio
	if ok, err := r.latest(ctx, email, &record); !ok {
		return nil, err
	}
	return &record, nil
}

// latest はコレクションから最新の1件を読み込みます。
// 戻り値は (見つかったか, エラー) で、不在はエラーにしません。
func (r *profileGorm) latest(ctx context.Context, email string, dest any) (bool, error) {
	err := r.db.WithContext(ctx).Where("email = ?", email).Order(latestOrder).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AllJournals は全ジャーナルを作成順に返します。
func (r *profileGorm) AllJournals(ctx context.Context, email string) ([]entity.Journal, error) {
	var records []entity.Journal
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("id ASC").Find(&records).Error
	return records, err
}

// AllMuscleSelections は全部位選択を作成順に返します。
func (r *profileGorm) AllMuscleSelections(ctx context.Context, email string) ([]entity.MuscleSelection, error) {
	var records []entity.MuscleSelection
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("id ASC").Find(&records).Error
	return records, err
}

// AllJourneys は全ストーリー回答を作成順に返します。
func (r *profileGorm) AllJourneys(ctx context.Context, email string) ([]entity.Journey, error) {
	var records []entity.Journey
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("id ASC").Find(&records).Error
	return records, err
}

// AllPostExperiences は全体験後テキストを作成順に返します。
func (r *profileGorm) AllPostExperiences(ctx context.Context, email string) ([]entity.PostExperience, error) {
	var records []entity.PostExperience
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("id ASC").Find(&records).Error
	return records, err
}

// AllAudios は全音声要約を作成順に返します。
func (r *profileGorm) AllAudios(ctx context.Context, email string) ([]entity.Audio, error) {
	var records []entity.Audio
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("id ASC").Find(&records).Error
	return records, err
}
