// Package adapters はフォームレコードの永続化アダプターを実装します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"wellness_backend/internal/feature/forms/domain/entity"
)

// recordGorm はGORMを使用したRecordRepositoryの実装です。
// 6種類のフォームコレクションすべてを単一のアダプターで扱います。
type recordGorm struct {
	db *gorm.DB
}

// NewRecordRepository はrecordGormの新しいインスタンスを生成します。
func NewRecordRepository(db *gorm.DB) *recordGorm {
	return &recordGorm{db: db}
}

// CreateOnboarding はオンボーディング回答レコードを挿入します。
func (r *recordGorm) CreateOnboarding(ctx context.Context, record *entity.OnboardingQuestion) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// CreateJournal はジャーナルレコードを挿入します。
func (r *recordGorm) CreateJournal(ctx context.Context, record *entity.Journal) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// CreateMuscleSelection は部位選択レコードを挿入します。
func (r *recordGorm) CreateMuscleSelection(ctx context.Context, record *entity.MuscleSelection) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// CreateJourney はストーリー回答レコードを挿入します。
func (r *recordGorm) CreateJourney(ctx context.Context, record *entity.Journey) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// CreatePostExperience は体験後テキストレコードを挿入します。
func (r *recordGorm) CreatePostExperience(ctx context.Context, record *entity.PostExperience) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// CreateAudio は音声要約レコードを挿入します。
func (r *recordGorm) CreateAudio(ctx context.Context, record *entity.Audio) error {
	return r.db.WithContext(ctx).Create(record).Error
}
