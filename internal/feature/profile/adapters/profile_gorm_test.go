package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "wellness_backend/internal/feature/auth/domain/entity"
	"wellness_backend/internal/feature/forms/domain/entity"
	"wellness_backend/internal/feature/profile/usecase"
)

// setupTestDB はインメモリSQLiteでテスト用DBを初期化します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&authentity.User{},
		&entity.OnboardingQuestion{},
		&entity.Journal{},
		&entity.MuscleSelection{},
		&entity.Journey{},
		&entity.PostExperience{},
		&entity.Audio{},
	)
	require.NoError(t, err)

	return db
}

func TestProfileGorm_FindUserByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&authentity.User{Email: "user@example.com", Password: "hash", Name: "Test User"}).Error)

	t.Run("found", func(t *testing.T) {
		user, err := repo.FindUserByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Test User", user.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindUserByEmail(ctx, "ghost@example.com")
		assert.True(t, errors.Is(err, usecase.ErrUserNotFound))
	})
}

func TestProfileGorm_Latest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	t.Run("no submissions yields nil without error", func(t *testing.T) {
		record, err := repo.LatestJournal(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("latest journal wins by created_at then id", func(t *testing.T) {
		older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		newer := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, db.Create(&entity.Journal{Email: "user@example.com", Medicine: "a", Intention: "x", ExperienceDate: "2024-01-01", CreatedAt: older}).Error)
		require.NoError(t, db.Create(&entity.Journal{Email: "user@example.com", Medicine: "b", Intention: "y", ExperienceDate: "2024-02-01", CreatedAt: newer}).Error)
		// 同時刻のタイはidの大きい方が勝つ
		require.NoError(t, db.Create(&entity.Journal{Email: "user@example.com", Medicine: "c", Intention: "z", ExperienceDate: "2024-02-02", CreatedAt: newer}).Error)

		record, err := repo.LatestJournal(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, "c", record.Medicine)
	})

	t.Run("records of other users are ignored", func(t *testing.T) {
		require.NoError(t, db.Create(&entity.Journal{Email: "other@example.com", Medicine: "zzz", Intention: "q", ExperienceDate: "2024-03-01"}).Error)

		record, err := repo.LatestJournal(ctx, "user@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "zzz", record.Medicine)
	})
}

func TestProfileGorm_All(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	t.Run("empty collection yields empty slice", func(t *testing.T) {
		records, err := repo.AllAudios(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("history is returned in insertion order", func(t *testing.T) {
		for _, date := range []string{"2024-01-10", "2024-02-20", "2024-03-30"} {
			require.NoError(t, db.Create(&entity.Journal{Email: "user@example.com", Medicine: "m", Intention: "i", ExperienceDate: date}).Error)
		}

		records, err := repo.AllJournals(ctx, "user@example.com")
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "2024-01-10", records[0].ExperienceDate)
		assert.Equal(t, "2024-03-30", records[2].ExperienceDate)
	})

	t.Run("JSON columns survive the round trip", func(t *testing.T) {
		require.NoError(t, db.Create(&entity.MuscleSelection{
			Email:           "user@example.com",
			Date:            "2024-03-05",
			SelectedMuscles: entity.MuscleList{entity.MuscleChest},
		}).Error)

		records, err := repo.AllMuscleSelections(ctx, "user@example.com")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, entity.MuscleList{entity.MuscleChest}, records[0].SelectedMuscles)
	})
}
