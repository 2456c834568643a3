package adapters

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness_backend/internal/feature/auth/domain/entity"
	"wellness_backend/internal/feature/auth/usecase"
)

func TestNewSessionRedis_DefaultPrefix(t *testing.T) {
	t.Parallel()

	r := NewSessionRedis(nil, "")
	assert.Equal(t, "session", r.prefix, "empty prefix should default to 'session'")
	assert.Equal(t, "session:abc", r.sessionKey("abc"))
	assert.Equal(t, "session:user:7", r.userSessionsKey(7))
}

func TestSessionRedis_FindByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		stored := &entity.Session{
			ID:        "tok-1",
			UserID:    7,
			CreatedAt: time.Now().Truncate(time.Second),
			ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second),
		}
		data, err := json.Marshal(stored)
		require.NoError(t, err)

		mock.ExpectGet("session:tok-1").SetVal(string(data))

		repo := NewSessionRedis(rdb, "session")
		found, err := repo.FindByID(context.Background(), "tok-1")

		require.NoError(t, err)
		assert.Equal(t, stored.ID, found.ID)
		assert.Equal(t, stored.UserID, found.UserID)
		assert.True(t, found.IsValid(), "stored session should be valid")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		mock.ExpectGet("session:missing").RedisNil()

		repo := NewSessionRedis(rdb, "session")
		_, err := repo.FindByID(context.Background(), "missing")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionRedis_Create_AlreadyExpired(t *testing.T) {
	t.Parallel()

	rdb, _ := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	repo := NewSessionRedis(rdb, "session")

	session := &entity.Session{
		ID:        "tok-expired",
		UserID:    1,
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	err := repo.Create(context.Background(), session)
	assert.Error(t, err, "creating an already expired session should fail")
}

func TestSessionRedis_CountByUserID_PrunesExpired(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	valid := &entity.Session{
		ID:        "tok-valid",
		UserID:    7,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	validData, err := json.Marshal(valid)
	require.NoError(t, err)

	mock.ExpectSMembers("session:user:7").SetVal([]string{"tok-valid", "tok-gone"})
	mock.ExpectGet("session:tok-valid").SetVal(string(validData))
	mock.ExpectGet("session:tok-gone").RedisNil()
	mock.ExpectSRem("session:user:7", "tok-gone").SetVal(1)

	repo := NewSessionRedis(rdb, "session")
	count, err := repo.CountByUserID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "expired session should not be counted")
	assert.NoError(t, mock.ExpectationsWereMet())
}
