package repository

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/config"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLoginRateLimit(t *testing.T) {
	cfg := config.RateConfig{MaxAttempts: 3, WindowSize: time.Minute}
	now := time.Unix(1_700_000_100, 0)
	key := "login_attempts:rubel"
	windowStart := strconv.FormatInt(now.Unix()-60, 10)

	newRepo := func() (*redisRepository, redismock.ClientMock) {
		client, mock := redismock.NewClientMock()
		repo := NewRateLimitRepo(client, cfg).(*redisRepository)
		repo.now = func() time.Time { return now }
		return repo, mock
	}

	expectPipeline := func(mock redismock.ClientMock, count int64) {
		mock.ExpectZRemRangeByScore(key, "0", windowStart).SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now.Unix()), Member: now.UnixNano()}).SetVal(1)
		mock.ExpectZCard(key).SetVal(count)
		mock.ExpectExpire(key, time.Minute).SetVal(true)
	}

	t.Run("Success - Within limit", func(t *testing.T) {
		repo, mock := newRepo()
		expectPipeline(mock, 2)

		result, err := repo.CheckLoginRateLimit(t.Context(), "rubel")

		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 1, result.Remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Blocked - Over limit", func(t *testing.T) {
		repo, mock := newRepo()
		expectPipeline(mock, 4)
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(now.Unix() - 45), Member: "first"}})

		result, err := repo.CheckLoginRateLimit(t.Context(), "rubel")

		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, 15*time.Second, result.RetryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Pipeline error", func(t *testing.T) {
		repo, mock := newRepo()
		mock.ExpectZRemRangeByScore(key, "0", windowStart).SetErr(errors.New("connection refused"))

		_, err := repo.CheckLoginRateLimit(t.Context(), "rubel")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis pipeline error")
	})
}

func TestResetLoginAttempts(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRateLimitRepo(client, config.RateConfig{MaxAttempts: 3, WindowSize: time.Minute})

	mock.ExpectDel("login_attempts:rubel").SetVal(1)

	require.NoError(t, repo.ResetLoginAttempts(t.Context(), "rubel"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
