package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/config"
	repository "github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisLocker(t *testing.T, wait time.Duration) (*redisLocker, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.LockConfig{TTL: MinTTL, Wait: wait, RetryInterval: time.Millisecond}

	locker := NewRedisLocker(client, cfg).(*redisLocker)
	locker.token = func() string { return "token-1" }

	return locker, mock
}

func TestRedisLockerAcquire(t *testing.T) {
	t.Run("Success - Keys are taken in sorted order", func(t *testing.T) {
		// Arrange
		locker, mock := setupRedisLocker(t, time.Second)

		mock.ExpectSetNX("lock:product:p1", "token-1", MinTTL).SetVal(true)
		mock.ExpectSetNX("lock:user:u1", "token-1", MinTTL).SetVal(true)
		mock.ExpectEval(releaseScript, []string{"lock:user:u1"}, "token-1").SetVal(int64(1))
		mock.ExpectEval(releaseScript, []string{"lock:product:p1"}, "token-1").SetVal(int64(1))

		// Act
		release, err := locker.Acquire(t.Context(), UserKey("u1"), ProductKey("p1"))
		require.NoError(t, err)
		release()
		release()

		// Assert
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Retries while held elsewhere", func(t *testing.T) {
		// Arrange
		locker, mock := setupRedisLocker(t, time.Second)

		mock.ExpectSetNX("lock:user:u1", "token-1", MinTTL).SetVal(false)
		mock.ExpectSetNX("lock:user:u1", "token-1", MinTTL).SetVal(true)
		mock.ExpectEval(releaseScript, []string{"lock:user:u1"}, "token-1").SetVal(int64(1))

		// Act
		release, err := locker.Acquire(t.Context(), UserKey("u1"))
		require.NoError(t, err)
		release()

		// Assert
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Timeout releases what was taken", func(t *testing.T) {
		// Arrange
		locker, mock := setupRedisLocker(t, 0)

		mock.ExpectSetNX("lock:product:p1", "token-1", MinTTL).SetVal(true)
		mock.ExpectSetNX("lock:user:u1", "token-1", MinTTL).SetVal(false)
		mock.ExpectEval(releaseScript, []string{"lock:product:p1"}, "token-1").SetVal(int64(1))

		// Act
		release, err := locker.Acquire(t.Context(), UserKey("u1"), ProductKey("p1"))

		// Assert
		require.ErrorIs(t, err, ErrLockTimeout)
		assert.Nil(t, release)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis error", func(t *testing.T) {
		// Arrange
		locker, mock := setupRedisLocker(t, time.Second)
		redisErr := errors.New("connection refused")

		mock.ExpectSetNX("lock:user:u1", "token-1", MinTTL).SetErr(redisErr)

		// Act
		_, err := locker.Acquire(t.Context(), UserKey("u1"))

		// Assert
		require.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Context cancelled while waiting", func(t *testing.T) {
		// Arrange
		locker, mock := setupRedisLocker(t, time.Minute)
		locker.cfg.RetryInterval = time.Minute
		ctx, cancel := context.WithCancel(t.Context())

		mock.ExpectSetNX("lock:user:u1", "token-1", MinTTL).SetVal(false)

		// Act
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()
		_, err := locker.Acquire(ctx, UserKey("u1"))

		// Assert
		require.ErrorIs(t, err, context.Canceled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisLockerTTL(t *testing.T) {
	t.Run("Success - TTL below a full cart change is raised", func(t *testing.T) {
		client, _ := redismock.NewClientMock()

		locker := NewRedisLocker(client, &config.LockConfig{TTL: 10 * time.Second}).(*redisLocker)

		assert.Equal(t, MinTTL, locker.ttl)
		assert.Greater(t, locker.ttl, 4*repository.DefaultDBTimeout)
	})

	t.Run("Success - Longer TTL is kept", func(t *testing.T) {
		client, _ := redismock.NewClientMock()

		locker := NewRedisLocker(client, &config.LockConfig{TTL: time.Minute}).(*redisLocker)

		assert.Equal(t, time.Minute, locker.ttl)
	})
}
