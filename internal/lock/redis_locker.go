package lock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/config"
	repository "github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lock:"

// MinTTL outlives one cart change held under the lock: four store calls and the
// compensating cart write, each bounded by repository.DefaultDBTimeout.
const MinTTL = 5 * repository.DefaultDBTimeout

// releaseScript deletes the lock only while it still holds our token, so an
// expired lock taken over by another owner is left alone.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`

type redisLocker struct {
	client *redis.Client
	cfg    *config.LockConfig
	ttl    time.Duration
	token  func() string
}

func NewRedisLocker(client *redis.Client, cfg *config.LockConfig) Locker {
	ttl := cfg.TTL
	if ttl < MinTTL {
		slog.Warn("Lock TTL raised to cover a full cart change",
			slog.Duration("configured", cfg.TTL), slog.Duration("ttl", MinTTL))
		ttl = MinTTL
	}

	return &redisLocker{client: client, cfg: cfg, ttl: ttl, token: uuid.NewString}
}

func (l *redisLocker) Acquire(ctx context.Context, keys ...string) (func(), error) {
	token := l.token()
	deadline := time.Now().Add(l.cfg.Wait)
	held := make([]string, 0, len(keys))

	for _, key := range normalize(keys) {
		if err := l.acquireOne(ctx, keyPrefix+key, token, deadline); err != nil {
			l.release(held, token)
			return nil, err
		}
		held = append(held, keyPrefix+key)
	}

	var once sync.Once

	return func() {
		once.Do(func() { l.release(held, token) })
	}, nil
}

func (l *redisLocker) acquireOne(ctx context.Context, key, token string, deadline time.Time) error {
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return nil
		}

		if time.Now().After(deadline) {
			return ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.cfg.RetryInterval):
		}
	}
}

func (l *redisLocker) release(keys []string, token string) {
	// the request context may already be cancelled
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := len(keys) - 1; i >= 0; i-- {
		if err := l.client.Eval(ctx, releaseScript, []string{keys[i]}, token).Err(); err != nil {
			slog.Warn("Failed to release lock", slog.String("key", keys[i]), slog.Any("error", err))
		}
	}
}
