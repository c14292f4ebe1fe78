package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ReadThrough serves values from a Cache and collapses concurrent misses for
// the same key into a single load. A load that overlaps an Invalidate of its
// key never leaves its value in the cache.
type ReadThrough struct {
	cache Cache
	group singleflight.Group
	ttl   time.Duration

	mu          sync.Mutex
	generations map[string]uint64
}

func NewReadThrough(c Cache, ttl time.Duration) *ReadThrough {
	return &ReadThrough{cache: c, ttl: ttl, generations: make(map[string]uint64)}
}

func (r *ReadThrough) generation(key string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.generations[key]
}

// Fetch returns the cached value for key, or calls load and caches its result.
// Cache failures are logged and never fail the read.
func Fetch[T any](ctx context.Context, r *ReadThrough, key string, load func(ctx context.Context) (T, error)) (T, bool, error) {
	var cached T

	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.WarnContext(ctx, "Cache read failed", slog.String("key", key), slog.Any("error", err))
	}
	if found {
		return cached, true, nil
	}

	value, err, _ := r.group.Do(key, func() (any, error) {
		gen := r.generation(key)

		fresh, err := load(ctx)
		if err != nil {
			return fresh, err
		}

		r.store(ctx, key, fresh, gen)

		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	fresh, ok := value.(T)
	if !ok {
		var zero T
		return zero, false, fmt.Errorf("unexpected cached type %T for key %s", value, key)
	}

	return fresh, false, nil
}

// store caches a value loaded at generation gen. Invalidate bumps the
// generation before deleting, so checking again after the write catches an
// invalidation that raced with it.
func (r *ReadThrough) store(ctx context.Context, key string, value any, gen uint64) {
	if r.generation(key) != gen {
		return
	}

	if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
		slog.WarnContext(ctx, "Cache write failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	if r.generation(key) != gen {
		if err := r.cache.Delete(ctx, key); err != nil {
			slog.WarnContext(ctx, "Cache invalidation failed", slog.String("key", key), slog.Any("error", err))
		}
	}
}

// Invalidate drops keys from the cache. Loads already in flight for them are
// detached so later reads start a fresh load.
func (r *ReadThrough) Invalidate(ctx context.Context, keys ...string) {
	r.mu.Lock()
	for _, key := range keys {
		r.generations[key]++
	}
	r.mu.Unlock()

	for _, key := range keys {
		r.group.Forget(key)
	}

	if err := r.cache.Delete(ctx, keys...); err != nil {
		slog.WarnContext(ctx, "Cache invalidation failed", slog.Any("keys", keys), slog.Any("error", err))
	}
}
