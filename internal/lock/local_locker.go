package lock

import (
	"context"
	"sync"
	"time"
)

// localLocker is the in-process fallback used when redis is disabled. It only
// serializes requests handled by this replica.
type localLocker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
	wait time.Duration
}

func NewLocalLocker(wait time.Duration) Locker {
	return &localLocker{held: make(map[string]chan struct{}), wait: wait}
}

func (l *localLocker) Acquire(ctx context.Context, keys ...string) (func(), error) {
	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	held := make([]string, 0, len(keys))

	for _, key := range normalize(keys) {
		if err := l.acquireOne(ctx, key, timer.C); err != nil {
			l.release(held)
			return nil, err
		}
		held = append(held, key)
	}

	var once sync.Once

	return func() {
		once.Do(func() { l.release(held) })
	}, nil
}

func (l *localLocker) acquireOne(ctx context.Context, key string, timeout <-chan time.Time) error {
	for {
		l.mu.Lock()
		released, busy := l.held[key]
		if !busy {
			l.held[key] = make(chan struct{})
			l.mu.Unlock()
			return nil
		}
		l.mu.Unlock()

		select {
		case <-released:
		case <-timeout:
			return ErrLockTimeout
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *localLocker) release(keys []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, key := range keys {
		if released, ok := l.held[key]; ok {
			delete(l.held, key)
			close(released)
		}
	}
}
