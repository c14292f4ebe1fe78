package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is a minimal Cache used to observe read-through behaviour.
type memoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	getErr  error
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, value any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return false, m.getErr
	}

	data, ok := m.items[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(data, value)
}

func (m *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = data

	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.items, key)
		m.deleted = append(m.deleted, key)
	}

	return nil
}

func (m *memoryCache) Close() error { return nil }

func TestFetch(t *testing.T) {
	t.Run("Success - Miss loads and stores", func(t *testing.T) {
		// Arrange
		store := newMemoryCache()
		rt := cache.NewReadThrough(store, time.Minute)
		loads := 0

		load := func(ctx context.Context) (TestData, error) {
			loads++
			return TestData{Field1: "fresh", Field2: 1}, nil
		}

		// Act
		first, hit1, err1 := cache.Fetch(t.Context(), rt, "k", load)
		second, hit2, err2 := cache.Fetch(t.Context(), rt, "k", load)

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.False(t, hit1)
		assert.True(t, hit2)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, loads)
	})

	t.Run("Success - Cache error falls back to load", func(t *testing.T) {
		// Arrange
		store := newMemoryCache()
		store.getErr = errors.New("redis down")
		rt := cache.NewReadThrough(store, time.Minute)

		// Act
		value, hit, err := cache.Fetch(t.Context(), rt, "k", func(ctx context.Context) (TestData, error) {
			return TestData{Field1: "fresh"}, nil
		})

		// Assert
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, "fresh", value.Field1)
	})

	t.Run("Failure - Load error is not cached", func(t *testing.T) {
		// Arrange
		store := newMemoryCache()
		rt := cache.NewReadThrough(store, time.Minute)
		loadErr := errors.New("not found")

		// Act
		_, _, err := cache.Fetch(t.Context(), rt, "k", func(ctx context.Context) (TestData, error) {
			return TestData{}, loadErr
		})

		// Assert
		require.ErrorIs(t, err, loadErr)
		assert.Empty(t, store.items)
	})

	t.Run("Success - Concurrent misses share one load", func(t *testing.T) {
		// Arrange
		rt := cache.NewReadThrough(cache.NewNoopCache(), time.Minute)
		release := make(chan struct{})
		var loads atomic.Int32

		load := func(ctx context.Context) (TestData, error) {
			loads.Add(1)
			<-release
			return TestData{Field1: "shared"}, nil
		}

		var wg, started sync.WaitGroup
		for range 5 {
			wg.Add(1)
			started.Add(1)
			go func() {
				defer wg.Done()
				started.Done()
				value, _, err := cache.Fetch(context.Background(), rt, "k", load)
				assert.NoError(t, err)
				assert.Equal(t, "shared", value.Field1)
			}()
		}

		// Act
		started.Wait()
		require.Eventually(t, func() bool { return loads.Load() == 1 }, time.Second, 5*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		// Assert
		assert.Equal(t, int32(1), loads.Load())
	})
}

func TestInvalidate(t *testing.T) {
	store := newMemoryCache()
	rt := cache.NewReadThrough(store, time.Minute)
	require.NoError(t, store.Set(t.Context(), "a", 1, 0))

	rt.Invalidate(t.Context(), "a", "b")

	assert.Equal(t, []string{"a", "b"}, store.deleted)
	assert.Empty(t, store.items)
}

func TestFetchRacingInvalidate(t *testing.T) {
	t.Run("Success - Load overlapping an invalidation is not cached", func(t *testing.T) {
		// Arrange
		store := newMemoryCache()
		rt := cache.NewReadThrough(store, time.Minute)
		loaded := make(chan struct{})
		release := make(chan struct{})

		staleLoad := func(ctx context.Context) (TestData, error) {
			close(loaded)
			<-release
			return TestData{Field1: "stale", Field2: 5}, nil
		}

		done := make(chan TestData)
		go func() {
			value, _, err := cache.Fetch(context.Background(), rt, "k", staleLoad)
			assert.NoError(t, err)
			done <- value
		}()

		// Act
		<-loaded
		rt.Invalidate(t.Context(), "k")
		close(release)
		first := <-done

		second, hit, err := cache.Fetch(t.Context(), rt, "k", func(ctx context.Context) (TestData, error) {
			return TestData{Field1: "fresh", Field2: 3}, nil
		})

		// Assert
		assert.Equal(t, "stale", first.Field1, "the overlapping caller still gets what it read")
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, 3, second.Field2)
	})

	t.Run("Success - Reads after an invalidation do not join the earlier load", func(t *testing.T) {
		// Arrange
		rt := cache.NewReadThrough(newMemoryCache(), time.Minute)
		loaded := make(chan struct{})
		release := make(chan struct{})
		var loads atomic.Int32

		go func() {
			_, _, _ = cache.Fetch(context.Background(), rt, "k", func(ctx context.Context) (TestData, error) {
				loads.Add(1)
				close(loaded)
				<-release
				return TestData{Field1: "stale"}, nil
			})
		}()
		<-loaded

		// Act
		rt.Invalidate(t.Context(), "k")
		value, _, err := cache.Fetch(t.Context(), rt, "k", func(ctx context.Context) (TestData, error) {
			loads.Add(1)
			return TestData{Field1: "fresh"}, nil
		})
		close(release)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "fresh", value.Field1)
		assert.Equal(t, int32(2), loads.Load())
	})
}
