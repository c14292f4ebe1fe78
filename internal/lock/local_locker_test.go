package lock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	t.Run("Success - Serializes holders of the same key", func(t *testing.T) {
		// Arrange
		locker := NewLocalLocker(time.Second)
		var (
			mu      sync.Mutex
			active  int
			maxSeen int
			wg      sync.WaitGroup
		)

		// Act
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()

				release, err := locker.Acquire(t.Context(), UserKey("u1"), ProductKey("p1"))
				if !assert.NoError(t, err) {
					return
				}
				defer release()

				mu.Lock()
				active++
				maxSeen = max(maxSeen, active)
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
			}()
		}
		wg.Wait()

		// Assert
		assert.Equal(t, 1, maxSeen)
	})

	t.Run("Failure - Times out while held", func(t *testing.T) {
		// Arrange
		locker := NewLocalLocker(20 * time.Millisecond)
		release, err := locker.Acquire(t.Context(), UserKey("u1"))
		require.NoError(t, err)
		defer release()

		// Act
		_, err = locker.Acquire(t.Context(), ProductKey("p1"), UserKey("u1"))

		// Assert
		require.ErrorIs(t, err, ErrLockTimeout)

		// p1 must have been given back when u1 timed out
		releaseP1, err := locker.Acquire(t.Context(), ProductKey("p1"))
		require.NoError(t, err)
		releaseP1()
	})

	t.Run("Success - Duplicate keys are taken once", func(t *testing.T) {
		// Arrange
		locker := NewLocalLocker(20 * time.Millisecond)

		// Act
		release, err := locker.Acquire(t.Context(), UserKey("u1"), UserKey("u1"))

		// Assert
		require.NoError(t, err)
		release()
	})
}
