// Package lock serializes work on the same user or product across requests.
package lock

import (
	"context"
	"errors"
	"slices"
)

var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker acquires a set of named locks. Keys are always taken in sorted order
// so two callers locking overlapping sets cannot deadlock. The returned
// release func is safe to call more than once.
type Locker interface {
	Acquire(ctx context.Context, keys ...string) (release func(), err error)
}

func UserKey(id string) string {
	return "user:" + id
}

func ProductKey(id string) string {
	return "product:" + id
}

func normalize(keys []string) []string {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)

	return slices.Compact(sorted)
}
