package service_test

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// spyCache misses every read and records invalidated keys.
type spyCache struct {
	mu      sync.Mutex
	deleted []string
}

func (s *spyCache) Get(context.Context, string, any) (bool, error) { return false, nil }

func (s *spyCache) Set(context.Context, string, any, time.Duration) error { return nil }

func (s *spyCache) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, keys...)
	return nil
}

func (s *spyCache) Close() error { return nil }

type mapCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{items: map[string][]byte{}}
}

func (m *mapCache) Get(_ context.Context, key string, value any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, value)
}

func (m *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = data
	return nil
}

func (m *mapCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.items, key)
	}
	return nil
}

func (m *mapCache) Close() error { return nil }
