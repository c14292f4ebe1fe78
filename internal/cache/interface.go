package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

const (
	namespace        = "catalog"
	ProductKeyPrefix = "product"
)

func Key(prefix string, id string) string {
	return namespace + ":" + prefix + ":" + id
}

func ProductKey(id string) string {
	return Key(ProductKeyPrefix, id)
}
