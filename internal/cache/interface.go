package cache

import (
	"context"
	"strconv"
	"time"
)

// Cache stores JSON-encoded values under namespaced keys.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

func Key(prefix string, id int64) string {
	return prefix + ":" + strconv.FormatInt(id, 10)
}

const (
	ProductKeyPrefix = "product"
	RatingKeyPrefix  = "rating"
)
