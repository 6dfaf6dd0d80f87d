package ports

import (
	"context"
	"time"
)

// CachePort abstracts the key/value cache so services don't depend on the
// Redis client directly. Get reports a miss via the bool, not an error.
type CachePort interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
