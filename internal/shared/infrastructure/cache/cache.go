// Package cache provides a small TTL key-value cache abstraction used for
// schedule preview memoization. Values are opaque byte slices; callers own
// serialization.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key is absent or expired.
var ErrNotFound = errors.New("cache: key not found")

// Cache is a TTL key-value store. Entries are never invalidated proactively;
// staleness within the TTL is an accepted tradeoff.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
