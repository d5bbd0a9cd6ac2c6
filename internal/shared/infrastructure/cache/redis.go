package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

// RedisCache implements Cache on a shared Redis instance. All keys are
// namespaced under a fixed prefix. Calls run behind a circuit breaker so a
// Redis outage degrades the cache to misses instead of stalling every
// preview request.
type RedisCache struct {
	client  *redis.Client
	prefix  string
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

// NewRedisCache creates a Redis-backed cache with the given key prefix.
func NewRedisCache(client *redis.Client, prefix string, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:    "cache:" + prefix,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("cache circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &RedisCache{
		client:  client,
		prefix:  prefix,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		logger:  logger,
	}
}

func (c *RedisCache) key(key string) string {
	return c.prefix + ":" + key
}

// Get retrieves a value by key. A tripped breaker reports a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.breaker.Execute(func() ([]byte, error) {
		return c.client.Get(ctx, c.key(key)).Bytes()
	})
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores a value with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, c.key(key), value, ttl).Err()
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil
	}
	return err
}

// Delete removes a value by key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	_, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Del(ctx, c.key(key)).Err()
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil
	}
	return err
}
