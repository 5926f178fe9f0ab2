// Package cache implements the best-effort result cache on Redis. Every
// backend failure is logged and swallowed: a broken cache degrades to
// storage reads, never to request failures.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"NewsPulse/internal/ports"
)

// RedisCache stores serialized search pages with a TTL.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

var _ ports.ResultCache = (*RedisCache)(nil)

// NewRedisCache connects using a redis:// URL, falling back to treating the
// value as a plain address.
func NewRedisCache(ctx context.Context, redisURL string, logger *slog.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client, logger: logger}, nil
}

// Get returns the cached payload and whether it was present.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.warn("cache get failed", "key", key, "error", err)
		return nil, false
	}
	return payload, true
}

// Set stores the payload with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.warn("cache set failed", "key", key, "error", err)
	}
}

// Delete removes a cached entry.
func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.warn("cache delete failed", "key", key, "error", err)
	}
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
