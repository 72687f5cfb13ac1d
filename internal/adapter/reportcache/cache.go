// Package reportcache invalidates cached sales aggregates after the
// analytics summary table changes, keeping reporting consistent with the
// display currency.
package reportcache

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// AggregateKey is the cache entry holding the derived sales aggregate.
const AggregateKey = "sales_summary:aggregate"

// Invalidator drops cached aggregates derived from the summary table.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// RedisCache invalidates aggregates stored in Redis.
type RedisCache struct {
	client redis.UniversalClient
}

// Connect initializes a Redis client from URL or host:port input.
func Connect(address string) (*redis.Client, error) {
	if strings.HasPrefix(address, "redis://") {
		opt, err := redis.ParseURL(address)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: address}), nil
}

// NewRedisCache wraps a Redis client as an Invalidator.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// Invalidate removes the cached aggregate.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, AggregateKey).Err(); err != nil {
		return fmt.Errorf("invalidate sales aggregate: %w", err)
	}
	return nil
}

// Noop satisfies Invalidator when no cache backend is configured.
type Noop struct{}

// Invalidate does nothing.
func (Noop) Invalidate(context.Context) error { return nil }
