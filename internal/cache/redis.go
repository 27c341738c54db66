package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/splitledger/splitledger/internal/engine"
)

// Ensure RedisCache implements SummaryCache
var _ SummaryCache = (*RedisCache)(nil)

// RedisCache stores JSON-encoded summaries in Redis with a TTL. The TTL is a
// backstop: keys embed a data version, so stale entries are simply never
// asked for again and expire on their own.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache against the given address. Pass ttl 0
// for keys that should not expire.
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{client: client, ttl: ttl}
}

// Get retrieves and unmarshals a summary from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) (*engine.Summary, bool) {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var summary engine.Summary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		slog.Warn("cache: discarding undecodable entry", "key", key, "error", err)
		return nil, false
	}
	return &summary, true
}

// Set marshals a summary and stores it in Redis under key.
func (c *RedisCache) Set(ctx context.Context, key string, summary *engine.Summary) {
	data, err := json.Marshal(summary)
	if err != nil {
		slog.Warn("cache: marshal error", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("cache: write error", "key", key, "error", err)
	}
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
