package tasklock

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Cache is the shared-cache contract the lock is built on: atomic
// create-if-absent with TTL, plus unconditional set with TTL.
type Cache interface {
	Add(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisCache backs the lock with a shared redis instance, giving exclusion
// across the whole worker pool.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache returns redis-backed cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Add creates the entry only if absent.
func (c *RedisCache) Add(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, value, ttl).Result()
}

// Set writes the entry unconditionally, resetting its TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// MemoryCache is an in-process cache for single-worker deployments and
// tests. It only excludes jobs within one process.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache returns in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{cache: gocache.New(gocache.NoExpiration, time.Minute)}
}

// Add creates the entry only if absent or expired.
func (c *MemoryCache) Add(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	if err := c.cache.Add(key, value, ttl); err != nil {
		return false, nil
	}
	return true, nil
}

// Set writes the entry unconditionally, resetting its TTL.
func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}
