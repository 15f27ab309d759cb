package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "catalog:"

// CatalogCache stores rendered public catalog responses in Redis. A cache
// failure is never surfaced to callers: reads fall through to the database
// and writes are dropped with a warning.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogCache builds the cache around an existing client.
func NewCatalogCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached response body for key, or false when absent.
func (c *CatalogCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return val, true
}

// Set stores a rendered response body under key with the configured TTL.
func (c *CatalogCache) Set(ctx context.Context, key string, body []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, body, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes every cached catalog response. Called on admin writes;
// the catalog is small so a full prefix sweep beats tracking dependencies.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", zap.Error(err))
	}
}
