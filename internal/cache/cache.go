package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a thin redis wrapper for short-TTL read caching. A nil
// *Cache is valid and behaves as a disabled cache, so callers never
// need to branch on configuration.
type Cache struct {
	client *redis.Client
}

func New(addr string) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, dest) == nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	// Best effort; a cache miss is never an API failure.
	c.client.Set(ctx, key, raw, ttl)
}
