package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/evimeria/catalog-service/config"
)

// Cache wraps a redis client and tolerates a missing one. Every method is
// a no-op (miss) when redis was not configured, so callers never branch.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(cfg *config.Config) *Cache {
	if !cfg.Redis.Enabled {
		return &Cache{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return &Cache{
		client: client,
		ttl:    time.Duration(cfg.Redis.TTLSeconds) * time.Second,
	}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *Cache) Set(ctx context.Context, key string, data []byte) {
	if !c.Enabled() {
		return
	}
	c.client.Set(ctx, key, data, c.ttl)
}

// InvalidatePrefix drops every key under the given prefix.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if !c.Enabled() {
		return
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
