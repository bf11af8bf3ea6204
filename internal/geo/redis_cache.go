package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"service-dispatch/internal/domain"
)

// RedisCache stores points as JSON under "<prefix>:geo:<address>" with no expiry.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a RedisCache. An empty prefix defaults to "dispatch".
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "dispatch"
	}
	return &RedisCache{client: client, prefix: prefix}
}

// Get returns the cached point for address.
func (c *RedisCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	val, err := c.client.Get(ctx, c.key(address)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("redis get: %w", err)
	}
	var p domain.Coordinates
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("decode cached point: %w", err)
	}
	return p, true, nil
}

// Set stores a point unless one is already cached, so concurrent resolvers agree.
func (c *RedisCache) Set(ctx context.Context, address string, p domain.Coordinates) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := c.client.SetNX(ctx, c.key(address), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	return nil
}

func (c *RedisCache) key(address string) string {
	return c.prefix + ":geo:" + address
}
