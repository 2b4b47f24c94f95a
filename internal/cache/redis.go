package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vendorhub/internal/wizard"
)

const keyPrefix = "vendorhub:draft:"

// RedisCache stores wizard snapshots in Redis, keyed by draft id. Every
// write refreshes the TTL so abandoned drafts age out on their own; the
// scheduled purge job removes submitted drafts sooner.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, draftID string) (*wizard.Snapshot, error) {
	data, err := c.client.Get(ctx, keyPrefix+draftID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap wizard.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse cached snapshot: %w", err)
	}
	return &snap, nil
}

func (c *RedisCache) Put(ctx context.Context, draftID string, snap *wizard.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return c.client.Set(ctx, keyPrefix+draftID, data, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, draftID string) error {
	return c.client.Del(ctx, keyPrefix+draftID).Err()
}

// Health checks the Redis connection.
func (c *RedisCache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
