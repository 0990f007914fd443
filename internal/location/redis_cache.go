package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/om-bhaiya/messle/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisCache is a SessionCache backed by a Redis key with a TTL, scoped to
// one device's session. The TTL doubles as the max cached-reading age.
type RedisCache struct {
	client *redis.Client
	key    string
	maxAge time.Duration
}

func NewRedisCache(client *redis.Client, deviceID string, maxAge time.Duration) *RedisCache {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &RedisCache{
		client: client,
		key:    fmt.Sprintf("messle:session:%s:location", deviceID),
		maxAge: maxAge,
	}
}

func (c *RedisCache) Get(ctx context.Context) (*models.Location, error) {
	raw, err := c.client.Get(ctx, c.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session location get: %w", err)
	}
	var loc models.Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return nil, fmt.Errorf("session location decode: %w", err)
	}
	return &loc, nil
}

func (c *RedisCache) Put(ctx context.Context, loc models.Location) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("session location encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key, raw, c.maxAge).Err(); err != nil {
		return fmt.Errorf("session location set: %w", err)
	}
	return nil
}

func (c *RedisCache) Clear(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("session location clear: %w", err)
	}
	return nil
}
