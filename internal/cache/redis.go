package cache

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/flighttracker/config"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cache:tracker:"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RedisCache stores JSON-encoded values under a shared key prefix with a
// single TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

// Get decodes the value stored under key into dst. A miss reports false with
// no error.
func (c *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, Key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(key), payload, c.ttl).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func Key(name string) string {
	return keyPrefix + name
}
