package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache is a RateCache shared between processes through Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis server at redisURL
// (redis://[:password@]host:port/db) and pings it.
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient wraps an existing client without pinging it.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*domain.ExchangeRate, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rate from Redis: %w", err)
	}
	var rate domain.ExchangeRate
	if err := json.Unmarshal(data, &rate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached rate: %w", err)
	}
	return &rate, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, rate *domain.ExchangeRate, ttl time.Duration) error {
	if rate == nil {
		return nil
	}
	data, err := json.Marshal(rate)
	if err != nil {
		return fmt.Errorf("failed to marshal rate: %w", err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
