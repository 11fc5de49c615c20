package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"profilebot/internal/llm"
)

const insightKeyPrefix = "insight:"

// RedisCache stores insights in Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects and pings the Redis server.
func NewRedisCache(addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisCache{client: client}, nil
}

func (c *RedisCache) GetInsight(ctx context.Context, contentHash string) (*llm.Insight, error) {
	data, err := c.client.Get(ctx, insightKeyPrefix+contentHash).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var insight llm.Insight
	if err := json.Unmarshal(data, &insight); err != nil {
		return nil, err
	}
	return &insight, nil
}

func (c *RedisCache) SetInsight(ctx context.Context, contentHash string, insight llm.Insight, ttl time.Duration) error {
	data, err := json.Marshal(insight)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, insightKeyPrefix+contentHash, data, ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
