package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "llm:probe:"
	callTimeout = 500 * time.Millisecond
)

// ConnectivityCache shares probe results between server instances through Redis.
// Redis errors are treated as cache misses.
type ConnectivityCache struct {
	client *redis.Client
}

func NewConnectivityCache(redisURL string) (*ConnectivityCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &ConnectivityCache{client: client}, nil
}

func (c *ConnectivityCache) Get(key string) (bool, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		return false, false
	}
	return val == "1", true
}

func (c *ConnectivityCache) Set(key string, connected bool, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	val := "0"
	if connected {
		val = "1"
	}
	_ = c.client.Set(ctx, keyPrefix+key, val, ttl).Err()
}

func (c *ConnectivityCache) Close() error {
	return c.client.Close()
}
