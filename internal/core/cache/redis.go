// Package cache 登录限流用的共享计数器
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter 固定窗口计数：窗口内第一次命中时设置 TTL，窗口过期后重新计数
type Counter interface {
	IncrWithTTL(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RedisCounter struct {
	RDB    *redis.Client
	Prefix string
}

func NewRedis(addr, pass string, db int) *RedisCounter {
	return &RedisCounter{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		Prefix: "leasehub:",
	}
}

func (c *RedisCounter) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *RedisCounter) Close() error { return c.RDB.Close() }

func (c *RedisCounter) IncrWithTTL(ctx context.Context, key string, window time.Duration) (int64, error) {
	key = c.Prefix + key
	n, err := c.RDB.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 && window > 0 {
		if err := c.RDB.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}
