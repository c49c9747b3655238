package dal

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"payment-ipn-api/internal/config"
)

// NewRedis 创建 Redis 客户端并 ping 一次
func NewRedis(ctx context.Context, c config.RedisCfg) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
