package mq

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher 使用 PUBLISH，topic 即 channel 名
type RedisPublisher struct {
	rdb redisPublisher
}

func NewRedisPublisher(rdb redisPublisher) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, body []byte) error {
	if err := p.rdb.Publish(ctx, topic, body).Err(); err != nil {
		return fmt.Errorf("redis publish %s failed: %w", topic, err)
	}
	return nil
}
