package event

import "context"

// Publisher 消息通道发布接口，topic 由具体驱动解释
// （rabbitmq 为 routing key，redis 为 channel，sns 为 TopicArn）
type Publisher interface {
	Publish(ctx context.Context, topic string, body []byte) error
}

// PublisherFunc 便于测试与简单适配
type PublisherFunc func(ctx context.Context, topic string, body []byte) error

func (f PublisherFunc) Publish(ctx context.Context, topic string, body []byte) error {
	return f(ctx, topic, body)
}
