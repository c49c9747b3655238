package mq

import (
	"context"
	"fmt"
)

// exchangePublisher 由 dal.RabbitMQ 实现
type exchangePublisher interface {
	Publish(routingKey string, body []byte) error
}

// RabbitPublisher 发布到 topic exchange，topic 作为 routing key
type RabbitPublisher struct {
	conn exchangePublisher
}

func NewRabbitPublisher(conn exchangePublisher) *RabbitPublisher {
	return &RabbitPublisher{conn: conn}
}

func (p *RabbitPublisher) Publish(ctx context.Context, topic string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.conn.Publish(topic, body); err != nil {
		return fmt.Errorf("rabbitmq publish %s failed: %w", topic, err)
	}
	return nil
}
