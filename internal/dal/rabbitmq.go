package dal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	NotifyClose(receiver chan *amqp.Error) chan *amqp.Error
	Close() error
}

type amqpConnection interface {
	Channel() (amqpChannel, error)
	NotifyClose(receiver chan *amqp.Error) chan *amqp.Error
	Close() error
}

// streadwayConn 适配 *amqp.Connection
type streadwayConn struct{ *amqp.Connection }

func (c streadwayConn) Channel() (amqpChannel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func dialAMQP(url string) (amqpConnection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return streadwayConn{conn}, nil
}

// RabbitMQ 带自愈重连的连接；重连发生在客户端内部，调用方只发一次
type RabbitMQ struct {
	url      string
	exchange string
	log      logrus.FieldLogger
	dial     func(url string) (amqpConnection, error)
	retry    time.Duration

	mu      sync.Mutex
	conn    amqpConnection
	channel amqpChannel

	// 用 NotifyClose 事件来判断是否已关闭（而不是 IsClosed）
	connClosedCh chan *amqp.Error
	chClosedCh   chan *amqp.Error
	closed       bool
}

// NewRabbitMQ 首次连接并声明 topic exchange
func NewRabbitMQ(url, exchange string, log logrus.FieldLogger) (*RabbitMQ, error) {
	if url == "" {
		return nil, errors.New("rabbitmq url is empty")
	}
	r := newRabbitMQ(url, exchange, log, dialAMQP)
	if err := r.connect(); err != nil {
		return nil, err
	}
	return r, nil
}

func newRabbitMQ(url, exchange string, log logrus.FieldLogger, dial func(string) (amqpConnection, error)) *RabbitMQ {
	return &RabbitMQ{
		url:      url,
		exchange: exchange,
		log:      log.WithField("component", "rabbitmq"),
		dial:     dial,
		retry:    5 * time.Second,
	}
}

func (r *RabbitMQ) Exchange() string {
	return r.exchange
}

// connect 连接仍存活时只重开 channel；连接断开时先关闭旧连接再重新拨号
func (r *RabbitMQ) connect() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errors.New("rabbitmq client closed")
	}
	connAlive := r.isConnAlive()
	if connAlive && r.isChanAlive() {
		return nil
	}

	if !connAlive {
		if r.conn != nil {
			_ = r.conn.Close()
			r.conn, r.channel = nil, nil
		}
		conn, err := r.dial(r.url)
		if err != nil {
			return fmt.Errorf("rabbitmq dial failed: %w", err)
		}
		r.conn = conn
		r.connClosedCh = conn.NotifyClose(make(chan *amqp.Error, 1))
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel failed: %w", err)
	}
	if err := ch.ExchangeDeclare(r.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return fmt.Errorf("exchange declare %s failed: %w", r.exchange, err)
	}

	r.channel = ch
	r.chClosedCh = ch.NotifyClose(make(chan *amqp.Error, 1))
	r.log.WithFields(logrus.Fields{"exchange": r.exchange, "redial": !connAlive}).Info("[RabbitMQ] connected")

	go r.watchClose(r.connClosedCh, r.chClosedCh)
	return nil
}

// 监听关闭事件，触发重连
func (r *RabbitMQ) watchClose(connClosed, chClosed chan *amqp.Error) {
	var err *amqp.Error
	select {
	case err = <-connClosed:
	case err = <-chClosed:
	}

	for {
		r.mu.Lock()
		stop := r.closed
		r.mu.Unlock()
		if stop {
			return
		}

		r.log.WithField("reason", err).Warn("[RabbitMQ] connection lost, reconnecting")
		cerr := r.connect()
		if cerr == nil {
			return
		}
		r.log.WithError(cerr).Warn("[RabbitMQ] reconnect failed")
		time.Sleep(r.retry)
	}
}

func (r *RabbitMQ) isConnAlive() bool {
	if r.conn == nil || r.connClosedCh == nil {
		return false
	}
	select {
	case <-r.connClosedCh:
		return false
	default:
		return true
	}
}

func (r *RabbitMQ) isChanAlive() bool {
	if r.channel == nil || r.chClosedCh == nil {
		return false
	}
	select {
	case <-r.chClosedCh:
		return false
	default:
		return true
	}
}

// Publish 以 topic 作为 routing key 发布持久化消息
func (r *RabbitMQ) Publish(routingKey string, body []byte) error {
	r.mu.Lock()
	ch := r.channel
	r.mu.Unlock()
	if ch == nil {
		return errors.New("rabbitmq channel not ready")
	}
	return ch.Publish(
		r.exchange,
		routingKey,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}
