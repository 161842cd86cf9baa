package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMQ struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	// publishing on one channel from several workers is serialized
	mu     sync.Mutex
	logger *slog.Logger
}

type Config struct {
	URL       string
	Exchange  string
	QueueName string
	// BindingKey binds QueueName to the exchange. Topic wildcards are allowed.
	BindingKey string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if cfg.QueueName != "" {
		q, err := ch.QueueDeclare(
			cfg.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("declare queue: %w", err)
		}

		err = ch.QueueBind(
			q.Name,
			cfg.BindingKey,
			cfg.Exchange,
			false,
			nil,
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("bind queue: %w", err)
		}
	}

	logger = logger.With("component", "publisher")
	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"binding_key", cfg.BindingKey,
	)

	return &RabbitMQ{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		logger:   logger,
	}, nil
}

// Publish sends payload as JSON with topic as the routing key. It never returns an error: any
// failure is logged and reported as false.
func (r *RabbitMQ) Publish(ctx context.Context, topic string, payload any, key string) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		r.logger.Warn("marshal event failed", "topic", topic, "key", key, "error", err)
		return false
	}

	msg := amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		MessageId:     uuid.NewString(),
		CorrelationId: key,
		Timestamp:     time.Now(),
		Headers:       amqp.Table{"key": key},
		Body:          body,
	}

	r.mu.Lock()
	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		topic,
		false,
		false,
		msg,
	)
	r.mu.Unlock()

	if err != nil {
		r.logger.Warn("publish event failed", "topic", topic, "key", key, "error", err)
		return false
	}

	r.logger.Debug("published event",
		"topic", topic,
		"key", key,
		"message_id", msg.MessageId,
	)

	return true
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
