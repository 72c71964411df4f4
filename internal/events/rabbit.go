package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitPublisher struct {
	Conn     *amqp.Connection
	Channel  *amqp.Channel
	Exchange string

	mu sync.Mutex
}

// NewRabbitPublisher dials the broker and declares a durable topic exchange.
func NewRabbitPublisher(amqpURL string, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &RabbitPublisher{
		Conn:     conn,
		Channel:  ch,
		Exchange: exchange,
	}, nil
}

func (r *RabbitPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	msg, err := encode(event, time.Now())
	if err != nil {
		return err
	}
	// amqp channels are not safe for concurrent publishing.
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Channel.PublishWithContext(ctx, r.Exchange, routingKey, false, false, msg)
}

func (r *RabbitPublisher) Close() {
	r.Channel.Close()
	r.Conn.Close()
}

func encode(event any, at time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to encode event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		Timestamp:    at,
		DeliveryMode: amqp.Persistent,
	}, nil
}
