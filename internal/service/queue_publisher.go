package service

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nartchai/hotel-management-api/internal/queue"
)

// QueuePublisher sends booking confirmation events to RabbitMQ. A nil
// publisher is valid and publishes nothing, so the API keeps working when
// the broker is absent.
type QueuePublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewQueuePublisher connects to RabbitMQ at url and declares the durable
// confirmation queue. Returns an error when the broker is unreachable;
// callers may log it and continue with a nil publisher.
func NewQueuePublisher(url string) (*QueuePublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	_, err = ch.QueueDeclare(queue.BookingConfirmedQueue, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	return &QueuePublisher{conn: conn, ch: ch}, nil
}

// PublishBookingConfirmed serializes the event and publishes it as a
// persistent message. Safe to call on a nil receiver.
func (p *QueuePublisher) PublishBookingConfirmed(ctx context.Context, evt queue.BookingConfirmedEvent) error {
	if p == nil || p.ch == nil {
		return nil
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.ch.PublishWithContext(ctx, "", queue.BookingConfirmedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Close releases the channel and connection. Safe on nil.
func (p *QueuePublisher) Close() error {
	if p == nil {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
