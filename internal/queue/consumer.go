package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer drains the booking confirmation queue and appends each event to a
// log file. It reconnects with backoff when the broker connection drops.
type Consumer struct {
	URL     string
	LogPath string
}

// NewConsumer creates a consumer for the confirmation queue.
func NewConsumer(url, logPath string) *Consumer {
	return &Consumer{URL: url, LogPath: logPath}
}

// Run consumes until ctx is cancelled. Connection failures are logged and
// retried; malformed messages are acked and dropped so they do not wedge the
// queue.
func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if err := c.consume(ctx); err != nil {
			log.Printf("queue consumer: %v (retrying in %s)", err, backoff)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (c *Consumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(c.URL)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(BookingConfirmedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	deliveries, err := ch.Consume(BookingConfirmedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, open := <-deliveries:
			if !open {
				return fmt.Errorf("delivery channel closed")
			}
			var evt BookingConfirmedEvent
			if err := json.Unmarshal(d.Body, &evt); err != nil {
				log.Printf("queue consumer: dropping malformed message: %v", err)
				_ = d.Ack(false)
				continue
			}
			if err := c.record(evt); err != nil {
				log.Printf("queue consumer: record event: %v", err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// record appends one line per event to the log file.
func (c *Consumer) record(evt BookingConfirmedEvent) error {
	f, err := os.OpenFile(c.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	line := fmt.Sprintf("%s booking=%d customer=%q email=%s rooms=%v total=%.2f method=%s\n",
		evt.ConfirmedAt.UTC().Format(time.RFC3339), evt.BookingID, evt.CustomerName,
		evt.CustomerEmail, evt.RoomNumbers, evt.TotalAmount, evt.PaymentMethod)
	_, err = f.WriteString(line)
	return err
}
