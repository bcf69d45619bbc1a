package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/qurancms/recitation-api/pkg/config"
)

// envelope wraps every payload with its routing key and emit time
type envelope struct {
	Event     string `json:"event"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data"`
}

// AMQP publishes JSON events to a durable topic exchange
type AMQP struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewAMQP dials the broker and declares the exchange
func NewAMQP(url, exchange string) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to amqp: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening amqp channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring exchange %s: %w", exchange, err)
	}

	return &AMQP{conn: conn, channel: channel, exchange: exchange}, nil
}

// New returns an AMQP notifier when a URL is configured, otherwise Noop
func New(cfg config.EventsConfig) (Notifier, error) {
	if cfg.AMQPURL == "" {
		return Noop{}, nil
	}
	return NewAMQP(cfg.AMQPURL, cfg.Exchange)
}

func (a *AMQP) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := encode(routingKey, payload, time.Now())
	if err != nil {
		return err
	}

	// amqp channels are not safe for concurrent publishes
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.channel.PublishWithContext(
		ctx,
		a.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}

func (a *AMQP) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.channel.Close(); err != nil {
		a.conn.Close()
		return err
	}
	return a.conn.Close()
}

func encode(routingKey string, payload any, at time.Time) ([]byte, error) {
	body, err := json.Marshal(envelope{Event: routingKey, Timestamp: at.Unix(), Data: payload})
	if err != nil {
		return nil, fmt.Errorf("encoding %s event: %w", routingKey, err)
	}
	return body, nil
}
