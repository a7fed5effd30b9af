package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQP publishes lead events to a durable topic exchange.
type AMQP struct {
	exchange string

	mu         sync.Mutex
	connection *amqp.Connection
	channel    *amqp.Channel
}

func NewAMQP(url, exchange string) (*AMQP, error) {
	if url == "" {
		return nil, fmt.Errorf("notify: RabbitMQ URL is required")
	}
	if exchange == "" {
		return nil, fmt.Errorf("notify: exchange name is required")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notify: failed to dial RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notify: failed to open a channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notify: failed to declare exchange %q: %w", exchange, err)
	}

	log.Printf("notify: publishing leads to exchange %q", exchange)
	return &AMQP{exchange: exchange, connection: conn, channel: ch}, nil
}

// Message builds the AMQP publishing for an event.
func Message(event LeadEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("notify: encode event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.CreatedAt,
		Type:         event.RoutingKey(),
		Body:         body,
	}, nil
}

func (a *AMQP) LeadCreated(ctx context.Context, event LeadEvent) error {
	msg, err := Message(event)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.channel == nil || a.connection == nil || a.connection.IsClosed() {
		return fmt.Errorf("notify: not connected")
	}

	err = a.channel.PublishWithContext(ctx, a.exchange, event.RoutingKey(), false, false, msg)
	if err != nil {
		return fmt.Errorf("notify: failed to publish %s: %w", event.RoutingKey(), err)
	}
	return nil
}

func (a *AMQP) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var firstErr error
	if a.channel != nil {
		if err := a.channel.Close(); err != nil {
			firstErr = err
		}
		a.channel = nil
	}
	if a.connection != nil {
		if err := a.connection.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.connection = nil
	}
	return firstErr
}

// New returns an AMQP notifier, or Nop when url is empty.
func New(url, exchange string) (Notifier, error) {
	if url == "" {
		return Nop{}, nil
	}
	return NewAMQP(url, exchange)
}
