package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/polkiloo/drinkshop/internal/domain/model"
)

// channel is the subset of *amqp.Channel used by the publisher.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// message is the JSON body of a published order event.
type message struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	OrderID    string    `json:"orderId"`
	Owner      string    `json:"owner"`
	OccurredAt time.Time `json:"occurredAt"`
}

// RabbitPublisher forwards order events to a topic exchange.
type RabbitPublisher struct {
	ch       channel
	exchange string
}

// NewRabbitPublisher declares the exchange once at startup.
func NewRabbitPublisher(ch channel, exchange string) (*RabbitPublisher, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &RabbitPublisher{ch: ch, exchange: exchange}, nil
}

// Handle publishes the event with routing key order.<kind>.
func (p *RabbitPublisher) Handle(ctx context.Context, event model.OrderEvent) error {
	body, err := json.Marshal(message{
		ID:         event.ID.String(),
		Kind:       string(event.Kind),
		OrderID:    event.OrderID,
		Owner:      event.Owner,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(event.Kind), false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close releases the channel.
func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

// RoutingKey maps an event kind to its routing key.
func RoutingKey(kind model.OrderEventKind) string {
	return "order." + string(kind)
}
