package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ClientEvent is the message body published for client lifecycle changes.
type ClientEvent struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	ClientID     string    `json:"client_id,omitempty"`
	BusinessName string    `json:"business_name,omitempty"`
	ContactEmail string    `json:"contact_email"`
	Niche        string    `json:"prospecting_niche,omitempty"`
	Location     string    `json:"prospecting_location,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishClientEvent(ctx context.Context, event ClientEvent) error
}

// channelPublisher is the part of *amqp.Channel the producer needs.
type channelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch channelPublisher
}

func NewProducer(ch channelPublisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

// PublishClientEvent routes the event by its Type. ID and OccurredAt are
// filled in when empty.
func (p *RabbitMQProducer) PublishClientEvent(ctx context.Context, event ClientEvent) error {
	if event.Type == "" {
		return fmt.Errorf("event type is required")
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		event.Type,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.ID,
			Timestamp:    event.OccurredAt,
			Type:         event.Type,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishClientEvent(context.Context, ClientEvent) error {
	return nil
}
