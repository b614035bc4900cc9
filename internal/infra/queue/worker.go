package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// WelcomeSender delivers the trial welcome message for a new client.
type WelcomeSender interface {
	SendWelcome(to, businessName string) error
}

type channelConsumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel channelConsumer
	Sender  WelcomeSender
	logger  *zap.Logger
}

func NewWorker(ch channelConsumer, sender WelcomeSender, logger *zap.Logger) *Worker {
	return &Worker{
		Channel: ch,
		Sender:  sender,
		logger:  logger,
	}
}

// Start consumes queueName until ctx is cancelled or the delivery channel
// closes. Acks are manual.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer on %s: %w", queueName, err)
	}

	w.logger.Info("welcome worker waiting for messages", zap.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("welcome worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel for %s closed", queueName)
			}
			w.handle(d)
		}
	}
}

func (w *Worker) handle(d amqp.Delivery) {
	var event ClientEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		w.logger.Error("invalid event payload", zap.Error(err))
		// malformed messages go straight to the DLQ
		d.Nack(false, false)
		return
	}

	if event.Type != RoutingKeyClientRegistered || event.ContactEmail == "" {
		w.logger.Warn("skipping event", zap.String("type", event.Type), zap.String("event_id", event.ID))
		d.Ack(false)
		return
	}

	if err := w.Sender.SendWelcome(event.ContactEmail, event.BusinessName); err != nil {
		w.logger.Error("welcome email failed",
			zap.String("event_id", event.ID),
			zap.String("email", event.ContactEmail),
			zap.Error(err),
		)
		d.Nack(false, false)
		return
	}

	w.logger.Info("welcome email sent", zap.String("event_id", event.ID), zap.String("email", event.ContactEmail))
	d.Ack(false)
}
