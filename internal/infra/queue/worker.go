package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

type AlertSender interface {
	Notify(ctx context.Context, alert entity.OwnerAlert) error
}

// Consumer is the part of *amqp.Channel the worker needs.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// AlertWorker drains the alert queue and hands each alert to Sender.
type AlertWorker struct {
	Channel Consumer
	Sender  AlertSender
}

func NewAlertWorker(ch Consumer, sender AlertSender) *AlertWorker {
	return &AlertWorker{Channel: ch, Sender: sender}
}

// Start consumes until ctx is done or the channel closes.
func (w *AlertWorker) Start(ctx context.Context) error {
	msgs, err := w.Channel.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	logger.Info().Str("queue", QueueName).Msg("🚀 alert worker started")
	for {
		select {
		case <-ctx.Done():
			logger.Warn().Msg("⚠️ alert worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("alert queue channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks a delivered alert and dead-letters one that cannot be
// decoded or sent.
func (w *AlertWorker) handle(ctx context.Context, d amqp.Delivery) {
	var alert entity.OwnerAlert
	if err := json.Unmarshal(d.Body, &alert); err != nil {
		logger.Error().Err(err).Str("message_id", d.MessageId).Msg("❌ invalid alert payload")
		d.Nack(false, false)
		return
	}

	if err := w.Sender.Notify(ctx, alert); err != nil {
		logger.Error().Err(err).Str("phone", alert.Phone).Str("kind", string(alert.Kind)).Msg("❌ alert delivery failed")
		d.Nack(false, false)
		return
	}

	d.Ack(false)
}
