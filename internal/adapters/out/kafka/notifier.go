// Package kafka publishes order lifecycle notifications to a Kafka topic.
// Notifications are strictly best-effort: handlers call the notifier after
// their transaction commits, and a broker outage must never fail or roll back
// a committed business operation, so publish errors are logged and swallowed.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Event types carried in the payload's "type" field.
const (
	EventOrderUpdated  = "order:updated"
	EventOrderAssigned = "order:assigned"
)

// event is the JSON payload of every published notification.
type event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// messageWriter abstracts the Kafka writer for testing.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderNotifier implements ports.OrderNotifier on top of a Kafka writer.
// Messages are keyed by order ID so all events of one order land on the
// same partition in publish order.
type OrderNotifier struct {
	writer messageWriter
	log    *slog.Logger
}

// NewOrderNotifier creates a notifier publishing to the given topic.
// Brokers is a comma-separated host list.
func NewOrderNotifier(brokers string, topic string, log *slog.Logger) *OrderNotifier {
	return &OrderNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(brokers, ",")...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
		log: log,
	}
}

// NotifyOrderUpdated publishes an order:updated event.
func (n *OrderNotifier) NotifyOrderUpdated(ctx context.Context, orderID kernel.UUID) {
	n.publish(ctx, event{
		ID:         uuid.NewString(),
		Type:       EventOrderUpdated,
		OrderID:    orderID.String(),
		OccurredAt: time.Now().UTC(),
	})
}

// NotifyOrderAssigned publishes an order:assigned event addressed to the
// assignee's linked user.
func (n *OrderNotifier) NotifyOrderAssigned(ctx context.Context, orderID kernel.UUID, userID kernel.UUID) {
	n.publish(ctx, event{
		ID:         uuid.NewString(),
		Type:       EventOrderAssigned,
		OrderID:    orderID.String(),
		UserID:     userID.String(),
		OccurredAt: time.Now().UTC(),
	})
}

// Close flushes and closes the underlying writer.
func (n *OrderNotifier) Close() error {
	if w, ok := n.writer.(*kafka.Writer); ok {
		return w.Close()
	}
	return nil
}

func (n *OrderNotifier) publish(ctx context.Context, e event) {
	payload, err := json.Marshal(e)
	if err != nil {
		n.log.ErrorContext(ctx, "failed to marshal order event",
			"type", e.Type, "orderId", e.OrderID, "error", err)
		return
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.OrderID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
	if err != nil {
		n.log.ErrorContext(ctx, "failed to publish order event",
			"type", e.Type, "orderId", e.OrderID, "error", err)
	}
}
