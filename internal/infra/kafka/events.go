package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/core/port"
	"github.com/velora/storefront/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, userID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	if eventID == "" {
		eventID = uuid.NewString()
	}

	envelope := eventEnvelope{
		EventID:   eventID,
		EventType: eventType,
		UserID:    userID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata: map[string]string{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishOrderPlaced publishes storefront.order.placed events.
func (p *EventPublisher) PublishOrderPlaced(ctx context.Context, event domain.OrderPlacedEvent) error {
	payload := struct {
		OrderID     string          `json:"order_id"`
		UserID      string          `json:"user_id"`
		TotalAmount decimal.Decimal `json:"total_amount"`
		ItemCount   int             `json:"item_count"`
		PlacedAt    time.Time       `json:"placed_at"`
	}{
		OrderID:     event.OrderID,
		UserID:      event.UserID,
		TotalAmount: event.TotalAmount,
		ItemCount:   event.ItemCount,
		PlacedAt:    event.PlacedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "storefront.order.placed", event.UserID, event.PlacedAt, payload)
}

// PublishOrderStatusChanged publishes storefront.order.status_changed events.
func (p *EventPublisher) PublishOrderStatusChanged(ctx context.Context, event domain.OrderStatusChangedEvent) error {
	payload := struct {
		OrderID   string    `json:"order_id"`
		UserID    string    `json:"user_id"`
		OldStatus string    `json:"old_status"`
		NewStatus string    `json:"new_status"`
		ChangedAt time.Time `json:"changed_at"`
	}{
		OrderID:   event.OrderID,
		UserID:    event.UserID,
		OldStatus: string(event.OldStatus),
		NewStatus: string(event.NewStatus),
		ChangedAt: event.ChangedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "storefront.order.status_changed", event.UserID, event.ChangedAt, payload)
}

// PublishUserRegistered publishes storefront.user.registered events.
func (p *EventPublisher) PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error {
	payload := struct {
		UserID       string    `json:"user_id"`
		Name         string    `json:"name"`
		Email        string    `json:"email"`
		RegisteredAt time.Time `json:"registered_at"`
	}{
		UserID:       event.UserID,
		Name:         event.Name,
		Email:        event.Email,
		RegisteredAt: event.RegisteredAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "storefront.user.registered", event.UserID, event.RegisteredAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
