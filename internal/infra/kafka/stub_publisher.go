package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Used when the
// broker is disabled in configuration.
type StubPublisher struct {
	logger *zap.Logger
}

func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, userID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("stub event published",
		zap.String("event_type", eventType),
		zap.String("user_id", userID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

func (p *StubPublisher) PublishOrderPlaced(_ context.Context, event domain.OrderPlacedEvent) error {
	payload := map[string]any{
		"order_id":     event.OrderID,
		"total_amount": event.TotalAmount,
		"item_count":   event.ItemCount,
		"placed_at":    event.PlacedAt,
	}
	p.logEvent("storefront.order.placed", event.UserID, event.PlacedAt, payload)
	return nil
}

func (p *StubPublisher) PublishOrderStatusChanged(_ context.Context, event domain.OrderStatusChangedEvent) error {
	payload := map[string]any{
		"order_id":   event.OrderID,
		"old_status": event.OldStatus,
		"new_status": event.NewStatus,
		"changed_at": event.ChangedAt,
	}
	p.logEvent("storefront.order.status_changed", event.UserID, event.ChangedAt, payload)
	return nil
}

func (p *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	payload := map[string]any{
		"user_id":       event.UserID,
		"name":          event.Name,
		"email":         event.Email,
		"registered_at": event.RegisteredAt,
	}
	p.logEvent("storefront.user.registered", event.UserID, event.RegisteredAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
