package port

import (
	"context"

	"github.com/velora/storefront/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event domain.OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event domain.OrderStatusChangedEvent) error
	PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error
}
