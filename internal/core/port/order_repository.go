package port

import (
	"context"

	"github.com/velora/storefront/internal/core/domain"
)

// OrderRepository persists orders and their immutable line-item snapshots.
//
// Create runs as a single transaction: the order row, every line item with
// the product name and price copied at that moment, and the derived total
// either all commit or none do.
type OrderRepository interface {
	Create(ctx context.Context, order domain.Order, items []domain.OrderItemRequest) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
}
