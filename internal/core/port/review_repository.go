package port

import (
	"context"

	"github.com/velora/storefront/internal/core/domain"
)

// ReviewRepository handles order review storage.
type ReviewRepository interface {
	Create(ctx context.Context, review domain.Review) (*domain.Review, error)
	GetByOrder(ctx context.Context, orderID string) (*domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
}
