package port

import (
	"context"

	"github.com/velora/storefront/internal/core/domain"
)

// UserRepository handles account storage and the admin customer projections.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListCustomers(ctx context.Context) ([]domain.CustomerAccount, error)
	SearchCustomers(ctx context.Context, query string) ([]domain.CustomerAccount, error)
}
