package port

import (
	"context"

	"github.com/velora/storefront/internal/core/domain"
)

// RoleRepository handles role CRUD together with permission assignments.
//
// Create and Update are transactional; Update replaces the role's entire
// assignment set with the provided permission ids after verifying the role
// exists. Both return the role joined with its resulting permission list.
type RoleRepository interface {
	Create(ctx context.Context, role domain.Role, permissionIDs []string) (*domain.Role, error)
	Update(ctx context.Context, role domain.Role, permissionIDs []string) (*domain.Role, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Role, error)
}
