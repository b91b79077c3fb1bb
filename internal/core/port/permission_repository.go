package port

import (
	"context"

	"github.com/velora/storefront/internal/core/domain"
)

// PermissionRepository serves the permission reference data.
type PermissionRepository interface {
	List(ctx context.Context) ([]domain.Permission, error)
}
