package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles every PostgreSQL-backed repository behind one pool.
type Repositories struct {
	Orders      *OrderRepository
	Products    *ProductRepository
	Roles       *RoleRepository
	Permissions *PermissionRepository
	Users       *UserRepository
	Reviews     *ReviewRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Orders:      NewOrderRepository(pool),
		Products:    NewProductRepository(pool),
		Roles:       NewRoleRepository(pool),
		Permissions: NewPermissionRepository(pool),
		Users:       NewUserRepository(pool),
		Reviews:     NewReviewRepository(pool),
	}
}
