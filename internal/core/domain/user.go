package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole is the coarse authorization tag checked by route guards. It is
// distinct from the fine-grained Role/Permission entities, which are
// administrator-managed reference data.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleCustomer UserRole = "customer"
)

// User mirrors the persisted representation in the users table.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        *string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}

// CustomerAccount is the admin-facing customer projection with order
// aggregates attached.
type CustomerAccount struct {
	ID         string
	Name       string
	Email      string
	Phone      *string
	CreatedAt  time.Time
	TotalSpent decimal.Decimal
	Orders     []CustomerOrder
}

// CustomerOrder is the compact order summary embedded in customer listings.
type CustomerOrder struct {
	ID          string
	Status      OrderStatus
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}
