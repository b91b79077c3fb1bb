package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlacedEvent is emitted after an order transaction commits.
type OrderPlacedEvent struct {
	EventID     string
	OrderID     string
	UserID      string
	TotalAmount decimal.Decimal
	ItemCount   int
	PlacedAt    time.Time
}

// OrderStatusChangedEvent is emitted after an order status overwrite.
type OrderStatusChangedEvent struct {
	EventID   string
	OrderID   string
	UserID    string
	OldStatus OrderStatus
	NewStatus OrderStatus
	ChangedAt time.Time
}

// UserRegisteredEvent is emitted after a successful registration.
type UserRegisteredEvent struct {
	EventID      string
	UserID       string
	Name         string
	Email        string
	RegisteredAt time.Time
}
