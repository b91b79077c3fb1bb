package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the lifecycle states of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known lifecycle states.
// Any state may transition to any other; only the value itself is checked.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a customer's purchase request with snapshotted line items and a
// total derived from them at creation time.
type Order struct {
	ID          string
	UserID      string
	UserName    string // populated only on the admin listing
	Status      OrderStatus
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	Items       []OrderItem
}

// OrderItem records one product's name and unit price as they were at the
// moment the order was placed. The set of items for an order never changes
// after creation.
type OrderItem struct {
	ProductID   string
	ProductName string
	Price       decimal.Decimal
	Quantity    int
}

// OrderItemRequest is the caller-supplied portion of a line item.
type OrderItemRequest struct {
	ProductID string
	Quantity  int
}
