package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/core/port"
	"github.com/velora/storefront/internal/repository"
)

var (
	// ErrEmptyOrder indicates the order carried no line items.
	ErrEmptyOrder = errors.New("order must contain at least one item")
	// ErrInvalidQuantity indicates a line item with a quantity below one.
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	// ErrInvalidOrderItem indicates a missing or unknown product reference.
	ErrInvalidOrderItem = errors.New("order item references an unknown product")
	// ErrOrderNotFound is returned when the order id does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidStatus indicates a status value outside the known set.
	ErrInvalidStatus = errors.New("invalid order status")
)

// PlaceOrderInput captures the checkout payload.
type PlaceOrderInput struct {
	UserID string
	Items  []domain.OrderItemRequest
}

// OrderService coordinates checkout and order administration.
type OrderService struct {
	orders    port.OrderRepository
	publisher port.EventPublisher
	logger    *zap.Logger
}

func NewOrderService(orders port.OrderRepository, publisher port.EventPublisher, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, publisher: publisher, logger: logger}
}

// PlaceOrder validates the payload and runs the checkout transaction. The
// stored order snapshots current product names and prices; its total is
// derived server side and any client-supplied amount is ignored.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return nil, ErrInvalidOrderItem
		}
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	order := domain.Order{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.orders.Create(ctx, order, input.Items)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidOrderItem
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	event := domain.OrderPlacedEvent{
		EventID:     uuid.NewString(),
		OrderID:     created.ID,
		UserID:      created.UserID,
		TotalAmount: created.TotalAmount,
		ItemCount:   len(created.Items),
		PlacedAt:    created.CreatedAt,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Warn("publish order placed event failed",
			zap.String("order_id", created.ID),
			zap.Error(err))
	}

	return created, nil
}

// ListForUser returns one user's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	return orders, nil
}

// ListAll returns every order with owner names for the admin view.
func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus overwrites an order's status after validating the value. Any
// known status may replace any other.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	existing, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	event := domain.OrderStatusChangedEvent{
		EventID:   uuid.NewString(),
		OrderID:   updated.ID,
		UserID:    updated.UserID,
		OldStatus: existing.Status,
		NewStatus: updated.Status,
		ChangedAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Warn("publish order status event failed",
			zap.String("order_id", updated.ID),
			zap.Error(err))
	}

	return updated, nil
}
