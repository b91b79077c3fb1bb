package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/transport/http/middleware"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:   errorMsg,
		TraceID: middleware.GetTraceID(c),
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports liveness state.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// UserSummary describes the account view returned by the API.
type UserSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserSummary(user domain.User) UserSummary {
	return UserSummary{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// RegisterRequest defines the signup payload.
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after a successful registration or login.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

// ProductRequest defines the payload for creating or updating a product.
type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock" binding:"min=0"`
	Featured    bool            `json:"featured"`
}

// ProductResponse describes a catalogue entry.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newProductResponse(product domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		Category:    product.Category,
		Stock:       product.Stock,
		Featured:    product.Featured,
		CreatedAt:   product.CreatedAt,
	}
}

// OrderItemRequest is one checkout line. Only the product reference and
// quantity are accepted; names and prices come from the catalogue.
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest defines the checkout payload.
type PlaceOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required"`
}

// OrderItemResponse is a stored line-item snapshot.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// OrderResponse describes an order with its snapshots.
type OrderResponse struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	UserName    string              `json:"user_name,omitempty"`
	Status      string              `json:"status"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	CreatedAt   time.Time           `json:"created_at"`
	Items       []OrderItemResponse `json:"items"`
}

func newOrderResponse(order domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}

	return OrderResponse{
		ID:          order.ID,
		UserID:      order.UserID,
		UserName:    order.UserName,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
		Items:       items,
	}
}

func newOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, newOrderResponse(order))
	}
	return out
}

// UpdateOrderStatusRequest defines the admin status overwrite payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RoleRequest defines the payload for creating or updating a role. The
// permission id list replaces the role's whole assignment set.
type RoleRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   *string  `json:"description"`
	PermissionIDs []string `json:"permission_ids"`
}

// PermissionResponse describes one catalogue permission.
type PermissionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Resource    string    `json:"resource"`
	Action      string    `json:"action"`
	CreatedAt   time.Time `json:"created_at"`
}

func newPermissionResponse(perm domain.Permission) PermissionResponse {
	return PermissionResponse{
		ID:          perm.ID,
		Name:        perm.Name,
		Description: perm.Description,
		Resource:    perm.Resource,
		Action:      perm.Action,
		CreatedAt:   perm.CreatedAt,
	}
}

// RoleResponse describes a role with its permission set.
type RoleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description *string              `json:"description,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Permissions []PermissionResponse `json:"permissions"`
}

func newRoleResponse(role domain.Role) RoleResponse {
	permissions := make([]PermissionResponse, 0, len(role.Permissions))
	for _, perm := range role.Permissions {
		permissions = append(permissions, newPermissionResponse(perm))
	}

	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
		Permissions: permissions,
	}
}

// CustomerOrderSummary is the compact order view in customer listings.
type CustomerOrderSummary struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CustomerResponse is the admin customer projection.
type CustomerResponse struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Email      string                 `json:"email"`
	Phone      *string                `json:"phone,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	TotalSpent decimal.Decimal        `json:"total_spent"`
	Orders     []CustomerOrderSummary `json:"orders"`
}

func newCustomerResponse(account domain.CustomerAccount) CustomerResponse {
	orders := make([]CustomerOrderSummary, 0, len(account.Orders))
	for _, order := range account.Orders {
		orders = append(orders, CustomerOrderSummary{
			ID:          order.ID,
			Status:      string(order.Status),
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
		})
	}

	return CustomerResponse{
		ID:         account.ID,
		Name:       account.Name,
		Email:      account.Email,
		Phone:      account.Phone,
		CreatedAt:  account.CreatedAt,
		TotalSpent: account.TotalSpent,
		Orders:     orders,
	}
}

// ReviewRequest defines the review submission payload.
type ReviewRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewResponse describes a stored review.
type ReviewResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	OrderID   string    `json:"order_id"`
	OrderDate time.Time `json:"order_date"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func newReviewResponse(review domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		UserName:  review.UserName,
		OrderID:   review.OrderID,
		OrderDate: review.OrderDate,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
