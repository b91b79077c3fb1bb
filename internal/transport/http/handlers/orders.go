package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/infra/telemetry"
	"github.com/velora/storefront/internal/transport/http/middleware"
	"github.com/velora/storefront/internal/usecase"
)

// OrderHandler exposes checkout and order administration endpoints.
type OrderHandler struct {
	orders  *usecase.OrderService
	metrics *telemetry.Provider
}

func NewOrderHandler(orders *usecase.OrderService, metrics *telemetry.Provider) *OrderHandler {
	return &OrderHandler{orders: orders, metrics: metrics}
}

var orderErrorCases = []ErrorCase{
	{Err: usecase.ErrEmptyOrder, Status: http.StatusBadRequest, Message: "order must contain at least one item"},
	{Err: usecase.ErrInvalidQuantity, Status: http.StatusBadRequest, Message: "item quantity must be at least 1"},
	{Err: usecase.ErrInvalidOrderItem, Status: http.StatusBadRequest, Message: "order item references an unknown product"},
	{Err: usecase.ErrOrderNotFound, Status: http.StatusNotFound, Message: "order not found"},
	{Err: usecase.ErrInvalidStatus, Status: http.StatusBadRequest, Message: "invalid order status"},
}

// Place handles POST /orders.
func (h *OrderHandler) Place(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid order payload"))
		return
	}

	items := make([]domain.OrderItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), usecase.PlaceOrderInput{
		UserID: userID,
		Items:  items,
	})
	if err != nil {
		RespondWithMappedError(c, err, orderErrorCases, http.StatusInternalServerError, "failed to place order")
		return
	}

	h.metrics.OrderPlaced()

	c.JSON(http.StatusCreated, newOrderResponse(*order))
}

// ListMine handles GET /orders/my.
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	orders, err := h.orders.ListForUser(c.Request.Context(), userID)
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "failed to list orders")
		return
	}

	c.JSON(http.StatusOK, newOrderResponses(orders))
}

// ListForUser handles GET /orders/user/:userId.
func (h *OrderHandler) ListForUser(c *gin.Context) {
	orders, err := h.orders.ListForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "failed to list orders")
		return
	}

	c.JSON(http.StatusOK, newOrderResponses(orders))
}

// ListAll handles GET /orders (admin).
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "failed to list orders")
		return
	}

	c.JSON(http.StatusOK, newOrderResponses(orders))
}

// UpdateStatus handles PATCH /orders/:id/status (admin).
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid status payload"))
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		RespondWithMappedError(c, err, orderErrorCases, http.StatusInternalServerError, "failed to update order status")
		return
	}

	c.JSON(http.StatusOK, newOrderResponse(*order))
}
