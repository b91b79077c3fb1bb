package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velora/storefront/internal/usecase"
)

// CustomerHandler exposes the admin customer views.
type CustomerHandler struct {
	customers *usecase.CustomerService
}

func NewCustomerHandler(customers *usecase.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// List handles GET /customers with an optional search query.
func (h *CustomerHandler) List(c *gin.Context) {
	accounts, err := h.customers.ListCustomers(c.Request.Context(), c.Query("search"))
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "failed to list customers")
		return
	}

	out := make([]CustomerResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, newCustomerResponse(account))
	}
	c.JSON(http.StatusOK, out)
}
