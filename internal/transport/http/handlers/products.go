package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velora/storefront/internal/usecase"
)

// ProductHandler exposes catalogue endpoints.
type ProductHandler struct {
	catalog *usecase.CatalogService
}

func NewProductHandler(catalog *usecase.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

var productErrorCases = []ErrorCase{
	{Err: usecase.ErrProductNotFound, Status: http.StatusNotFound, Message: "product not found"},
	{Err: usecase.ErrInvalidPrice, Status: http.StatusBadRequest, Message: "price must not be negative"},
}

// List handles GET /products with an optional category filter.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "failed to list products")
		return
	}

	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, newProductResponse(product))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, productErrorCases, http.StatusInternalServerError, "failed to load product")
		return
	}

	c.JSON(http.StatusOK, newProductResponse(*product))
}

// Create handles POST /products (admin).
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid product payload"))
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), productInput(req))
	if err != nil {
		RespondWithMappedError(c, err, productErrorCases, http.StatusInternalServerError, "failed to create product")
		return
	}

	c.JSON(http.StatusCreated, newProductResponse(*product))
}

// Update handles PUT /products/:id (admin).
func (h *ProductHandler) Update(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid product payload"))
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), productInput(req))
	if err != nil {
		RespondWithMappedError(c, err, productErrorCases, http.StatusInternalServerError, "failed to update product")
		return
	}

	c.JSON(http.StatusOK, newProductResponse(*product))
}

// Delete handles DELETE /products/:id (admin).
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err, productErrorCases, http.StatusInternalServerError, "failed to delete product")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "product deleted"})
}

func productInput(req ProductRequest) usecase.ProductInput {
	return usecase.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
		Featured:    req.Featured,
	}
}
