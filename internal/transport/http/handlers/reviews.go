package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velora/storefront/internal/transport/http/middleware"
	"github.com/velora/storefront/internal/usecase"
)

// ReviewHandler exposes order review endpoints.
type ReviewHandler struct {
	reviews *usecase.ReviewService
}

func NewReviewHandler(reviews *usecase.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

var reviewErrorCases = []ErrorCase{
	{Err: usecase.ErrInvalidRating, Status: http.StatusBadRequest, Message: "rating must be between 1 and 5"},
	{Err: usecase.ErrOrderNotFound, Status: http.StatusNotFound, Message: "order not found"},
	{Err: usecase.ErrOrderNotOwned, Status: http.StatusForbidden, Message: "order belongs to another user"},
	{Err: usecase.ErrReviewExists, Status: http.StatusConflict, Message: "order already reviewed"},
}

// List handles GET /reviews.
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviews.ListReviews(c.Request.Context())
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, newReviewResponse(review))
	}
	c.JSON(http.StatusOK, out)
}

// Create handles POST /reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid review payload"))
		return
	}

	review, err := h.reviews.SubmitReview(c.Request.Context(), usecase.SubmitReviewInput{
		UserID:  userID,
		OrderID: req.OrderID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		RespondWithMappedError(c, err, reviewErrorCases, http.StatusInternalServerError, "failed to create review")
		return
	}

	c.JSON(http.StatusCreated, newReviewResponse(*review))
}
