package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/core/port"
	"github.com/velora/storefront/internal/repository"
)

var (
	// ErrReviewExists indicates the order has already been reviewed.
	ErrReviewExists = errors.New("order already reviewed")
	// ErrInvalidRating indicates a rating outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrOrderNotOwned indicates the caller tried to review someone
	// else's order.
	ErrOrderNotOwned = errors.New("order belongs to another user")
)

// SubmitReviewInput captures the review payload.
type SubmitReviewInput struct {
	UserID  string
	OrderID string
	Rating  int
	Comment string
}

// ReviewService handles order reviews.
type ReviewService struct {
	reviews port.ReviewRepository
	orders  port.OrderRepository
}

func NewReviewService(reviews port.ReviewRepository, orders port.OrderRepository) *ReviewService {
	return &ReviewService{reviews: reviews, orders: orders}
}

// SubmitReview stores a rating for one of the caller's orders. Each order
// accepts at most one review.
func (s *ReviewService) SubmitReview(ctx context.Context, input SubmitReviewInput) (*domain.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	order, err := s.orders.GetByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order.UserID != input.UserID {
		return nil, ErrOrderNotOwned
	}

	review := domain.Review{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		OrderID:   input.OrderID,
		OrderDate: order.CreatedAt,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrReviewExists
		}
		return nil, fmt.Errorf("create review: %w", err)
	}
	created.OrderDate = order.CreatedAt

	return created, nil
}

// ListReviews returns all reviews with author names, newest first.
func (s *ReviewService) ListReviews(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
