package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/velora/storefront/internal/core/domain"
)

func TestReviewService_SubmitReview_RejectsOutOfRangeRating(t *testing.T) {
	svc := NewReviewService(newReviewRepoStub(), newOrderRepoStub())

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
			UserID:  "user-1",
			OrderID: "order-1",
			Rating:  rating,
		})
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestReviewService_SubmitReview_UnknownOrder(t *testing.T) {
	svc := NewReviewService(newReviewRepoStub(), newOrderRepoStub())

	_, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
		UserID:  "user-1",
		OrderID: "order-404",
		Rating:  5,
	})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestReviewService_SubmitReview_ForeignOrder(t *testing.T) {
	orders := newOrderRepoStub()
	orders.orders["order-1"] = domain.Order{ID: "order-1", UserID: "someone-else"}
	svc := NewReviewService(newReviewRepoStub(), orders)

	_, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
		UserID:  "user-1",
		OrderID: "order-1",
		Rating:  4,
	})
	if !errors.Is(err, ErrOrderNotOwned) {
		t.Fatalf("expected ErrOrderNotOwned, got %v", err)
	}
}

func TestReviewService_SubmitReview_OnePerOrder(t *testing.T) {
	orders := newOrderRepoStub()
	placedAt := time.Now().UTC().Add(-48 * time.Hour)
	orders.orders["order-1"] = domain.Order{ID: "order-1", UserID: "user-1", CreatedAt: placedAt}
	svc := NewReviewService(newReviewRepoStub(), orders)

	input := SubmitReviewInput{
		UserID:  "user-1",
		OrderID: "order-1",
		Rating:  5,
		Comment: "arrived fast",
	}

	review, err := svc.SubmitReview(context.Background(), input)
	if err != nil {
		t.Fatalf("SubmitReview returned error: %v", err)
	}
	if !review.OrderDate.Equal(placedAt) {
		t.Fatalf("expected order date %v, got %v", placedAt, review.OrderDate)
	}

	if _, err := svc.SubmitReview(context.Background(), input); !errors.Is(err, ErrReviewExists) {
		t.Fatalf("expected ErrReviewExists, got %v", err)
	}
}
