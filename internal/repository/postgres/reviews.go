package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/repository"
)

// ReviewRepository implements port.ReviewRepository over PostgreSQL.
type ReviewRepository struct {
	db      pgPool
	builder squirrel.StatementBuilderType
}

func NewReviewRepository(db pgPool) *ReviewRepository {
	return &ReviewRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a review. The unique order constraint maps to ErrConflict.
func (r *ReviewRepository) Create(ctx context.Context, review domain.Review) (*domain.Review, error) {
	stmt, args, err := r.builder.Insert("reviews").
		Columns("id", "user_id", "order_id", "rating", "comment", "created_at").
		Values(review.ID, review.UserID, review.OrderID, review.Rating, review.Comment, review.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert review sql: %w", err)
	}

	if _, err := r.db.Exec(ctx, stmt, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, fmt.Errorf("order %s: %w", review.OrderID, repository.ErrConflict)
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	return &review, nil
}

func (r *ReviewRepository) GetByOrder(ctx context.Context, orderID string) (*domain.Review, error) {
	stmt, args, err := r.builder.Select("id", "user_id", "order_id", "rating", "comment", "created_at").
		From("reviews").
		Where(squirrel.Eq{"order_id": orderID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select review sql: %w", err)
	}

	var review domain.Review
	row := r.db.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&review.ID, &review.UserID, &review.OrderID, &review.Rating, &review.Comment, &review.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	return &review, nil
}

// List returns every review joined with the author's name and the reviewed
// order's date, newest first.
func (r *ReviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	stmt, args, err := r.builder.Select("r.id", "r.user_id", "u.name", "r.order_id", "o.created_at", "r.rating", "r.comment", "r.created_at").
		From("reviews r").
		Join("users u ON u.id = r.user_id").
		Join("orders o ON o.id = r.order_id").
		OrderBy("r.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reviews sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(&review.ID, &review.UserID, &review.UserName, &review.OrderID, &review.OrderDate, &review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}
