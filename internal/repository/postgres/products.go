package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/repository"
)

// ProductRepository implements port.ProductRepository over PostgreSQL.
type ProductRepository struct {
	db      pgPool
	builder squirrel.StatementBuilderType
}

func NewProductRepository(db pgPool) *ProductRepository {
	return &ProductRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product domain.Product) error {
	stmt, args, err := r.builder.Insert("products").
		Columns("id", "name", "description", "price", "image_url", "category", "stock", "featured", "created_at").
		Values(product.ID, product.Name, product.Description, product.Price, product.ImageURL, product.Category, product.Stock, product.Featured, product.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert product sql: %w", err)
	}

	if _, err := r.db.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	stmt, args, err := r.selectProducts().
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select product sql: %w", err)
	}

	var product domain.Product
	row := r.db.QueryRow(ctx, stmt, args...)
	if err := scanProduct(row, &product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	stmt, args, err := r.selectProducts().
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products sql: %w", err)
	}

	return r.queryProducts(ctx, stmt, args)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	stmt, args, err := r.selectProducts().
		Where(squirrel.Eq{"category": category}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products by category sql: %w", err)
	}

	return r.queryProducts(ctx, stmt, args)
}

func (r *ProductRepository) Update(ctx context.Context, product domain.Product) error {
	stmt, args, err := r.builder.Update("products").
		Set("name", product.Name).
		Set("description", product.Description).
		Set("price", product.Price).
		Set("image_url", product.ImageURL).
		Set("category", product.Category).
		Set("stock", product.Stock).
		Set("featured", product.Featured).
		Where(squirrel.Eq{"id": product.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update product sql: %w", err)
	}

	tag, err := r.db.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.Delete("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete product sql: %w", err)
	}

	tag, err := r.db.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *ProductRepository) selectProducts() squirrel.SelectBuilder {
	return r.builder.Select("id", "name", "description", "price", "image_url", "category", "stock", "featured", "created_at").
		From("products")
}

func (r *ProductRepository) queryProducts(ctx context.Context, stmt string, args []any) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row, product *domain.Product) error {
	return row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.ImageURL,
		&product.Category,
		&product.Stock,
		&product.Featured,
		&product.CreatedAt,
	)
}
