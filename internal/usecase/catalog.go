package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/core/port"
	"github.com/velora/storefront/internal/repository"
)

var (
	// ErrProductNotFound is returned when the product id does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidPrice indicates a negative price.
	ErrInvalidPrice = errors.New("price must not be negative")
)

// ProductInput captures the payload for creating or updating a product.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
	Stock       int
	Featured    bool
}

// CatalogService manages the product catalogue.
type CatalogService struct {
	products port.ProductRepository
}

func NewCatalogService(products port.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	product := domain.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Stock:       input.Stock,
		Featured:    input.Featured,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return &product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	return product, nil
}

// ListProducts returns the catalogue, optionally filtered by category.
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	category = strings.TrimSpace(category)

	var (
		products []domain.Product
		err      error
	)
	if category != "" {
		products, err = s.products.ListByCategory(ctx, category)
	} else {
		products, err = s.products.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

// UpdateProduct replaces every editable field. Orders placed earlier keep
// their stored snapshots; a price change only affects future checkouts.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	if input.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	product := domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Stock:       input.Stock,
		Featured:    input.Featured,
	}

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	updated, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}

	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
