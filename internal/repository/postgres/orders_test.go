package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/shopspring/decimal"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/repository"
)

func TestOrderRepository_Create_DerivesTotalFromSnapshots(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewOrderRepository(mock)

	order := domain.Order{
		ID:        "order-1",
		UserID:    "user-1",
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(order.ID, order.UserID, order.Status, pgxmock.AnyArg(), order.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	mock.ExpectQuery(`SELECT name, price FROM products WHERE id = \$1`).
		WithArgs("product-1").
		WillReturnRows(pgxmock.NewRows([]string{"name", "price"}).
			AddRow("Desk Lamp", decimal.NewFromInt(100)))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(order.ID, "product-1", "Desk Lamp", 2, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	mock.ExpectQuery(`SELECT name, price FROM products WHERE id = \$1`).
		WithArgs("product-2").
		WillReturnRows(pgxmock.NewRows([]string{"name", "price"}).
			AddRow("Notebook", decimal.RequireFromString("9.50")))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(order.ID, "product-2", "Notebook", 1, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	mock.ExpectExec(`UPDATE orders SET total_amount`).
		WithArgs(pgxmock.AnyArg(), order.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), order, []domain.OrderItemRequest{
		{ProductID: "product-1", Quantity: 2},
		{ProductID: "product-2", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if want := decimal.RequireFromString("209.50"); !created.TotalAmount.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, created.TotalAmount)
	}
	if len(created.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(created.Items))
	}
	if created.Items[0].ProductName != "Desk Lamp" {
		t.Fatalf("expected snapshot name Desk Lamp, got %s", created.Items[0].ProductName)
	}
	if !created.Items[0].Price.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected snapshot price 100, got %s", created.Items[0].Price)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderRepository_Create_UnknownProductRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewOrderRepository(mock)

	order := domain.Order{
		ID:        "order-1",
		UserID:    "user-1",
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(order.ID, order.UserID, order.Status, pgxmock.AnyArg(), order.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`SELECT name, price FROM products WHERE id = \$1`).
		WithArgs("product-404").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err = repo.Create(context.Background(), order, []domain.OrderItemRequest{
		{ProductID: "product-404", Quantity: 1},
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewOrderRepository(mock)

	mock.ExpectQuery(`UPDATE orders SET status`).
		WithArgs(domain.OrderStatusShipped, "order-404").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.UpdateStatus(context.Background(), "order-404", domain.OrderStatusShipped)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderRepository_GetByID_AttachesItems(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewOrderRepository(mock)

	placedAt := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, user_id, status, total_amount, created_at FROM orders`).
		WithArgs("order-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "status", "total_amount", "created_at"}).
			AddRow("order-1", "user-1", domain.OrderStatusPending, decimal.NewFromInt(200), placedAt))

	mock.ExpectQuery(`SELECT order_id, product_id, product_name, price, quantity FROM order_items`).
		WithArgs("order-1").
		WillReturnRows(pgxmock.NewRows([]string{"order_id", "product_id", "product_name", "price", "quantity"}).
			AddRow("order-1", "product-1", "Desk Lamp", decimal.NewFromInt(100), 2))

	order, err := repo.GetByID(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(order.Items))
	}
	if order.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", order.Items[0].Quantity)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
