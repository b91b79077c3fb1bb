package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/repository"
)

type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgPool adds transaction support on top of plain statement execution.
type pgPool interface {
	pgExecutor
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderRepository implements port.OrderRepository over PostgreSQL.
type OrderRepository struct {
	db      pgPool
	builder squirrel.StatementBuilderType
}

// NewOrderRepository constructs a repository backed by any executor that satisfies pgPool.
func NewOrderRepository(db pgPool) *OrderRepository {
	return &OrderRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create persists the order, its line-item snapshots, and the derived total
// inside one transaction. Product names and prices are read at this moment;
// later product edits never touch the stored snapshot. Stock is neither
// checked nor decremented.
func (r *OrderRepository) Create(ctx context.Context, order domain.Order, items []domain.OrderItemRequest) (*domain.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stmt, args, err := r.builder.Insert("orders").
		Columns("id", "user_id", "status", "total_amount", "created_at").
		Values(order.ID, order.UserID, order.Status, decimal.Zero, order.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert order sql: %w", err)
	}
	if _, err := tx.Exec(ctx, stmt, args...); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	total := decimal.Zero
	order.Items = make([]domain.OrderItem, 0, len(items))

	for _, item := range items {
		sel, selArgs, err := r.builder.Select("name", "price").
			From("products").
			Where(squirrel.Eq{"id": item.ProductID}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build select product sql: %w", err)
		}

		var (
			name  string
			price decimal.Decimal
		)
		if err := tx.QueryRow(ctx, sel, selArgs...).Scan(&name, &price); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("product %s: %w", item.ProductID, repository.ErrNotFound)
			}
			return nil, fmt.Errorf("snapshot product %s: %w", item.ProductID, err)
		}

		ins, insArgs, err := r.builder.Insert("order_items").
			Columns("order_id", "product_id", "product_name", "quantity", "price").
			Values(order.ID, item.ProductID, name, item.Quantity, price).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build insert order item sql: %w", err)
		}
		if _, err := tx.Exec(ctx, ins, insArgs...); err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}

		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: name,
			Price:       price,
			Quantity:    item.Quantity,
		})
	}

	upd, updArgs, err := r.builder.Update("orders").
		Set("total_amount", total).
		Where(squirrel.Eq{"id": order.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update order total sql: %w", err)
	}
	if _, err := tx.Exec(ctx, upd, updArgs...); err != nil {
		return nil, fmt.Errorf("update order total: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order tx: %w", err)
	}

	order.TotalAmount = total
	return &order, nil
}

// GetByID retrieves a single order with its line items.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	stmt, args, err := r.builder.Select("id", "user_id", "status", "total_amount", "created_at").
		From("orders").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select order sql: %w", err)
	}

	var order domain.Order
	row := r.db.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&order.ID, &order.UserID, &order.Status, &order.TotalAmount, &order.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	orders, err := r.attachItems(ctx, []domain.Order{order})
	if err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// UpdateStatus overwrites the status field unconditionally; any status may
// move to any other. Returns ErrNotFound when the id does not exist.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	stmt, args, err := r.builder.Update("orders").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, user_id, status, total_amount, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update order status sql: %w", err)
	}

	var order domain.Order
	row := r.db.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&order.ID, &order.UserID, &order.Status, &order.TotalAmount, &order.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan updated order: %w", err)
	}

	orders, err := r.attachItems(ctx, []domain.Order{order})
	if err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// ListByUser returns one user's orders with items, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	stmt, args, err := r.builder.Select("id", "user_id", "status", "total_amount", "created_at").
		From("orders").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list user orders sql: %w", err)
	}

	orders, err := r.queryOrders(ctx, stmt, args, false)
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, orders)
}

// ListAll returns every order joined with the owning user's display name,
// newest first. Orders without line items are included.
func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	stmt, args, err := r.builder.Select("o.id", "o.user_id", "u.name", "o.status", "o.total_amount", "o.created_at").
		From("orders o").
		Join("users u ON u.id = o.user_id").
		OrderBy("o.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list orders sql: %w", err)
	}

	orders, err := r.queryOrders(ctx, stmt, args, true)
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, orders)
}

func (r *OrderRepository) queryOrders(ctx context.Context, stmt string, args []any, withUserName bool) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var dest []any
		if withUserName {
			dest = []any{&order.ID, &order.UserID, &order.UserName, &order.Status, &order.TotalAmount, &order.CreatedAt}
		} else {
			dest = []any{&order.ID, &order.UserID, &order.Status, &order.TotalAmount, &order.CreatedAt}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}

func (r *OrderRepository) attachItems(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	stmt, args, err := r.builder.Select("order_id", "product_id", "product_name", "price", "quantity").
		From("order_items").
		Where(squirrel.Eq{"order_id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select order items sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	byOrder := make(map[string][]domain.OrderItem, len(orders))
	for rows.Next() {
		var (
			orderID string
			item    domain.OrderItem
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.ProductName, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		byOrder[orderID] = append(byOrder[orderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	for i := range orders {
		items := byOrder[orders[i].ID]
		if items == nil {
			items = []domain.OrderItem{}
		}
		orders[i].Items = items
	}

	return orders, nil
}
