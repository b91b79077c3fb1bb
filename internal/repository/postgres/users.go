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

const uniqueViolationCode = "23505"

// UserRepository implements port.UserRepository over PostgreSQL.
type UserRepository struct {
	db      pgPool
	builder squirrel.StatementBuilderType
}

func NewUserRepository(db pgPool) *UserRepository {
	return &UserRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new account. A duplicate email maps to ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	stmt, args, err := r.builder.Insert("users").
		Columns("id", "name", "email", "phone", "password_hash", "role", "created_at").
		Values(user.ID, user.Name, user.Email, user.Phone, user.PasswordHash, user.Role, user.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user sql: %w", err)
	}

	if _, err := r.db.Exec(ctx, stmt, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("email %s: %w", user.Email, repository.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, pred squirrel.Eq) (*domain.User, error) {
	stmt, args, err := r.builder.Select("id", "name", "email", "phone", "password_hash", "role", "created_at").
		From("users").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	var user domain.User
	row := r.db.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &user, nil
}

// ListCustomers returns every customer account with lifetime spend and a
// newest-first order summary attached. Customers without orders appear with
// a zero total and an empty order list.
func (r *UserRepository) ListCustomers(ctx context.Context) ([]domain.CustomerAccount, error) {
	accounts, err := r.queryCustomers(ctx, r.selectCustomers())
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return accounts, nil
	}

	ids := make([]string, len(accounts))
	for i, account := range accounts {
		ids[i] = account.ID
	}

	stmt, args, err := r.builder.Select("user_id", "id", "status", "total_amount", "created_at").
		From("orders").
		Where(squirrel.Eq{"user_id": ids}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select customer orders sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query customer orders: %w", err)
	}
	defer rows.Close()

	byUser := make(map[string][]domain.CustomerOrder, len(accounts))
	for rows.Next() {
		var (
			userID string
			order  domain.CustomerOrder
		)
		if err := rows.Scan(&userID, &order.ID, &order.Status, &order.TotalAmount, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer order: %w", err)
		}
		byUser[userID] = append(byUser[userID], order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer orders: %w", err)
	}

	for i := range accounts {
		orders := byUser[accounts[i].ID]
		if orders == nil {
			orders = []domain.CustomerOrder{}
		}
		accounts[i].Orders = orders
	}

	return accounts, nil
}

// SearchCustomers filters customers by a case-insensitive substring match on
// name, email or phone. Order summaries are not attached here.
func (r *UserRepository) SearchCustomers(ctx context.Context, query string) ([]domain.CustomerAccount, error) {
	pattern := "%" + query + "%"
	sel := r.selectCustomers().Where(squirrel.Or{
		squirrel.ILike{"u.name": pattern},
		squirrel.ILike{"u.email": pattern},
		squirrel.ILike{"u.phone": pattern},
	})

	accounts, err := r.queryCustomers(ctx, sel)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i].Orders = []domain.CustomerOrder{}
	}
	return accounts, nil
}

func (r *UserRepository) selectCustomers() squirrel.SelectBuilder {
	return r.builder.Select("u.id", "u.name", "u.email", "u.phone", "u.created_at", "COALESCE(SUM(o.total_amount), 0) AS total_spent").
		From("users u").
		LeftJoin("orders o ON o.user_id = u.id").
		Where(squirrel.Eq{"u.role": domain.UserRoleCustomer}).
		GroupBy("u.id", "u.name", "u.email", "u.phone", "u.created_at").
		OrderBy("u.created_at DESC")
}

func (r *UserRepository) queryCustomers(ctx context.Context, sel squirrel.SelectBuilder) ([]domain.CustomerAccount, error) {
	stmt, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select customers sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	accounts := []domain.CustomerAccount{}
	for rows.Next() {
		var account domain.CustomerAccount
		if err := rows.Scan(&account.ID, &account.Name, &account.Email, &account.Phone, &account.CreatedAt, &account.TotalSpent); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}

	return accounts, nil
}
