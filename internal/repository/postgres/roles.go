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

const fkViolationCode = "23503"

// RoleRepository implements port.RoleRepository over PostgreSQL.
type RoleRepository struct {
	db      pgPool
	builder squirrel.StatementBuilderType
}

func NewRoleRepository(db pgPool) *RoleRepository {
	return &RoleRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts the role and its permission assignments in one transaction.
// A permission id that does not exist aborts the whole write with ErrConflict.
func (r *RoleRepository) Create(ctx context.Context, role domain.Role, permissionIDs []string) (*domain.Role, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin role tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stmt, args, err := r.builder.Insert("roles").
		Columns("id", "name", "description", "created_at", "updated_at").
		Values(role.ID, role.Name, role.Description, role.CreatedAt, role.UpdatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert role sql: %w", err)
	}
	if _, err := tx.Exec(ctx, stmt, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, fmt.Errorf("role %s: %w", role.Name, repository.ErrConflict)
		}
		return nil, fmt.Errorf("insert role: %w", err)
	}

	if err := r.assignPermissions(ctx, tx, role.ID, permissionIDs); err != nil {
		return nil, err
	}

	role.Permissions, err = r.permissionsForRole(ctx, tx, role.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit role tx: %w", err)
	}

	return &role, nil
}

// Update rewrites the role row and replaces its whole assignment set. The
// role's existence is verified before any assignment row is touched, so a
// miss leaves the previous assignments intact.
func (r *RoleRepository) Update(ctx context.Context, role domain.Role, permissionIDs []string) (*domain.Role, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin role tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stmt, args, err := r.builder.Update("roles").
		Set("name", role.Name).
		Set("description", role.Description).
		Set("updated_at", role.UpdatedAt).
		Where(squirrel.Eq{"id": role.ID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update role sql: %w", err)
	}
	if err := tx.QueryRow(ctx, stmt, args...).Scan(&role.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update role: %w", err)
	}

	del, delArgs, err := r.builder.Delete("role_permissions").
		Where(squirrel.Eq{"role_id": role.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete role permissions sql: %w", err)
	}
	if _, err := tx.Exec(ctx, del, delArgs...); err != nil {
		return nil, fmt.Errorf("delete role permissions: %w", err)
	}

	if err := r.assignPermissions(ctx, tx, role.ID, permissionIDs); err != nil {
		return nil, err
	}

	role.Permissions, err = r.permissionsForRole(ctx, tx, role.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit role tx: %w", err)
	}

	return &role, nil
}

// Delete removes the role; assignment rows follow via cascade.
func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.Delete("roles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete role sql: %w", err)
	}

	tag, err := r.db.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List returns all roles with their permission sets attached, newest first.
func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	stmt, args, err := r.builder.Select("id", "name", "description", "created_at", "updated_at").
		From("roles").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list roles sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}

	if len(roles) == 0 {
		return roles, nil
	}

	ids := make([]string, len(roles))
	for i, role := range roles {
		ids[i] = role.ID
	}

	sel, selArgs, err := r.builder.Select("rp.role_id", "p.id", "p.name", "p.description", "p.resource", "p.action", "p.created_at").
		From("role_permissions rp").
		Join("permissions p ON p.id = rp.permission_id").
		Where(squirrel.Eq{"rp.role_id": ids}).
		OrderBy("p.resource ASC", "p.action ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select role permissions sql: %w", err)
	}

	permRows, err := r.db.Query(ctx, sel, selArgs...)
	if err != nil {
		return nil, fmt.Errorf("query role permissions: %w", err)
	}
	defer permRows.Close()

	byRole := make(map[string][]domain.Permission, len(roles))
	for permRows.Next() {
		var (
			roleID string
			perm   domain.Permission
		)
		if err := permRows.Scan(&roleID, &perm.ID, &perm.Name, &perm.Description, &perm.Resource, &perm.Action, &perm.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role permission: %w", err)
		}
		byRole[roleID] = append(byRole[roleID], perm)
	}
	if err := permRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate role permissions: %w", err)
	}

	for i := range roles {
		perms := byRole[roles[i].ID]
		if perms == nil {
			perms = []domain.Permission{}
		}
		roles[i].Permissions = perms
	}

	return roles, nil
}

func (r *RoleRepository) assignPermissions(ctx context.Context, tx pgx.Tx, roleID string, permissionIDs []string) error {
	if len(permissionIDs) == 0 {
		return nil
	}

	ins := r.builder.Insert("role_permissions").Columns("role_id", "permission_id")
	for _, permissionID := range permissionIDs {
		ins = ins.Values(roleID, permissionID)
	}

	stmt, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert role permissions sql: %w", err)
	}
	if _, err := tx.Exec(ctx, stmt, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolationCode {
			return fmt.Errorf("assign role permissions: %w", repository.ErrConflict)
		}
		return fmt.Errorf("assign role permissions: %w", err)
	}

	return nil
}

func (r *RoleRepository) permissionsForRole(ctx context.Context, exec pgExecutor, roleID string) ([]domain.Permission, error) {
	stmt, args, err := r.builder.Select("p.id", "p.name", "p.description", "p.resource", "p.action", "p.created_at").
		From("role_permissions rp").
		Join("permissions p ON p.id = rp.permission_id").
		Where(squirrel.Eq{"rp.role_id": roleID}).
		OrderBy("p.resource ASC", "p.action ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select role permissions sql: %w", err)
	}

	rows, err := exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query role permissions: %w", err)
	}
	defer rows.Close()

	permissions := []domain.Permission{}
	for rows.Next() {
		var perm domain.Permission
		if err := rows.Scan(&perm.ID, &perm.Name, &perm.Description, &perm.Resource, &perm.Action, &perm.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		permissions = append(permissions, perm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate permissions: %w", err)
	}

	return permissions, nil
}
