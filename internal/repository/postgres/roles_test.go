package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/repository"
)

func TestRoleRepository_Update_ReplacesAssignmentSet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRoleRepository(mock)

	now := time.Now().UTC()
	role := domain.Role{ID: "role-1", Name: "support", UpdatedAt: now}

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE roles SET`).
		WithArgs(role.Name, role.Description, role.UpdatedAt, role.ID).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now.Add(-time.Hour)))
	mock.ExpectExec(`DELETE FROM role_permissions`).
		WithArgs(role.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`INSERT INTO role_permissions`).
		WithArgs(role.ID, "perm-1", role.ID, "perm-2").
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectQuery(`SELECT p\.id, p\.name, p\.description, p\.resource, p\.action, p\.created_at FROM role_permissions`).
		WithArgs(role.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "resource", "action", "created_at"}).
			AddRow("perm-1", "orders.read", nil, "orders", "read", now).
			AddRow("perm-2", "orders.update", nil, "orders", "update", now))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), role, []string{"perm-1", "perm-2"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(updated.Permissions) != 2 {
		t.Fatalf("expected 2 permissions, got %d", len(updated.Permissions))
	}
	if updated.Permissions[0].ID != "perm-1" {
		t.Fatalf("expected perm-1 first, got %s", updated.Permissions[0].ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRoleRepository_Update_EmptySetClearsAssignments(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRoleRepository(mock)

	now := time.Now().UTC()
	role := domain.Role{ID: "role-1", Name: "support", UpdatedAt: now}

	// Only the delete runs; an empty id list issues no insert.
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE roles SET`).
		WithArgs(role.Name, role.Description, role.UpdatedAt, role.ID).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now.Add(-time.Hour)))
	mock.ExpectExec(`DELETE FROM role_permissions`).
		WithArgs(role.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectQuery(`SELECT p\.id, p\.name, p\.description, p\.resource, p\.action, p\.created_at FROM role_permissions`).
		WithArgs(role.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "resource", "action", "created_at"}))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), role, []string{})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Permissions == nil || len(updated.Permissions) != 0 {
		t.Fatalf("expected empty permission set, got %v", updated.Permissions)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRoleRepository_Update_MissingRoleLeavesAssignmentsAlone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRoleRepository(mock)

	role := domain.Role{ID: "role-404", Name: "ghost", UpdatedAt: time.Now().UTC()}

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE roles SET`).
		WithArgs(role.Name, role.Description, role.UpdatedAt, role.ID).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err = repo.Update(context.Background(), role, []string{"perm-1"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRoleRepository_Create_UnknownPermissionConflicts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRoleRepository(mock)

	now := time.Now().UTC()
	role := domain.Role{ID: "role-1", Name: "support", CreatedAt: now, UpdatedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO roles`).
		WithArgs(role.ID, role.Name, role.Description, role.CreatedAt, role.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO role_permissions`).
		WithArgs(role.ID, "perm-404").
		WillReturnError(&pgconn.PgError{Code: fkViolationCode})
	mock.ExpectRollback()

	_, err = repo.Create(context.Background(), role, []string{"perm-404"})
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRoleRepository_Delete_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRoleRepository(mock)

	mock.ExpectExec(`DELETE FROM roles`).
		WithArgs("role-404").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "role-404"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
