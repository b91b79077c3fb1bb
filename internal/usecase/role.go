package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/core/port"
	"github.com/velora/storefront/internal/repository"
)

var (
	// ErrRoleNotFound is returned when the role id does not exist.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameRequired indicates a blank role name.
	ErrRoleNameRequired = errors.New("role name is required")
	// ErrInvalidPermissionReference indicates an assignment naming a
	// permission id that does not exist.
	ErrInvalidPermissionReference = errors.New("permission reference invalid")
)

// RoleInput captures the payload for creating or updating a role. The
// permission id list always replaces the role's entire assignment set.
type RoleInput struct {
	Name          string
	Description   *string
	PermissionIDs []string
}

// RoleService manages roles and the permission catalogue.
type RoleService struct {
	roles       port.RoleRepository
	permissions port.PermissionRepository
}

func NewRoleService(roles port.RoleRepository, permissions port.PermissionRepository) *RoleService {
	return &RoleService{roles: roles, permissions: permissions}
}

// CreateRole provisions a role together with its initial permission set.
func (s *RoleService) CreateRole(ctx context.Context, input RoleInput) (*domain.Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrRoleNameRequired
	}

	now := time.Now().UTC()
	role := domain.Role{
		ID:          uuid.NewString(),
		Name:        name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.roles.Create(ctx, role, dedupe(input.PermissionIDs))
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrInvalidPermissionReference
		}
		return nil, fmt.Errorf("create role: %w", err)
	}

	return created, nil
}

// UpdateRole rewrites the role and replaces its whole assignment set. The
// previous set survives untouched when the role does not exist.
func (s *RoleService) UpdateRole(ctx context.Context, id string, input RoleInput) (*domain.Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrRoleNameRequired
	}

	role := domain.Role{
		ID:          id,
		Name:        name,
		Description: input.Description,
		UpdatedAt:   time.Now().UTC(),
	}

	updated, err := s.roles.Update(ctx, role, dedupe(input.PermissionIDs))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrRoleNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrInvalidPermissionReference
		}
		return nil, fmt.Errorf("update role: %w", err)
	}

	return updated, nil
}

// DeleteRole removes a role and, via cascade, its assignments.
func (s *RoleService) DeleteRole(ctx context.Context, id string) error {
	if err := s.roles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}

// ListRoles returns all roles with their permission sets.
func (s *RoleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// ListPermissions returns the permission catalogue.
func (s *RoleService) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	permissions, err := s.permissions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return permissions, nil
}

// dedupe drops duplicate ids while preserving first-seen order, so repeated
// ids in a request cannot violate the assignment primary key.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
