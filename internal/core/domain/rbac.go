package domain

import "time"

// Role is a named bundle of permissions. Its permission set is always the
// result of the most recent update; updates replace the whole set.
type Role struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Permissions []Permission
}

// Permission is an atomic (resource, action) capability grant. Permissions
// are administrator-managed reference data; role operations only assign
// existing permission ids.
type Permission struct {
	ID          string
	Name        string
	Description *string
	Resource    string
	Action      string
	CreatedAt   time.Time
}

// RolePermission links a role with a permission.
type RolePermission struct {
	RoleID       string
	PermissionID string
}
