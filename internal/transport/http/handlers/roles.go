package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velora/storefront/internal/usecase"
)

// RoleHandler exposes the admin role and permission endpoints.
type RoleHandler struct {
	roles *usecase.RoleService
}

func NewRoleHandler(roles *usecase.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

var roleErrorCases = []ErrorCase{
	{Err: usecase.ErrRoleNotFound, Status: http.StatusNotFound, Message: "role not found"},
	{Err: usecase.ErrRoleNameRequired, Status: http.StatusBadRequest, Message: "role name is required"},
	{Err: usecase.ErrInvalidPermissionReference, Status: http.StatusConflict, Message: "permission reference invalid"},
}

// List handles GET /roles.
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.ListRoles(c.Request.Context())
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "failed to list roles")
		return
	}

	out := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, newRoleResponse(role))
	}
	c.JSON(http.StatusOK, out)
}

// Create handles POST /roles.
func (h *RoleHandler) Create(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid role payload"))
		return
	}

	role, err := h.roles.CreateRole(c.Request.Context(), usecase.RoleInput{
		Name:          req.Name,
		Description:   req.Description,
		PermissionIDs: req.PermissionIDs,
	})
	if err != nil {
		RespondWithMappedError(c, err, roleErrorCases, http.StatusInternalServerError, "failed to create role")
		return
	}

	c.JSON(http.StatusCreated, newRoleResponse(*role))
}

// Update handles PUT /roles/:id. The permission id list replaces the role's
// entire assignment set.
func (h *RoleHandler) Update(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid role payload"))
		return
	}

	role, err := h.roles.UpdateRole(c.Request.Context(), c.Param("id"), usecase.RoleInput{
		Name:          req.Name,
		Description:   req.Description,
		PermissionIDs: req.PermissionIDs,
	})
	if err != nil {
		RespondWithMappedError(c, err, roleErrorCases, http.StatusInternalServerError, "failed to update role")
		return
	}

	c.JSON(http.StatusOK, newRoleResponse(*role))
}

// Delete handles DELETE /roles/:id.
func (h *RoleHandler) Delete(c *gin.Context) {
	if err := h.roles.DeleteRole(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err, roleErrorCases, http.StatusInternalServerError, "failed to delete role")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "role deleted"})
}

// ListPermissions handles GET /permissions.
func (h *RoleHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.roles.ListPermissions(c.Request.Context())
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "failed to list permissions")
		return
	}

	out := make([]PermissionResponse, 0, len(permissions))
	for _, perm := range permissions {
		out = append(out, newPermissionResponse(perm))
	}
	c.JSON(http.StatusOK, out)
}
