package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/logistics-erp/hrm/internal/application/identity"
)

// RoleHandler handles role management HTTP requests
type RoleHandler struct {
	BaseHandler
	roleService *identity.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *identity.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// Create godoc
// @Summary      Create role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        request body CreateRoleRequest true "Role"
// @Success      201 {object} dto.Response{data=identity.RoleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), identity.CreateRoleRequest{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Role created", role)
}

// GetByID godoc
// @Summary      Get role
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID"
// @Success      200 {object} dto.Response{data=identity.RoleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /roles/{id} [get]
func (h *RoleHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.roleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", role)
}

// List godoc
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        search query string false "Search by code or name"
// @Success      200 {object} dto.Response{data=[]identity.RoleResponse}
// @Security     BearerAuth
// @Router       /roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	var query ListRolesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.roleService.List(c.Request.Context(), identity.ListRolesRequest{
		Page:     query.Page,
		PageSize: query.PageSize,
		Search:   query.Search,
		OrderBy:  query.SortBy,
		OrderDir: query.SortDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, "OK", result.Items, result.Page, result.PageSize, result.Total)
}

// Update godoc
// @Summary      Update role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id path string true "Role ID"
// @Param        request body UpdateRoleRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=identity.RoleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /roles/{id} [put]
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), id, identity.UpdateRoleRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Role updated", role)
}

// SetPermissions godoc
// @Summary      Replace role permissions
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id path string true "Role ID"
// @Param        request body SetRolePermissionsRequest true "Permission codes"
// @Success      200 {object} dto.Response{data=identity.RoleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /roles/{id}/permissions [put]
func (h *RoleHandler) SetPermissions(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	role, err := h.roleService.SetPermissions(c.Request.Context(), id, identity.SetRolePermissionsRequest{
		Permissions: req.Permissions,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Permissions updated", role)
}

// Enable godoc
// @Summary      Enable role
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID"
// @Success      200 {object} dto.Response{data=identity.RoleResponse}
// @Security     BearerAuth
// @Router       /roles/{id}/enable [post]
func (h *RoleHandler) Enable(c *gin.Context) {
	h.mutateRole(c, "Role enabled", h.roleService.Enable)
}

// Disable godoc
// @Summary      Disable role
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID"
// @Success      200 {object} dto.Response{data=identity.RoleResponse}
// @Security     BearerAuth
// @Router       /roles/{id}/disable [post]
func (h *RoleHandler) Disable(c *gin.Context) {
	h.mutateRole(c, "Role disabled", h.roleService.Disable)
}

// Delete godoc
// @Summary      Delete role
// @Description  System roles and roles still assigned to users cannot be deleted
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /roles/{id} [delete]
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

type roleMutation func(ctx context.Context, id uuid.UUID) (*identity.RoleResponse, error)

func (h *RoleHandler) mutateRole(c *gin.Context, message string, fn roleMutation) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, message, role)
}
