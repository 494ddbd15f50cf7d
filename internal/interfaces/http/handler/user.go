package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/logistics-erp/hrm/internal/application/identity"
)

// UserHandler handles user account management HTTP requests
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Create godoc
// @Summary      Create user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "User account"
// @Success      201 {object} dto.Response{data=identity.UserResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), identity.CreateUserRequest{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		EmployeeID:  req.EmployeeID,
		RoleIDs:     req.RoleIDs,
		Active:      req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "User created", user)
}

// GetByID godoc
// @Summary      Get user account
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", user)
}

// List godoc
// @Summary      List user accounts
// @Tags         users
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        search query string false "Search by username, email or display name"
// @Param        status query string false "Filter by status"
// @Param        role_id query string false "Filter by role"
// @Success      200 {object} dto.Response{data=[]identity.UserResponse}
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var query ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.userService.List(c.Request.Context(), identity.ListUsersRequest{
		Page:     query.Page,
		PageSize: query.PageSize,
		Search:   query.Search,
		Status:   query.Status,
		RoleID:   query.RoleID,
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
// @Summary      Update user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body UpdateUserRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, identity.UpdateUserRequest{
		Email:          req.Email,
		DisplayName:    req.DisplayName,
		EmployeeID:     req.EmployeeID,
		UnlinkEmployee: req.UnlinkEmployee,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "User updated", user)
}

// SetRoles godoc
// @Summary      Replace user roles
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body SetUserRolesRequest true "Role IDs"
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id}/roles [put]
func (h *UserHandler) SetRoles(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetUserRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.SetRoles(c.Request.Context(), id, identity.SetUserRolesRequest{
		RoleIDs: req.RoleIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Roles updated", user)
}

// Activate godoc
// @Summary      Activate user account
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Security     BearerAuth
// @Router       /users/{id}/activate [post]
func (h *UserHandler) Activate(c *gin.Context) {
	h.mutateUser(c, "User activated", h.userService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate user account
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Security     BearerAuth
// @Router       /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.mutateUser(c, "User deactivated", h.userService.Deactivate)
}

// Lock godoc
// @Summary      Lock user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body LockUserRequest true "Lock duration"
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Security     BearerAuth
// @Router       /users/{id}/lock [post]
func (h *UserHandler) Lock(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req LockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.Lock(c.Request.Context(), id,
		time.Duration(req.DurationMinutes)*time.Minute)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "User locked", user)
}

// Unlock godoc
// @Summary      Unlock user account
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Security     BearerAuth
// @Router       /users/{id}/unlock [post]
func (h *UserHandler) Unlock(c *gin.Context) {
	h.mutateUser(c, "User unlocked", h.userService.Unlock)
}

// ResetPassword godoc
// @Summary      Reset user password
// @Description  Administrative password reset; does not require the old password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body ResetPasswordRequest true "New password"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /users/{id}/reset-password [post]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), id, identity.ResetPasswordRequest{
		NewPassword:        req.NewPassword,
		MustChangePassword: req.MustChangePassword,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Password reset", nil)
}

// Delete godoc
// @Summary      Delete user account
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

type userMutation func(ctx context.Context, id uuid.UUID) (*identity.UserResponse, error)

func (h *UserHandler) mutateUser(c *gin.Context, message string, fn userMutation) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, message, user)
}
