package handler

import "github.com/google/uuid"

// CreateUserRequest represents the request body for creating a user account
type CreateUserRequest struct {
	Username    string      `json:"username" binding:"required,min=3,max=100"`
	Password    string      `json:"password" binding:"required,min=8,max=128"`
	Email       string      `json:"email" binding:"omitempty,email"`
	DisplayName string      `json:"display_name" binding:"omitempty,max=200"`
	EmployeeID  *uuid.UUID  `json:"employee_id"`
	RoleIDs     []uuid.UUID `json:"role_ids"`
	Active      bool        `json:"active"`
}

// UpdateUserRequest represents the request body for updating a user account
type UpdateUserRequest struct {
	Email          *string    `json:"email" binding:"omitempty,email"`
	DisplayName    *string    `json:"display_name" binding:"omitempty,max=200"`
	EmployeeID     *uuid.UUID `json:"employee_id"`
	UnlinkEmployee bool       `json:"unlink_employee"`
}

// SetUserRolesRequest replaces the user's role set
type SetUserRolesRequest struct {
	RoleIDs []uuid.UUID `json:"role_ids" binding:"required"`
}

// ResetPasswordRequest represents the request body for an admin password reset
type ResetPasswordRequest struct {
	NewPassword        string `json:"new_password" binding:"required,min=8,max=128"`
	MustChangePassword bool   `json:"must_change_password"`
}

// LockUserRequest represents the request body for locking a user account
type LockUserRequest struct {
	DurationMinutes int `json:"duration_minutes" binding:"required,min=1,max=10080"`
}

// ListUsersQuery carries pagination and filtering for user listing
type ListUsersQuery struct {
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"pageSize" binding:"omitempty,min=1,max=100"`
	Search   string     `form:"search"`
	Status   string     `form:"status" binding:"omitempty,oneof=pending active locked deactivated"`
	RoleID   *uuid.UUID `form:"role_id"`
	SortBy   string     `form:"sortBy" binding:"omitempty,oneof=username email status created_at updated_at last_login_at"`
	SortDir  string     `form:"sortDir" binding:"omitempty,oneof=asc desc"`
}

// CreateRoleRequest represents the request body for creating a role
type CreateRoleRequest struct {
	Code        string   `json:"code" binding:"required,min=2,max=50"`
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	Description string   `json:"description" binding:"omitempty,max=500"`
	Permissions []string `json:"permissions"`
}

// UpdateRoleRequest represents the request body for updating a role
type UpdateRoleRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// SetRolePermissionsRequest replaces the role's permission set
type SetRolePermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}

// ListRolesQuery carries pagination and filtering for role listing
type ListRolesQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	SortBy   string `form:"sortBy" binding:"omitempty,oneof=code name created_at updated_at"`
	SortDir  string `form:"sortDir" binding:"omitempty,oneof=asc desc"`
}
