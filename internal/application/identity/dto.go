package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/logistics-erp/hrm/internal/domain/identity"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	Email       string
	EmployeeID  *uuid.UUID
	Permissions []string
	RoleIDs     []uuid.UUID
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID       uuid.UUID
	AccessJTI    string        // access token JWT ID to blacklist
	AccessTTL    time.Duration // remaining lifetime of the access token
	RefreshToken string        // optional, revoked alongside the access token
	AllSessions  bool          // invalidate every outstanding token of the user
}

// GetCurrentUserInput contains the input for getting current user info
type GetCurrentUserInput struct {
	UserID uuid.UUID
}

// CurrentUserResult contains the current user's information
type CurrentUserResult struct {
	User        UserInfo
	Permissions []string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserRequest contains the input for creating a user account
type CreateUserRequest struct {
	Username    string
	Password    string
	Email       string
	DisplayName string
	EmployeeID  *uuid.UUID
	RoleIDs     []uuid.UUID
	Active      bool // created accounts start pending unless explicitly activated
}

// UpdateUserRequest contains the fields an admin may change on an account
type UpdateUserRequest struct {
	Email          *string
	DisplayName    *string
	EmployeeID     *uuid.UUID
	UnlinkEmployee bool
}

// SetUserRolesRequest replaces the user's role set
type SetUserRolesRequest struct {
	RoleIDs []uuid.UUID
}

// ResetPasswordRequest contains the input for an admin password reset
type ResetPasswordRequest struct {
	NewPassword        string
	MustChangePassword bool
}

// ListUsersRequest carries pagination and filtering for user listing
type ListUsersRequest struct {
	Page     int
	PageSize int
	Search   string
	Status   string
	RoleID   *uuid.UUID
	OrderBy  string
	OrderDir string
}

// UserResponse is the user representation exposed by the API
type UserResponse struct {
	ID                 uuid.UUID   `json:"id"`
	Username           string      `json:"username"`
	Email              string      `json:"email,omitempty"`
	DisplayName        string      `json:"display_name,omitempty"`
	Status             string      `json:"status"`
	EmployeeID         *uuid.UUID  `json:"employee_id,omitempty"`
	RoleIDs            []uuid.UUID `json:"role_ids"`
	LastLoginAt        *time.Time  `json:"last_login_at,omitempty"`
	MustChangePassword bool        `json:"must_change_password"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// ToUserResponse maps a user aggregate to its API representation
func ToUserResponse(user *identity.User) *UserResponse {
	return &UserResponse{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		DisplayName:        user.DisplayName,
		Status:             string(user.Status),
		EmployeeID:         user.EmployeeID,
		RoleIDs:            user.RoleIDs,
		LastLoginAt:        user.LastLoginAt,
		MustChangePassword: user.MustChangePassword,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
}

// CreateRoleRequest contains the input for creating a role
type CreateRoleRequest struct {
	Code        string
	Name        string
	Description string
	Permissions []string
}

// UpdateRoleRequest contains the editable role fields
type UpdateRoleRequest struct {
	Name        *string
	Description *string
}

// SetRolePermissionsRequest replaces the role's permission set
type SetRolePermissionsRequest struct {
	Permissions []string
}

// ListRolesRequest carries pagination and filtering for role listing
type ListRolesRequest struct {
	Page     int
	PageSize int
	Search   string
	OrderBy  string
	OrderDir string
}

// RoleResponse is the role representation exposed by the API
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Permissions []string  `json:"permissions"`
	IsSystem    bool      `json:"is_system"`
	IsEnabled   bool      `json:"is_enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToRoleResponse maps a role aggregate to its API representation
func ToRoleResponse(role *identity.Role) *RoleResponse {
	return &RoleResponse{
		ID:          role.ID,
		Code:        role.Code,
		Name:        role.Name,
		Description: role.Description,
		Permissions: role.PermissionCodes(),
		IsSystem:    role.IsSystemRole,
		IsEnabled:   role.IsEnabled,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}
