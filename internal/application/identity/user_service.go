package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/logistics-erp/hrm/internal/domain/identity"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
	"go.uber.org/zap"
)

// UserService handles user account administration
type UserService struct {
	userRepo     identity.UserRepository
	roleRepo     identity.RoleRepository
	employeeRepo workforce.EmployeeRepository
	logger       *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	employeeRepo workforce.EmployeeRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	s.logger.Info("Creating new user", zap.String("username", req.Username))

	// Check if username already exists
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Error("Failed to check username existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check username availability")
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_EXISTS", "Username already exists")
	}

	// Validate that all role IDs exist
	if err := s.validateRoleIDs(ctx, req.RoleIDs); err != nil {
		return nil, err
	}

	// Validate the employee link before creating the account
	if req.EmployeeID != nil {
		if err := s.validateEmployeeLink(ctx, *req.EmployeeID, uuid.Nil); err != nil {
			return nil, err
		}
	}

	var user *identity.User
	if req.Active {
		user, err = identity.NewActiveUser(req.Username, req.Password)
	} else {
		user, err = identity.NewUser(req.Username, req.Password)
	}
	if err != nil {
		return nil, err
	}

	// Set optional fields
	if req.Email != "" {
		if err := user.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.EmployeeID != nil {
		user.LinkEmployee(req.EmployeeID)
	}
	if len(req.RoleIDs) > 0 {
		if err := user.SetRoles(req.RoleIDs); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		// Unique indexes on username/email surface as domain errors
		if domainErr, ok := err.(*shared.DomainError); ok {
			return nil, domainErr
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.logger.Info("User created successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return ToUserResponse(user), nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List retrieves a paginated list of users
func (s *UserService) List(ctx context.Context, req ListUsersRequest) (*shared.Paginated[UserResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.RoleID != nil {
		filter.Filters["role_id"] = *req.RoleID
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count users")
	}

	items := make([]UserResponse, len(users))
	for i, user := range users {
		items[i] = *ToUserResponse(user)
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Update updates a user's profile fields
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.UnlinkEmployee {
		user.LinkEmployee(nil)
	} else if req.EmployeeID != nil {
		if err := s.validateEmployeeLink(ctx, *req.EmployeeID, user.ID); err != nil {
			return nil, err
		}
		user.LinkEmployee(req.EmployeeID)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if domainErr, ok := err.(*shared.DomainError); ok {
			return nil, domainErr
		}
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	s.logger.Info("User updated", zap.String("user_id", id.String()))

	return ToUserResponse(user), nil
}

// SetRoles replaces a user's role assignments
func (s *UserService) SetRoles(ctx context.Context, id uuid.UUID, req SetUserRolesRequest) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateRoleIDs(ctx, req.RoleIDs); err != nil {
		return nil, err
	}

	if err := user.SetRoles(req.RoleIDs); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user roles", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to assign roles")
	}

	s.logger.Info("User roles assigned",
		zap.String("user_id", id.String()),
		zap.Int("role_count", len(req.RoleIDs)))

	return ToUserResponse(user), nil
}

// Activate activates a pending or deactivated user
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	return s.mutate(ctx, id, "activate", func(user *identity.User) error {
		return user.Activate()
	})
}

// Deactivate deactivates a user account
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	return s.mutate(ctx, id, "deactivate", func(user *identity.User) error {
		return user.Deactivate()
	})
}

// Lock locks a user account for the given duration
func (s *UserService) Lock(ctx context.Context, id uuid.UUID, duration time.Duration) (*UserResponse, error) {
	return s.mutate(ctx, id, "lock", func(user *identity.User) error {
		return user.Lock(duration)
	})
}

// Unlock unlocks a locked user account
func (s *UserService) Unlock(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	return s.mutate(ctx, id, "unlock", func(user *identity.User) error {
		return user.Unlock()
	})
}

// ResetPassword resets a user's password (admin action)
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, req ResetPasswordRequest) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if req.MustChangePassword {
		user.ForcePasswordChange()
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to reset password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}

	s.logger.Info("User password reset", zap.String("user_id", id.String()))

	return nil
}

// Delete deletes a user account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		s.logger.Error("Failed to delete user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete user")
	}

	s.logger.Info("User deleted", zap.String("user_id", id.String()))

	return nil
}

// mutate applies a domain state change and persists it
func (s *UserService) mutate(ctx context.Context, id uuid.UUID, action string, fn func(*identity.User) error) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.String("action", action), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to "+action+" user")
	}

	s.logger.Info("User state changed",
		zap.String("user_id", id.String()),
		zap.String("action", action))

	return ToUserResponse(user), nil
}

func (s *UserService) findUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to find user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find user")
	}
	return user, nil
}

// validateRoleIDs verifies every referenced role exists
func (s *UserService) validateRoleIDs(ctx context.Context, roleIDs []uuid.UUID) error {
	if len(roleIDs) == 0 {
		return nil
	}

	roles, err := s.roleRepo.FindByIDs(ctx, roleIDs)
	if err != nil {
		s.logger.Error("Failed to check role existence", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to validate roles")
	}

	found := make(map[uuid.UUID]struct{}, len(roles))
	for _, role := range roles {
		found[role.ID] = struct{}{}
	}
	for _, roleID := range roleIDs {
		if _, ok := found[roleID]; !ok {
			return shared.NewDomainError("ROLE_NOT_FOUND", "Role not found: "+roleID.String())
		}
	}

	return nil
}

// validateEmployeeLink verifies the employee exists and is not already
// linked to a different account. excludeUserID skips the user being updated.
func (s *UserService) validateEmployeeLink(ctx context.Context, employeeID, excludeUserID uuid.UUID) error {
	if s.employeeRepo != nil {
		if _, err := s.employeeRepo.FindByID(ctx, employeeID); err != nil {
			if err == shared.ErrNotFound {
				return shared.NewDomainError("EMPLOYEE_NOT_FOUND", "Employee not found: "+employeeID.String())
			}
			s.logger.Error("Failed to check employee existence", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to validate employee link")
		}
	}

	existing, err := s.userRepo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil
		}
		s.logger.Error("Failed to check employee link", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to validate employee link")
	}
	if existing.ID != excludeUserID {
		return shared.NewDomainError("EMPLOYEE_ALREADY_LINKED", "Employee is already linked to another account")
	}

	return nil
}
