package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/logistics-erp/hrm/internal/domain/identity"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"go.uber.org/zap"
)

// RoleService handles role management operations
type RoleService struct {
	roleRepo identity.RoleRepository
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(
	roleRepo identity.RoleRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates a new role
func (s *RoleService) Create(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	s.logger.Info("Creating new role", zap.String("code", req.Code))

	exists, err := s.roleRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		s.logger.Error("Failed to check role code existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check role code availability")
	}
	if exists {
		return nil, shared.NewDomainError("ROLE_CODE_EXISTS", "Role code already exists")
	}

	role, err := identity.NewRole(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := role.Update(role.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if len(req.Permissions) > 0 {
		perms, err := parsePermissionCodes(req.Permissions)
		if err != nil {
			return nil, err
		}
		if err := role.SetPermissions(perms); err != nil {
			return nil, err
		}
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		if domainErr, ok := err.(*shared.DomainError); ok {
			return nil, domainErr
		}
		s.logger.Error("Failed to create role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create role")
	}

	s.logger.Info("Role created successfully",
		zap.String("role_id", role.ID.String()),
		zap.String("code", role.Code))

	return ToRoleResponse(role), nil
}

// GetByID retrieves a role by ID
func (s *RoleService) GetByID(ctx context.Context, id uuid.UUID) (*RoleResponse, error) {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToRoleResponse(role), nil
}

// GetByCode retrieves a role by code
func (s *RoleService) GetByCode(ctx context.Context, code string) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByCode(ctx, code)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("ROLE_NOT_FOUND", "Role not found")
		}
		s.logger.Error("Failed to find role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find role")
	}
	return ToRoleResponse(role), nil
}

// List retrieves a paginated list of roles
func (s *RoleService) List(ctx context.Context, req ListRolesRequest) (*shared.Paginated[RoleResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search

	roles, err := s.roleRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list roles", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list roles")
	}

	total, err := s.roleRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count roles", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count roles")
	}

	items := make([]RoleResponse, len(roles))
	for i, role := range roles {
		items[i] = *ToRoleResponse(role)
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Update updates a role's name and description
func (s *RoleService) Update(ctx context.Context, id uuid.UUID, req UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return nil, err
	}

	name := role.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := role.Description
	if req.Description != nil {
		description = *req.Description
	}

	if err := role.Update(name, description); err != nil {
		return nil, err
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		s.logger.Error("Failed to update role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update role")
	}

	s.logger.Info("Role updated", zap.String("role_id", id.String()))

	return ToRoleResponse(role), nil
}

// SetPermissions replaces a role's permission set
func (s *RoleService) SetPermissions(ctx context.Context, id uuid.UUID, req SetRolePermissionsRequest) (*RoleResponse, error) {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return nil, err
	}

	perms, err := parsePermissionCodes(req.Permissions)
	if err != nil {
		return nil, err
	}

	if err := role.SetPermissions(perms); err != nil {
		return nil, err
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		s.logger.Error("Failed to save role permissions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update role permissions")
	}

	s.logger.Info("Role permissions updated",
		zap.String("role_id", id.String()),
		zap.Int("permission_count", len(req.Permissions)))

	return ToRoleResponse(role), nil
}

// Enable enables a role
func (s *RoleService) Enable(ctx context.Context, id uuid.UUID) (*RoleResponse, error) {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := role.Enable(); err != nil {
		return nil, err
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		s.logger.Error("Failed to enable role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to enable role")
	}

	s.logger.Info("Role enabled", zap.String("role_id", id.String()))

	return ToRoleResponse(role), nil
}

// Disable disables a role
func (s *RoleService) Disable(ctx context.Context, id uuid.UUID) (*RoleResponse, error) {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := role.Disable(); err != nil {
		return nil, err
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		s.logger.Error("Failed to disable role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to disable role")
	}

	s.logger.Info("Role disabled", zap.String("role_id", id.String()))

	return ToRoleResponse(role), nil
}

// Delete deletes a role. System roles and roles still assigned to users
// cannot be deleted.
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return err
	}

	if !role.CanDelete() {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be deleted")
	}

	userCount, err := s.userRepo.CountByRole(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count role assignments", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check role assignments")
	}
	if userCount > 0 {
		return shared.NewDomainError("ROLE_IN_USE", "Role is still assigned to users")
	}

	if err := s.roleRepo.Delete(ctx, role.ID); err != nil {
		s.logger.Error("Failed to delete role", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete role")
	}

	s.logger.Info("Role deleted", zap.String("role_id", id.String()))

	return nil
}

// parsePermissionCodes converts permission codes into value objects,
// rejecting malformed ones
func parsePermissionCodes(codes []string) ([]identity.Permission, error) {
	perms := make([]identity.Permission, 0, len(codes))
	for _, code := range codes {
		perm, err := identity.NewPermissionFromCode(code)
		if err != nil {
			return nil, err
		}
		perms = append(perms, *perm)
	}
	return perms, nil
}

func (s *RoleService) findRole(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("ROLE_NOT_FOUND", "Role not found")
		}
		s.logger.Error("Failed to find role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find role")
	}
	return role, nil
}
