package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/logistics-erp/hrm/internal/domain/identity"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func createRoleService(roleRepo *MockRoleRepository, userRepo *MockUserRepository) *RoleService {
	return NewRoleService(roleRepo, userRepo, zap.NewNop())
}

func TestRoleService_Create_Success(t *testing.T) {
	ctx := context.Background()
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)

	roleRepo.On("ExistsByCode", ctx, "DISPATCHER").Return(false, nil)
	roleRepo.On("Save", ctx, mock.Anything).Return(nil)

	service := createRoleService(roleRepo, userRepo)

	result, err := service.Create(ctx, CreateRoleRequest{
		Code:        "DISPATCHER",
		Name:        "Dispatcher",
		Description: "Manages route assignments",
		Permissions: []string{"hr.attendance:read", "hr.schedule:*"},
	})

	require.NoError(t, err)
	assert.Equal(t, "DISPATCHER", result.Code)
	assert.Equal(t, "Dispatcher", result.Name)
	assert.ElementsMatch(t, []string{"hr.attendance:read", "hr.schedule:*"}, result.Permissions)
	assert.True(t, result.IsEnabled)
	assert.False(t, result.IsSystem)

	roleRepo.AssertExpectations(t)
}

func TestRoleService_Create_CodeExists(t *testing.T) {
	ctx := context.Background()
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)

	roleRepo.On("ExistsByCode", ctx, "ADMIN").Return(true, nil)

	service := createRoleService(roleRepo, userRepo)

	result, err := service.Create(ctx, CreateRoleRequest{
		Code: "ADMIN",
		Name: "Administrator",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ROLE_CODE_EXISTS", domainErr.Code)
}

func TestRoleService_Create_MalformedPermission(t *testing.T) {
	ctx := context.Background()
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)

	roleRepo.On("ExistsByCode", ctx, "BROKEN").Return(false, nil)

	service := createRoleService(roleRepo, userRepo)

	result, err := service.Create(ctx, CreateRoleRequest{
		Code:        "BROKEN",
		Name:        "Broken",
		Permissions: []string{"no-colon-here"},
	})

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestRoleService_SetPermissions_Replaces(t *testing.T) {
	ctx := context.Background()
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)

	role := createTestRole()

	roleRepo.On("FindByID", ctx, role.ID).Return(role, nil)
	roleRepo.On("Save", ctx, role).Return(nil)

	service := createRoleService(roleRepo, userRepo)

	result, err := service.SetPermissions(ctx, role.ID, SetRolePermissionsRequest{
		Permissions: []string{"hr.leave:read", "hr.leave:approve"},
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"hr.leave:read", "hr.leave:approve"}, result.Permissions)
	assert.NotContains(t, result.Permissions, "hr.employee:read")
}

func TestRoleService_Update_PartialFields(t *testing.T) {
	ctx := context.Background()
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)

	role := createTestRole()

	roleRepo.On("FindByID", ctx, role.ID).Return(role, nil)
	roleRepo.On("Save", ctx, role).Return(nil)

	service := createRoleService(roleRepo, userRepo)

	newName := "Senior HR Clerk"
	result, err := service.Update(ctx, role.ID, UpdateRoleRequest{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "Senior HR Clerk", result.Name)
	assert.Equal(t, "HR_CLERK", result.Code)
}

func TestRoleService_Delete_SystemRole(t *testing.T) {
	ctx := context.Background()
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)

	role, err := identity.NewSystemRole("SUPER_ADMIN", "Super Administrator")
	require.NoError(t, err)

	roleRepo.On("FindByID", ctx, role.ID).Return(role, nil)

	service := createRoleService(roleRepo, userRepo)

	err = service.Delete(ctx, role.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "SYSTEM_ROLE", domainErr.Code)
}

func TestRoleService_Delete_StillAssigned(t *testing.T) {
	ctx := context.Background()
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)

	role := createTestRole()

	roleRepo.On("FindByID", ctx, role.ID).Return(role, nil)
	userRepo.On("CountByRole", ctx, role.ID).Return(int64(3), nil)

	service := createRoleService(roleRepo, userRepo)

	err := service.Delete(ctx, role.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ROLE_IN_USE", domainErr.Code)
}

func TestRoleService_Delete_Success(t *testing.T) {
	ctx := context.Background()
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)

	role := createTestRole()

	roleRepo.On("FindByID", ctx, role.ID).Return(role, nil)
	userRepo.On("CountByRole", ctx, role.ID).Return(int64(0), nil)
	roleRepo.On("Delete", ctx, role.ID).Return(nil)

	service := createRoleService(roleRepo, userRepo)

	err := service.Delete(ctx, role.ID)

	require.NoError(t, err)
	roleRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestRoleService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	roleRepo := new(MockRoleRepository)
	userRepo := new(MockUserRepository)

	missingID := uuid.New()
	roleRepo.On("FindByID", ctx, missingID).Return(nil, shared.ErrNotFound)

	service := createRoleService(roleRepo, userRepo)

	result, err := service.GetByID(ctx, missingID)

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ROLE_NOT_FOUND", domainErr.Code)
}
