package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/logistics-erp/hrm/internal/domain/identity"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockEmployeeRepository is a mock implementation of workforce.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByEmployeeNo(ctx context.Context, employeeNo string) (*workforce.Employee, error) {
	args := m.Called(ctx, employeeNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Employee, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *workforce.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	args := m.Called(ctx, nationalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) NextEmployeeSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) CountByAssignment(ctx context.Context, branchID, divisionID, positionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, branchID, divisionID, positionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) CountByStatus(ctx context.Context) ([]workforce.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]workforce.StatusCount), args.Error(1)
}

func (m *MockEmployeeRepository) CountByBranch(ctx context.Context) ([]workforce.BranchCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]workforce.BranchCount), args.Error(1)
}

func createUserService(userRepo *MockUserRepository, roleRepo *MockRoleRepository, employeeRepo *MockEmployeeRepository) *UserService {
	var empRepo workforce.EmployeeRepository
	if employeeRepo != nil {
		empRepo = employeeRepo
	}
	return NewUserService(userRepo, roleRepo, empRepo, zap.NewNop())
}

func TestUserService_Create_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	role := createTestRole()

	userRepo.On("ExistsByUsername", ctx, "newuser").Return(false, nil)
	roleRepo.On("FindByIDs", ctx, []uuid.UUID{role.ID}).Return([]*identity.Role{role}, nil)
	userRepo.On("Save", ctx, mock.Anything).Return(nil)

	service := createUserService(userRepo, roleRepo, nil)

	result, err := service.Create(ctx, CreateUserRequest{
		Username:    "newuser",
		Password:    "Password123",
		Email:       "new@example.com",
		DisplayName: "New User",
		RoleIDs:     []uuid.UUID{role.ID},
		Active:      true,
	})

	require.NoError(t, err)
	assert.Equal(t, "newuser", result.Username)
	assert.Equal(t, "new@example.com", result.Email)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, []uuid.UUID{role.ID}, result.RoleIDs)

	userRepo.AssertExpectations(t)
	roleRepo.AssertExpectations(t)
}

func TestUserService_Create_UsernameExists(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	userRepo.On("ExistsByUsername", ctx, "taken").Return(true, nil)

	service := createUserService(userRepo, roleRepo, nil)

	result, err := service.Create(ctx, CreateUserRequest{
		Username: "taken",
		Password: "Password123",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "USERNAME_EXISTS", domainErr.Code)
}

func TestUserService_Create_RoleNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	missingRole := uuid.New()

	userRepo.On("ExistsByUsername", ctx, "newuser").Return(false, nil)
	roleRepo.On("FindByIDs", ctx, []uuid.UUID{missingRole}).Return([]*identity.Role{}, nil)

	service := createUserService(userRepo, roleRepo, nil)

	result, err := service.Create(ctx, CreateUserRequest{
		Username: "newuser",
		Password: "Password123",
		RoleIDs:  []uuid.UUID{missingRole},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ROLE_NOT_FOUND", domainErr.Code)
}

func TestUserService_Create_EmployeeAlreadyLinked(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	employeeRepo := new(MockEmployeeRepository)

	employeeID := uuid.New()
	other := createTestUser()

	userRepo.On("ExistsByUsername", ctx, "newuser").Return(false, nil)
	employeeRepo.On("FindByID", ctx, employeeID).Return(&workforce.Employee{}, nil)
	userRepo.On("FindByEmployee", ctx, employeeID).Return(other, nil)

	service := createUserService(userRepo, roleRepo, employeeRepo)

	result, err := service.Create(ctx, CreateUserRequest{
		Username:   "newuser",
		Password:   "Password123",
		EmployeeID: &employeeID,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "EMPLOYEE_ALREADY_LINKED", domainErr.Code)
}

func TestUserService_SetRoles_ReplacesAssignments(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()
	user.RoleIDs = []uuid.UUID{uuid.New()}
	role := createTestRole()

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	roleRepo.On("FindByIDs", ctx, []uuid.UUID{role.ID}).Return([]*identity.Role{role}, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	service := createUserService(userRepo, roleRepo, nil)

	result, err := service.SetRoles(ctx, user.ID, SetUserRolesRequest{
		RoleIDs: []uuid.UUID{role.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{role.ID}, result.RoleIDs)
}

func TestUserService_Unlock(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()
	require.NoError(t, user.Lock(time.Hour))

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	service := createUserService(userRepo, roleRepo, nil)

	result, err := service.Unlock(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, "active", result.Status)
	assert.False(t, user.IsLocked())
}

func TestUserService_Unlock_NotLocked(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	service := createUserService(userRepo, roleRepo, nil)

	result, err := service.Unlock(ctx, user.ID)

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestUserService_ResetPassword_ForcesChange(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	service := createUserService(userRepo, roleRepo, nil)

	err := service.ResetPassword(ctx, user.ID, ResetPasswordRequest{
		NewPassword:        "FreshPassword789",
		MustChangePassword: true,
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("FreshPassword789"))
	assert.True(t, user.MustChangePassword)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	missingID := uuid.New()
	userRepo.On("FindByID", ctx, missingID).Return(nil, shared.ErrNotFound)

	service := createUserService(userRepo, roleRepo, nil)

	result, err := service.GetByID(ctx, missingID)

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	users := []*identity.User{createTestUser()}

	userRepo.On("FindAll", ctx, mock.Anything).Return(users, nil)
	userRepo.On("Count", ctx, mock.Anything).Return(int64(1), nil)

	service := createUserService(userRepo, roleRepo, nil)

	result, err := service.List(ctx, ListUsersRequest{Page: 1, PageSize: 20, Status: "active"})

	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, 1, result.TotalPages)
}
