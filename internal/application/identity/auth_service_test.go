package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/logistics-erp/hrm/internal/domain/identity"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/infrastructure/auth"
	"github.com/logistics-erp/hrm/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, roleID uuid.UUID) (int64, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRoleRepository is a mock implementation of identity.RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByCode(ctx context.Context, code string) (*identity.Role, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.Role, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.Role, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// Helper function to create a test user
func createTestUser() *identity.User {
	user, _ := identity.NewActiveUser("testuser", "Password123")
	return user
}

// Helper function to create a test role
func createTestRole() *identity.Role {
	role, _ := identity.NewRole("HR_CLERK", "HR Clerk")
	perm, _ := identity.NewPermission("hr.employee", "read")
	role.GrantPermission(*perm)
	return role
}

// Helper function to create auth service with an in-memory blacklist
func createAuthService(userRepo *MockUserRepository, roleRepo *MockRoleRepository) (*AuthService, *auth.InMemoryTokenBlacklist) {
	jwtCfg := config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
	jwtService := auth.NewJWTService(jwtCfg)
	blacklist := auth.NewInMemoryTokenBlacklist()
	logger := zap.NewNop()

	service := NewAuthService(
		userRepo,
		roleRepo,
		jwtService,
		blacklist,
		DefaultAuthServiceConfig(),
		logger,
	)
	return service, blacklist
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()
	role := createTestRole()
	user.RoleIDs = []uuid.UUID{role.ID}

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	roleRepo.On("FindByIDs", ctx, user.RoleIDs).Return([]*identity.Role{role}, nil)

	authService, _ := createAuthService(userRepo, roleRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
		IP:       "127.0.0.1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "testuser", result.User.Username)
	assert.Contains(t, result.User.Permissions, "hr.employee:read")
	assert.Equal(t, "Bearer", result.TokenType)
	assert.NotNil(t, user.LastLoginAt)

	userRepo.AssertExpectations(t)
	roleRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	authService, _ := createAuthService(userRepo, roleRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "wrongpassword",
		IP:       "127.0.0.1",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	assert.Equal(t, 1, user.FailedAttempts)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	userRepo.On("FindByUsername", ctx, "nonexistent").Return(nil, shared.ErrNotFound)

	authService, _ := createAuthService(userRepo, roleRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "nonexistent",
		Password: "Password123",
		IP:       "127.0.0.1",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	// Same code as a wrong password so usernames cannot be probed
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_LocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	authService, _ := createAuthService(userRepo, roleRepo)

	cfg := DefaultAuthServiceConfig()
	var lastErr error
	for i := 0; i < cfg.MaxLoginAttempts; i++ {
		_, lastErr = authService.Login(ctx, LoginInput{
			Username: "testuser",
			Password: "wrongpassword",
			IP:       "127.0.0.1",
		})
	}

	require.Error(t, lastErr)
	var domainErr *shared.DomainError
	require.True(t, errors.As(lastErr, &domainErr))
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
	assert.True(t, user.IsLocked())
}

func TestAuthService_Login_LockedAccount(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()
	user.Lock(1 * time.Hour)

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)

	authService, _ := createAuthService(userRepo, roleRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
		IP:       "127.0.0.1",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()
	user.Deactivate()

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)

	authService, _ := createAuthService(userRepo, roleRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
		IP:       "127.0.0.1",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestAuthService_Login_DisabledRoleGrantsNothing(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()
	role := createTestRole()
	role.Disable()
	user.RoleIDs = []uuid.UUID{role.ID}

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	roleRepo.On("FindByIDs", ctx, user.RoleIDs).Return([]*identity.Role{role}, nil)

	authService, _ := createAuthService(userRepo, roleRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
		IP:       "127.0.0.1",
	})

	require.NoError(t, err)
	assert.Empty(t, result.User.Permissions)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()
	role := createTestRole()
	user.RoleIDs = []uuid.UUID{role.ID}

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	roleRepo.On("FindByIDs", ctx, user.RoleIDs).Return([]*identity.Role{role}, nil)

	authService, _ := createAuthService(userRepo, roleRepo)

	loginResult, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
		IP:       "127.0.0.1",
	})
	require.NoError(t, err)

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	refreshResult, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: loginResult.RefreshToken,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, refreshResult.AccessToken)
	assert.NotEmpty(t, refreshResult.RefreshToken)
	assert.Equal(t, "Bearer", refreshResult.TokenType)
	// New tokens should be different
	assert.NotEqual(t, loginResult.AccessToken, refreshResult.AccessToken)
}

func TestAuthService_RefreshToken_SingleUse(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()
	role := createTestRole()
	user.RoleIDs = []uuid.UUID{role.ID}

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	roleRepo.On("FindByIDs", ctx, user.RoleIDs).Return([]*identity.Role{role}, nil)

	authService, _ := createAuthService(userRepo, roleRepo)

	loginResult, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
		IP:       "127.0.0.1",
	})
	require.NoError(t, err)

	// First refresh succeeds
	_, err = authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: loginResult.RefreshToken,
	})
	require.NoError(t, err)

	// Replaying the same refresh token must be rejected
	result, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: loginResult.RefreshToken,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
}

func TestAuthService_RefreshToken_InvalidToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	authService, _ := createAuthService(userRepo, roleRepo)

	result, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: "invalid-token",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()
	role := createTestRole()
	user.RoleIDs = []uuid.UUID{role.ID}

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	roleRepo.On("FindByIDs", ctx, user.RoleIDs).Return([]*identity.Role{role}, nil)

	authService, _ := createAuthService(userRepo, roleRepo)

	loginResult, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
		IP:       "127.0.0.1",
	})
	require.NoError(t, err)

	// An access token must never pass where a refresh token is expected
	result, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: loginResult.AccessToken,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_RefreshToken_UserNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()
	role := createTestRole()
	user.RoleIDs = []uuid.UUID{role.ID}

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	roleRepo.On("FindByIDs", ctx, user.RoleIDs).Return([]*identity.Role{role}, nil)

	authService, _ := createAuthService(userRepo, roleRepo)

	loginResult, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
		IP:       "127.0.0.1",
	})
	require.NoError(t, err)

	// User deleted
	userRepo.On("FindByID", ctx, user.ID).Return(nil, shared.ErrNotFound)

	result, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: loginResult.RefreshToken,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
}

func TestAuthService_Logout_BlacklistsAccessToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()

	authService, blacklist := createAuthService(userRepo, roleRepo)

	err := authService.Logout(ctx, LogoutInput{
		UserID:    user.ID,
		AccessJTI: "some-access-jti",
		AccessTTL: 10 * time.Minute,
	})

	require.NoError(t, err)
	blacklisted, err := blacklist.IsBlacklisted(ctx, "some-access-jti")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestAuthService_Logout_AllSessions(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()

	authService, blacklist := createAuthService(userRepo, roleRepo)

	err := authService.Logout(ctx, LogoutInput{
		UserID:      user.ID,
		AllSessions: true,
	})

	require.NoError(t, err)
	invalidated, err := blacklist.IsUserTokenInvalidated(ctx, user.ID.String(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, invalidated)
}

func TestAuthService_GetCurrentUser_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()
	role := createTestRole()
	user.RoleIDs = []uuid.UUID{role.ID}

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	roleRepo.On("FindByIDs", ctx, user.RoleIDs).Return([]*identity.Role{role}, nil)

	authService, _ := createAuthService(userRepo, roleRepo)

	result, err := authService.GetCurrentUser(ctx, GetCurrentUserInput{
		UserID: user.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, user.Username, result.User.Username)
	assert.NotEmpty(t, result.Permissions)

	userRepo.AssertExpectations(t)
	roleRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, mock.Anything).Return(nil)

	authService, blacklist := createAuthService(userRepo, roleRepo)

	err := authService.ChangePassword(ctx, ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "Password123",
		NewPassword: "NewPassword456",
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("NewPassword456"))

	// Outstanding sessions are invalidated together with the old password
	invalidated, err := blacklist.IsUserTokenInvalidated(ctx, user.ID.String(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, invalidated)

	userRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser()

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	authService, _ := createAuthService(userRepo, roleRepo)

	err := authService.ChangePassword(ctx, ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "wrongpassword",
		NewPassword: "NewPassword456",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}
