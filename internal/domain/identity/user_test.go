package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates a pending user", func(t *testing.T) {
		user, err := NewUser("Dispatcher.One", "secret1234")
		require.NoError(t, err)

		assert.Equal(t, "dispatcher.one", user.Username)
		assert.Equal(t, UserStatusPending, user.Status)
		assert.False(t, user.CanLogin())
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "secret1234", user.PasswordHash)
	})

	t.Run("active user can login", func(t *testing.T) {
		user, err := NewActiveUser("ops_admin", "secret1234")
		require.NoError(t, err)
		assert.True(t, user.CanLogin())
	})

	t.Run("rejects short usernames", func(t *testing.T) {
		_, err := NewUser("ab", "secret1234")
		require.Error(t, err)
	})

	t.Run("rejects usernames with spaces", func(t *testing.T) {
		_, err := NewUser("ops admin", "secret1234")
		require.Error(t, err)
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		_, err := NewUser("ops_admin", "short1")
		require.Error(t, err)

		_, err = NewUser("ops_admin", "onlyletters")
		require.Error(t, err)

		_, err = NewUser("ops_admin", "12345678901")
		require.Error(t, err)
	})
}

func TestUserPasswords(t *testing.T) {
	user, err := NewActiveUser("ops_admin", "secret1234")
	require.NoError(t, err)

	t.Run("verify accepts the right password", func(t *testing.T) {
		assert.True(t, user.VerifyPassword("secret1234"))
		assert.False(t, user.VerifyPassword("wrong1234"))
	})

	t.Run("change requires the current password", func(t *testing.T) {
		err := user.ChangePassword("wrong1234", "fresh5678")
		require.Error(t, err)

		require.NoError(t, user.ChangePassword("secret1234", "fresh5678"))
		assert.True(t, user.VerifyPassword("fresh5678"))
	})

	t.Run("admin reset clears the force flag", func(t *testing.T) {
		user.ForcePasswordChange()
		assert.True(t, user.MustChangePassword)

		require.NoError(t, user.SetPassword("reset9012"))
		assert.False(t, user.MustChangePassword)
		assert.True(t, user.VerifyPassword("reset9012"))
	})
}

func TestUserRoles(t *testing.T) {
	user, err := NewActiveUser("ops_admin", "secret1234")
	require.NoError(t, err)
	roleID := uuid.New()

	t.Run("assign and remove", func(t *testing.T) {
		require.NoError(t, user.AssignRole(roleID))
		assert.True(t, user.HasRole(roleID))

		require.Error(t, user.AssignRole(roleID)) // twice

		require.NoError(t, user.RemoveRole(roleID))
		assert.False(t, user.HasRole(roleID))
		require.Error(t, user.RemoveRole(roleID)) // gone
	})

	t.Run("set roles deduplicates", func(t *testing.T) {
		a, b := uuid.New(), uuid.New()
		require.NoError(t, user.SetRoles([]uuid.UUID{a, b, a}))
		assert.Len(t, user.RoleIDs, 2)
	})
}

func TestUserLockout(t *testing.T) {
	t.Run("failed attempts lock the account", func(t *testing.T) {
		user, err := NewActiveUser("ops_admin", "secret1234")
		require.NoError(t, err)

		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.True(t, user.RecordLoginFailure(3, time.Hour))

		assert.True(t, user.IsLocked())
		assert.False(t, user.CanLogin())
	})

	t.Run("expired lock opens by itself", func(t *testing.T) {
		user, err := NewActiveUser("ops_admin", "secret1234")
		require.NoError(t, err)

		require.NoError(t, user.Lock(-time.Minute))
		assert.False(t, user.IsLocked())
		assert.True(t, user.CanLogin())
	})

	t.Run("unlock resets the counter", func(t *testing.T) {
		user, err := NewActiveUser("ops_admin", "secret1234")
		require.NoError(t, err)
		user.RecordLoginFailure(1, time.Hour)
		require.True(t, user.IsLocked())

		require.NoError(t, user.Unlock())
		assert.True(t, user.IsActive())
		assert.Zero(t, user.FailedAttempts)
	})

	t.Run("login success resets the counter", func(t *testing.T) {
		user, err := NewActiveUser("ops_admin", "secret1234")
		require.NoError(t, err)
		user.RecordLoginFailure(5, time.Hour)

		user.RecordLoginSuccess("10.1.2.3")
		assert.Zero(t, user.FailedAttempts)
		assert.Equal(t, "10.1.2.3", user.LastLoginIP)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("deactivated users cannot be locked", func(t *testing.T) {
		user, err := NewActiveUser("ops_admin", "secret1234")
		require.NoError(t, err)
		require.NoError(t, user.Deactivate())
		require.Error(t, user.Lock(time.Hour))
		assert.False(t, user.CanLogin())
	})
}

func TestUserProfile(t *testing.T) {
	user, err := NewActiveUser("ops_admin", "secret1234")
	require.NoError(t, err)

	t.Run("email is normalized", func(t *testing.T) {
		require.NoError(t, user.SetEmail("Ops.Admin@Example.COM"))
		assert.Equal(t, "ops.admin@example.com", user.Email)

		require.Error(t, user.SetEmail("not-an-email"))
	})

	t.Run("display name falls back to username", func(t *testing.T) {
		assert.Equal(t, "ops_admin", user.GetDisplayNameOrUsername())

		require.NoError(t, user.SetDisplayName("Operations Admin"))
		assert.Equal(t, "Operations Admin", user.GetDisplayNameOrUsername())
	})

	t.Run("links to an employee file", func(t *testing.T) {
		employeeID := uuid.New()
		user.LinkEmployee(&employeeID)
		require.NotNil(t, user.EmployeeID)
		assert.Equal(t, employeeID, *user.EmployeeID)

		user.LinkEmployee(nil)
		assert.Nil(t, user.EmployeeID)
	})
}
