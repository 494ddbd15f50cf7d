package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPermission(t *testing.T) {
	t.Run("builds the code from resource and action", func(t *testing.T) {
		perm, err := NewPermission("hr.employee", "read")
		require.NoError(t, err)
		assert.Equal(t, "hr.employee:read", perm.Code)
	})

	t.Run("parses a code string", func(t *testing.T) {
		perm, err := NewPermissionFromCode("hr.leave:approve")
		require.NoError(t, err)
		assert.Equal(t, "hr.leave", perm.Resource)
		assert.Equal(t, "approve", perm.Action)
	})

	t.Run("accepts the bare wildcard", func(t *testing.T) {
		perm, err := NewPermissionFromCode("*")
		require.NoError(t, err)
		assert.Equal(t, WildcardPermission, perm.Code)
	})

	t.Run("accepts an action wildcard", func(t *testing.T) {
		perm, err := NewPermission("hr.employee", "*")
		require.NoError(t, err)
		assert.Equal(t, "hr.employee:*", perm.Code)
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		_, err := NewPermissionFromCode("no-colon")
		require.Error(t, err)

		_, err = NewPermission("", "read")
		require.Error(t, err)

		_, err = NewPermission("hr employee", "read")
		require.Error(t, err)
	})
}

func TestPermissionMatches(t *testing.T) {
	tests := []struct {
		granted  string
		required string
		want     bool
	}{
		{"*", "hr.employee:read", true},
		{"hr.employee:read", "hr.employee:read", true},
		{"hr.employee:*", "hr.employee:read", true},
		{"hr.employee:*", "hr.employee:delete", true},
		{"hr.employee:*", "hr.branch:read", false},
		{"hr.employee:read", "hr.employee:delete", false},
		{"hr.branch:read", "hr.employee:read", false},
		{"", "hr.employee:read", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PermissionMatches(tt.granted, tt.required),
			"granted %q required %q", tt.granted, tt.required)
	}
}

func TestNewRole(t *testing.T) {
	t.Run("creates an enabled role", func(t *testing.T) {
		role, err := NewRole("hr_manager", "HR Manager")
		require.NoError(t, err)

		assert.Equal(t, "HR_MANAGER", role.Code)
		assert.True(t, role.IsEnabled)
		assert.True(t, role.CanDelete())
	})

	t.Run("system roles cannot be deleted", func(t *testing.T) {
		role, err := NewSystemRole(RoleCodeAdmin, "Administrator")
		require.NoError(t, err)
		assert.False(t, role.CanDelete())
	})

	t.Run("rejects codes starting with a number", func(t *testing.T) {
		_, err := NewRole("1admin", "Admin")
		require.Error(t, err)
	})
}

func TestRolePermissions(t *testing.T) {
	newRole := func(t *testing.T) *Role {
		role, err := NewRole("supervisor", "Shift Supervisor")
		require.NoError(t, err)
		return role
	}

	t.Run("grant and revoke", func(t *testing.T) {
		role := newRole(t)
		require.NoError(t, role.GrantPermissionByCode("hr.attendance:read"))
		assert.True(t, role.HasPermission("hr.attendance:read"))

		require.Error(t, role.GrantPermissionByCode("hr.attendance:read")) // twice

		require.NoError(t, role.RevokePermission("hr.attendance:read"))
		assert.False(t, role.HasPermission("hr.attendance:read"))
		require.Error(t, role.RevokePermission("hr.attendance:read"))
	})

	t.Run("allows honors wildcards", func(t *testing.T) {
		role := newRole(t)
		require.NoError(t, role.GrantPermissionByCode("hr.employee:*"))

		assert.True(t, role.Allows("hr.employee:read"))
		assert.True(t, role.Allows("hr.employee:update"))
		assert.False(t, role.Allows("hr.branch:read"))
	})

	t.Run("disabled role allows nothing", func(t *testing.T) {
		role := newRole(t)
		require.NoError(t, role.GrantPermissionByCode("*"))
		require.NoError(t, role.Disable())

		assert.False(t, role.Allows("hr.employee:read"))
	})

	t.Run("set permissions deduplicates", func(t *testing.T) {
		role := newRole(t)
		read, err := NewPermission("hr.leave", "read")
		require.NoError(t, err)
		approve, err := NewPermission("hr.leave", "approve")
		require.NoError(t, err)

		require.NoError(t, role.SetPermissions([]Permission{*read, *approve, *read}))
		assert.Len(t, role.Permissions, 2)
		assert.ElementsMatch(t, []string{"hr.leave:read", "hr.leave:approve"}, role.PermissionCodes())
	})
}

func TestRoleLifecycle(t *testing.T) {
	role, err := NewRole("branch_manager", "Branch Manager")
	require.NoError(t, err)

	require.Error(t, role.Enable()) // already enabled
	require.NoError(t, role.Disable())
	require.Error(t, role.Disable())
	require.NoError(t, role.Enable())

	require.NoError(t, role.Update("Branch Lead", "runs a single branch"))
	assert.Equal(t, "Branch Lead", role.Name)
	assert.Equal(t, "runs a single branch", role.Description)
}
