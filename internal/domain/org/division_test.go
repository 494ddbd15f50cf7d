package org

import (
	"testing"

	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDivision(t *testing.T) {
	t.Run("creates root division with valid inputs", func(t *testing.T) {
		division, err := NewDivision("OPS", "Operations")
		require.NoError(t, err)
		require.NotNil(t, division)

		assert.Equal(t, "OPS", division.Code)
		assert.Equal(t, "Operations", division.Name)
		assert.Nil(t, division.ParentID)
		assert.Equal(t, 0, division.Level)
		assert.Equal(t, DivisionStatusActive, division.Status)
		assert.True(t, division.IsRoot())
		assert.Equal(t, division.ID.String(), division.Path)
		assert.True(t, division.Budget.IsZero())
	})

	t.Run("converts code to uppercase", func(t *testing.T) {
		division, err := NewDivision("ops", "Operations")
		require.NoError(t, err)
		assert.Equal(t, "OPS", division.Code)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewDivision("", "Operations")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Code cannot be empty")
	})

	t.Run("fails with invalid code characters", func(t *testing.T) {
		_, err := NewDivision("OPS@2024", "Operations")
		require.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewDivision("OPS", "  ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Name cannot be empty")
	})
}

func TestNewChildDivision(t *testing.T) {
	parent, err := NewDivision("OPS", "Operations")
	require.NoError(t, err)

	t.Run("creates child under parent", func(t *testing.T) {
		child, err := NewChildDivision("FLEET", "Fleet Management", parent)
		require.NoError(t, err)

		require.NotNil(t, child.ParentID)
		assert.Equal(t, parent.ID, *child.ParentID)
		assert.Equal(t, 1, child.Level)
		assert.Equal(t, parent.Path+"/"+child.ID.String(), child.Path)
		assert.False(t, child.IsRoot())
	})

	t.Run("fails with nil parent", func(t *testing.T) {
		_, err := NewChildDivision("FLEET", "Fleet", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Parent division is required")
	})

	t.Run("respects max depth", func(t *testing.T) {
		current, _ := NewDivision("ROOT", "Root")
		for i := 1; i < MaxHierarchyDepth; i++ {
			next, err := NewChildDivision("LEVEL"+string(rune('A'+i)), "Level", current)
			require.NoError(t, err)
			current = next
		}
		assert.Equal(t, MaxHierarchyDepth-1, current.Level)

		_, err := NewChildDivision("TOODEEP", "Too Deep", current)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "depth cannot exceed")
	})
}

func TestDivisionBudget(t *testing.T) {
	division, _ := NewDivision("OPS", "Operations")

	t.Run("sets a positive budget", func(t *testing.T) {
		budget, err := valueobject.NewMoneyFromString("1200000.00", valueobject.USD)
		require.NoError(t, err)

		require.NoError(t, division.SetBudget(budget))
		assert.True(t, division.Budget.Equals(budget))
	})

	t.Run("rejects a negative budget", func(t *testing.T) {
		negative, _ := valueobject.NewMoneyFromString("-1", valueobject.USD)
		err := division.SetBudget(negative)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}

func TestDivisionStatus(t *testing.T) {
	t.Run("deactivate then activate", func(t *testing.T) {
		division, _ := NewDivision("OPS", "Operations")

		require.NoError(t, division.Deactivate())
		assert.False(t, division.IsActive())

		require.NoError(t, division.Activate())
		assert.True(t, division.IsActive())
	})

	t.Run("fails on repeated transitions", func(t *testing.T) {
		division, _ := NewDivision("OPS", "Operations")

		err := division.Activate()
		require.Error(t, err)

		require.NoError(t, division.Deactivate())
		err = division.Deactivate()
		require.Error(t, err)
	})
}

func TestDivisionMoveTo(t *testing.T) {
	t.Run("moves under a new parent and recomputes path and level", func(t *testing.T) {
		oldParent, _ := NewDivision("OPS", "Operations")
		newParent, _ := NewDivision("LOGISTICS", "Logistics")
		child, _ := NewChildDivision("FLEET", "Fleet", oldParent)

		require.NoError(t, child.MoveTo(newParent))

		require.NotNil(t, child.ParentID)
		assert.Equal(t, newParent.ID, *child.ParentID)
		assert.Equal(t, 1, child.Level)
		assert.Equal(t, newParent.Path+"/"+child.ID.String(), child.Path)
	})

	t.Run("moves to root", func(t *testing.T) {
		parent, _ := NewDivision("OPS", "Operations")
		child, _ := NewChildDivision("FLEET", "Fleet", parent)

		require.NoError(t, child.MoveTo(nil))

		assert.Nil(t, child.ParentID)
		assert.Equal(t, 0, child.Level)
		assert.Equal(t, child.ID.String(), child.Path)
	})

	t.Run("rejects self as parent", func(t *testing.T) {
		division, _ := NewDivision("OPS", "Operations")
		err := division.MoveTo(division)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "its own parent")
	})

	t.Run("rejects moves past max depth", func(t *testing.T) {
		current, _ := NewDivision("ROOT", "Root")
		for i := 1; i < MaxHierarchyDepth; i++ {
			next, _ := NewChildDivision("LEVEL"+string(rune('A'+i)), "Level", current)
			current = next
		}

		mover, _ := NewDivision("MOVER", "Mover")
		err := mover.MoveTo(current)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "depth cannot exceed")
	})
}

func TestDivisionTreeMethods(t *testing.T) {
	parent, _ := NewDivision("PARENT", "Parent")
	child, _ := NewChildDivision("CHILD", "Child", parent)
	grandchild, _ := NewChildDivision("GRANDCHILD", "Grandchild", child)

	t.Run("GetAncestorIDs returns chain root first", func(t *testing.T) {
		ancestors := grandchild.GetAncestorIDs()
		require.Len(t, ancestors, 2)
		assert.Equal(t, parent.ID, ancestors[0])
		assert.Equal(t, child.ID, ancestors[1])
	})

	t.Run("GetAncestorIDs returns nil for root", func(t *testing.T) {
		assert.Nil(t, parent.GetAncestorIDs())
	})

	t.Run("IsAncestorOf", func(t *testing.T) {
		assert.True(t, parent.IsAncestorOf(child))
		assert.True(t, parent.IsAncestorOf(grandchild))
		assert.False(t, grandchild.IsAncestorOf(parent))
		assert.False(t, parent.IsAncestorOf(nil))
	})
}
