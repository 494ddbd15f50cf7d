package timekeeping

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHoliday(t *testing.T) {
	t.Run("creates a company-wide holiday", func(t *testing.T) {
		holiday, err := NewHoliday(time.Date(2024, 12, 2, 13, 45, 0, 0, time.UTC), "National Day", true, nil)
		require.NoError(t, err)

		assert.True(t, holiday.IsCompanyWide())
		assert.True(t, holiday.Recurring)
		// clock is stripped
		assert.Equal(t, time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC), holiday.Date)
	})

	t.Run("fails without a name", func(t *testing.T) {
		_, err := NewHoliday(time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC), "  ", false, nil)
		require.Error(t, err)
	})

	t.Run("fails without a date", func(t *testing.T) {
		_, err := NewHoliday(time.Time{}, "National Day", false, nil)
		require.Error(t, err)
	})
}

func TestHolidayOccursOn(t *testing.T) {
	t.Run("recurring repeats every year", func(t *testing.T) {
		holiday, err := NewHoliday(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), "New Year", true, nil)
		require.NoError(t, err)

		assert.True(t, holiday.OccursOn(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, holiday.OccursOn(time.Date(2031, 1, 1, 9, 30, 0, 0, time.UTC)))
		assert.False(t, holiday.OccursOn(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("one-off matches only its own date", func(t *testing.T) {
		holiday, err := NewHoliday(time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), "Eid al-Fitr", false, nil)
		require.NoError(t, err)

		assert.True(t, holiday.OccursOn(time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)))
		assert.False(t, holiday.OccursOn(time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)))
	})
}

func TestHolidayObservedIn(t *testing.T) {
	t.Run("projects recurring holidays into any year", func(t *testing.T) {
		holiday, err := NewHoliday(time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), "Labour Day", true, nil)
		require.NoError(t, err)

		observed, ok := holiday.ObservedIn(2026)
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), observed)
	})

	t.Run("one-off is observed only in its year", func(t *testing.T) {
		holiday, err := NewHoliday(time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), "Eid al-Fitr", false, nil)
		require.NoError(t, err)

		_, ok := holiday.ObservedIn(2025)
		assert.False(t, ok)

		observed, ok := holiday.ObservedIn(2024)
		require.True(t, ok)
		assert.Equal(t, holiday.Date, observed)
	})
}

func TestHolidayBranchScope(t *testing.T) {
	branchID := uuid.New()

	t.Run("company-wide applies everywhere", func(t *testing.T) {
		holiday, err := NewHoliday(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "New Year", true, nil)
		require.NoError(t, err)
		assert.True(t, holiday.AppliesTo(branchID))
		assert.True(t, holiday.AppliesTo(uuid.New()))
	})

	t.Run("branch-scoped applies to one branch", func(t *testing.T) {
		holiday, err := NewHoliday(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "Depot Anniversary", false, &branchID)
		require.NoError(t, err)
		assert.True(t, holiday.AppliesTo(branchID))
		assert.False(t, holiday.AppliesTo(uuid.New()))
	})
}

func TestHolidayUpdate(t *testing.T) {
	holiday, err := NewHoliday(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "Depot Anniversary", false, nil)
	require.NoError(t, err)

	require.NoError(t, holiday.Update(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), "Depot Day", false))
	assert.Equal(t, "Depot Day", holiday.Name)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), holiday.Date)

	require.Error(t, holiday.Update(time.Time{}, "Depot Day", false))
}
