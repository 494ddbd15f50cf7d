package timekeeping

import (
	"strings"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// Holiday is a non-working calendar day. A nil branch means company-wide,
// otherwise the holiday applies to one branch only. Recurring holidays
// repeat on the same month and day every year.
type Holiday struct {
	shared.BaseAggregateRoot
	Date      time.Time
	Name      string
	Recurring bool
	BranchID  *uuid.UUID
}

// NewHoliday creates a holiday entry
func NewHoliday(date time.Time, name string, recurring bool, branchID *uuid.UUID) (*Holiday, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Holiday date is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Holiday name is required")
	}

	return &Holiday{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              DateOnly(date),
		Name:              strings.TrimSpace(name),
		Recurring:         recurring,
		BranchID:          branchID,
	}, nil
}

// Update replaces the holiday definition
func (h *Holiday) Update(date time.Time, name string, recurring bool) error {
	if date.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Holiday date is required")
	}
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Holiday name is required")
	}

	h.Date = DateOnly(date)
	h.Name = strings.TrimSpace(name)
	h.Recurring = recurring
	h.UpdatedAt = time.Now()
	h.IncrementVersion()
	return nil
}

// OccursOn reports whether the holiday falls on the given calendar day
func (h *Holiday) OccursOn(date time.Time) bool {
	day := DateOnly(date)
	if h.Recurring {
		return h.Date.Month() == day.Month() && h.Date.Day() == day.Day()
	}
	return h.Date.Equal(day)
}

// ObservedIn projects the holiday into the given year. Non-recurring
// holidays are only observed in their own year.
func (h *Holiday) ObservedIn(year int) (time.Time, bool) {
	if h.Recurring {
		return time.Date(year, h.Date.Month(), h.Date.Day(), 0, 0, 0, 0, time.UTC), true
	}
	if h.Date.Year() != year {
		return time.Time{}, false
	}
	return h.Date, true
}

// AppliesTo reports whether the holiday covers the given branch
func (h *Holiday) AppliesTo(branchID uuid.UUID) bool {
	if h.BranchID == nil {
		return true
	}
	return *h.BranchID == branchID
}

// IsCompanyWide reports whether the holiday applies to every branch
func (h *Holiday) IsCompanyWide() bool {
	return h.BranchID == nil
}
