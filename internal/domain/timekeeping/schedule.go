package timekeeping

import (
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

const clockLayout = "15:04"

// Shift is the planned working window for one weekday
type Shift struct {
	Weekday time.Weekday
	Start   string // HH:MM, empty on non-working days
	End     string
	Working bool
}

// ShiftWindow is a shift materialized onto a concrete date
type ShiftWindow struct {
	Start time.Time
	End   time.Time
}

// WorkSchedule is the weekly working pattern assigned to an employee.
// At most one schedule per employee is active at a time; the repository
// deactivates the prior one when a new schedule is activated.
type WorkSchedule struct {
	shared.BaseAggregateRoot
	EmployeeID            uuid.UUID
	EffectiveFrom         time.Time
	Shifts                [7]Shift // indexed by time.Weekday
	TimezoneOffsetMinutes int
	GeofenceCenter        *valueobject.GeoPoint
	GeofenceRadiusM       float64
	Active                bool
}

// NewWorkSchedule creates a weekly schedule covering all seven weekdays
func NewWorkSchedule(employeeID uuid.UUID, effectiveFrom time.Time, shifts []Shift, timezoneOffsetMinutes int) (*WorkSchedule, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee is required")
	}

	schedule := &WorkSchedule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        employeeID,
		Active:            true,
	}
	if err := schedule.apply(effectiveFrom, shifts, timezoneOffsetMinutes); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Update replaces the schedule definition
func (s *WorkSchedule) Update(effectiveFrom time.Time, shifts []Shift, timezoneOffsetMinutes int) error {
	if err := s.apply(effectiveFrom, shifts, timezoneOffsetMinutes); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

func (s *WorkSchedule) apply(effectiveFrom time.Time, shifts []Shift, timezoneOffsetMinutes int) error {
	if effectiveFrom.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Effective date is required")
	}
	if timezoneOffsetMinutes < -14*60 || timezoneOffsetMinutes > 14*60 {
		return shared.NewDomainError("INVALID_INPUT", "Timezone offset is out of range")
	}
	if len(shifts) != 7 {
		return shared.NewDomainError("INVALID_INPUT", "Schedule must define all seven weekdays")
	}

	var week [7]Shift
	var seen [7]bool
	for _, shift := range shifts {
		if shift.Weekday < time.Sunday || shift.Weekday > time.Saturday {
			return shared.NewDomainError("INVALID_INPUT", "Unknown weekday in schedule")
		}
		if seen[shift.Weekday] {
			return shared.NewDomainError("INVALID_INPUT", "Duplicate weekday in schedule")
		}
		seen[shift.Weekday] = true

		if shift.Working {
			start, okStart := parseClock(shift.Start)
			end, okEnd := parseClock(shift.End)
			if !okStart || !okEnd {
				return shared.NewDomainError("INVALID_INPUT", "Shift times must be valid HH:MM values")
			}
			if !start.Before(end) {
				return shared.NewDomainError("INVALID_INPUT", "Shift start must be before shift end")
			}
		} else {
			shift.Start, shift.End = "", ""
		}
		week[shift.Weekday] = shift
	}

	s.EffectiveFrom = effectiveFrom
	s.Shifts = week
	s.TimezoneOffsetMinutes = timezoneOffsetMinutes
	return nil
}

// SetGeofence restricts check-ins to a circle around the given point
func (s *WorkSchedule) SetGeofence(center valueobject.GeoPoint, radiusM float64) error {
	if center.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Geofence center is required")
	}
	if radiusM <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Geofence radius must be positive")
	}
	s.GeofenceCenter = &center
	s.GeofenceRadiusM = radiusM
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// ClearGeofence removes the check-in location restriction
func (s *WorkSchedule) ClearGeofence() {
	s.GeofenceCenter = nil
	s.GeofenceRadiusM = 0
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// HasGeofence reports whether check-in locations are restricted
func (s *WorkSchedule) HasGeofence() bool {
	return s.GeofenceCenter != nil && s.GeofenceRadiusM > 0
}

// Activate marks this schedule as the one attendance is evaluated against
func (s *WorkSchedule) Activate() {
	s.Active = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Deactivate retires the schedule
func (s *WorkSchedule) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// timezone returns the fixed zone the schedule's clock times live in
func (s *WorkSchedule) timezone() *time.Location {
	return time.FixedZone("schedule", s.TimezoneOffsetMinutes*60)
}

// LocalDate returns the schedule-local calendar day the instant falls on
func (s *WorkSchedule) LocalDate(at time.Time) string {
	return at.In(s.timezone()).Format(DateLayout)
}

// IsWorkingDay reports whether the instant falls on a working weekday
func (s *WorkSchedule) IsWorkingDay(at time.Time) bool {
	return s.Shifts[int(at.In(s.timezone()).Weekday())].Working
}

// WindowFor materializes the shift for the day the instant falls on.
// Returns false on non-working days.
func (s *WorkSchedule) WindowFor(at time.Time) (*ShiftWindow, bool) {
	zone := s.timezone()
	local := at.In(zone)
	shift := s.Shifts[int(local.Weekday())]
	if !shift.Working {
		return nil, false
	}

	start, _ := parseClock(shift.Start)
	end, _ := parseClock(shift.End)
	year, month, day := local.Date()
	return &ShiftWindow{
		Start: time.Date(year, month, day, start.Hour(), start.Minute(), 0, 0, zone),
		End:   time.Date(year, month, day, end.Hour(), end.Minute(), 0, 0, zone),
	}, true
}

// StandardWeek returns a Monday-to-Friday week with the given working hours
func StandardWeek(start, end string) []Shift {
	shifts := make([]Shift, 0, 7)
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		shift := Shift{Weekday: weekday}
		if weekday >= time.Monday && weekday <= time.Friday {
			shift.Working = true
			shift.Start = start
			shift.End = end
		}
		shifts = append(shifts, shift)
	}
	return shifts
}

func parseClock(value string) (time.Time, bool) {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
