package timekeeping

import (
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day key format used across timekeeping
const DateLayout = "2006-01-02"

// AttendanceStatus represents the lifecycle of a daily attendance record
type AttendanceStatus string

const (
	AttendanceStatusOpen   AttendanceStatus = "open"
	AttendanceStatusClosed AttendanceStatus = "closed"
	AttendanceStatusAbsent AttendanceStatus = "absent"
)

// AttendanceFlags are the exceptions derived from the employee's schedule
type AttendanceFlags struct {
	Late            bool
	EarlyDeparture  bool
	OutsideGeofence bool
	MissingCheckOut bool
}

// Attendance is one employee-day attendance record. Employee and date form
// a unique pair; the date is the schedule-local calendar day.
type Attendance struct {
	shared.BaseAggregateRoot
	EmployeeID       uuid.UUID
	Date             string // YYYY-MM-DD
	CheckInAt        time.Time
	CheckInLocation  valueobject.GeoPoint
	CheckOutAt       *time.Time
	CheckOutLocation *valueobject.GeoPoint
	WorkHours        decimal.Decimal
	Flags            AttendanceFlags
	LateMinutes      int
	EarlyMinutes     int
	OvertimeMinutes  int
	Status           AttendanceStatus
	Note             string
}

// NewAttendance opens an attendance record for the day the instant falls
// on. When a shift window is given, lateness is evaluated against the
// shift start plus the grace period.
func NewAttendance(employeeID uuid.UUID, at time.Time, location valueobject.GeoPoint, shift *ShiftWindow, graceMinutes int) (*Attendance, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee is required")
	}
	if at.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Check-in time is required")
	}

	attendance := &Attendance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        employeeID,
		Date:              at.Format(DateLayout),
		CheckInAt:         at,
		CheckInLocation:   location,
		WorkHours:         decimal.Zero,
		Status:            AttendanceStatusOpen,
	}
	attendance.evaluateLateness(shift, graceMinutes)

	return attendance, nil
}

// NewAbsence records a scheduled working day without any check-in
func NewAbsence(employeeID uuid.UUID, date string) (*Attendance, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee is required")
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Date must be a valid YYYY-MM-DD value")
	}

	return &Attendance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        employeeID,
		Date:              date,
		WorkHours:         decimal.Zero,
		Status:            AttendanceStatusAbsent,
	}, nil
}

// CheckOut closes the record and derives work hours and schedule flags
func (a *Attendance) CheckOut(at time.Time, location valueobject.GeoPoint, shift *ShiftWindow) error {
	if a.Status != AttendanceStatusOpen {
		return shared.NewDomainError("NOT_CHECKED_IN", "No open attendance record to check out")
	}
	if at.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Check-out time is required")
	}
	if at.Before(a.CheckInAt) {
		return shared.NewDomainError("INVALID_INPUT", "Check-out cannot precede check-in")
	}

	a.CheckOutAt = &at
	if !location.IsZero() {
		a.CheckOutLocation = &location
	}
	a.WorkHours = workHours(a.CheckInAt, at)
	a.evaluateDeparture(shift)
	a.Flags.MissingCheckOut = false
	a.Status = AttendanceStatusClosed
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// EvaluateGeofence flags the record when the point lies outside the
// allowed circle. The flag is sticky across check-in and check-out.
func (a *Attendance) EvaluateGeofence(point, center valueobject.GeoPoint, radiusM float64) {
	if radiusM <= 0 || center.IsZero() || point.IsZero() {
		return
	}
	if point.DistanceM(center) > radiusM {
		a.Flags.OutsideGeofence = true
	}
}

// FlagMissingCheckOut marks an open record that was never checked out
func (a *Attendance) FlagMissingCheckOut() error {
	if a.Status != AttendanceStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Only open attendance records can be flagged")
	}
	a.Flags.MissingCheckOut = true
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Correct replaces the recorded times and recomputes every derived value.
// The geofence flag is kept as evaluated at the original check-in.
func (a *Attendance) Correct(checkInAt time.Time, checkOutAt *time.Time, note string, shift *ShiftWindow, graceMinutes int) error {
	if checkInAt.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Check-in time is required")
	}
	if checkOutAt != nil && checkOutAt.Before(checkInAt) {
		return shared.NewDomainError("INVALID_INPUT", "Check-out cannot precede check-in")
	}

	a.CheckInAt = checkInAt
	a.CheckOutAt = checkOutAt
	a.Date = checkInAt.Format(DateLayout)
	a.Note = note

	a.Flags.Late = false
	a.Flags.EarlyDeparture = false
	a.Flags.MissingCheckOut = false
	a.LateMinutes = 0
	a.EarlyMinutes = 0
	a.OvertimeMinutes = 0
	a.WorkHours = decimal.Zero

	a.evaluateLateness(shift, graceMinutes)
	if checkOutAt != nil {
		a.WorkHours = workHours(checkInAt, *checkOutAt)
		a.evaluateDeparture(shift)
		a.Status = AttendanceStatusClosed
	} else {
		a.Status = AttendanceStatusOpen
	}

	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// IsOpen reports whether the record still awaits a check-out
func (a *Attendance) IsOpen() bool {
	return a.Status == AttendanceStatusOpen
}

func (a *Attendance) evaluateLateness(shift *ShiftWindow, graceMinutes int) {
	if shift == nil {
		return
	}
	deadline := shift.Start.Add(time.Duration(graceMinutes) * time.Minute)
	if a.CheckInAt.After(deadline) {
		a.Flags.Late = true
		a.LateMinutes = wholeMinutes(a.CheckInAt.Sub(shift.Start))
	}
}

func (a *Attendance) evaluateDeparture(shift *ShiftWindow) {
	if shift == nil || a.CheckOutAt == nil {
		return
	}
	out := *a.CheckOutAt
	if out.Before(shift.End) {
		a.Flags.EarlyDeparture = true
		a.EarlyMinutes = wholeMinutes(shift.End.Sub(out))
	} else if out.After(shift.End) {
		a.OvertimeMinutes = wholeMinutes(out.Sub(shift.End))
	}
}

func workHours(in, out time.Time) decimal.Decimal {
	return decimal.NewFromFloat(out.Sub(in).Hours()).Round(2)
}

func wholeMinutes(d time.Duration) int {
	return int(d.Minutes())
}
