package timekeeping

import (
	"testing"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2024-03-04, 09:00-18:00 UTC
func mondayShift() *ShiftWindow {
	return &ShiftWindow{
		Start: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC),
	}
}

func hubLocation(t *testing.T) valueobject.GeoPoint {
	t.Helper()
	point, err := valueobject.NewGeoPoint(25.2048, 55.2708)
	require.NoError(t, err)
	return point
}

func TestNewAttendance(t *testing.T) {
	employeeID := uuid.New()

	t.Run("opens a record keyed by calendar day", func(t *testing.T) {
		at := time.Date(2024, 3, 4, 8, 58, 0, 0, time.UTC)
		attendance, err := NewAttendance(employeeID, at, hubLocation(t), mondayShift(), 10)
		require.NoError(t, err)

		assert.Equal(t, "2024-03-04", attendance.Date)
		assert.Equal(t, AttendanceStatusOpen, attendance.Status)
		assert.True(t, attendance.IsOpen())
		assert.False(t, attendance.Flags.Late)
		assert.Zero(t, attendance.LateMinutes)
	})

	t.Run("check-in within grace is not late", func(t *testing.T) {
		at := time.Date(2024, 3, 4, 9, 10, 0, 0, time.UTC)
		attendance, err := NewAttendance(employeeID, at, hubLocation(t), mondayShift(), 10)
		require.NoError(t, err)
		assert.False(t, attendance.Flags.Late)
	})

	t.Run("late minutes count from shift start", func(t *testing.T) {
		at := time.Date(2024, 3, 4, 9, 25, 0, 0, time.UTC)
		attendance, err := NewAttendance(employeeID, at, hubLocation(t), mondayShift(), 10)
		require.NoError(t, err)

		assert.True(t, attendance.Flags.Late)
		assert.Equal(t, 25, attendance.LateMinutes)
	})

	t.Run("no schedule means no lateness", func(t *testing.T) {
		at := time.Date(2024, 3, 4, 13, 0, 0, 0, time.UTC)
		attendance, err := NewAttendance(employeeID, at, hubLocation(t), nil, 10)
		require.NoError(t, err)
		assert.False(t, attendance.Flags.Late)
	})

	t.Run("fails without employee", func(t *testing.T) {
		_, err := NewAttendance(uuid.Nil, time.Now(), hubLocation(t), nil, 10)
		require.Error(t, err)
	})

	t.Run("fails without check-in time", func(t *testing.T) {
		_, err := NewAttendance(employeeID, time.Time{}, hubLocation(t), nil, 10)
		require.Error(t, err)
	})
}

func TestAttendanceCheckOut(t *testing.T) {
	employeeID := uuid.New()
	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	open := func(t *testing.T) *Attendance {
		attendance, err := NewAttendance(employeeID, checkIn, hubLocation(t), mondayShift(), 10)
		require.NoError(t, err)
		return attendance
	}

	t.Run("derives work hours and closes the record", func(t *testing.T) {
		attendance := open(t)
		out := time.Date(2024, 3, 4, 17, 30, 0, 0, time.UTC)
		require.NoError(t, attendance.CheckOut(out, hubLocation(t), mondayShift()))

		assert.Equal(t, AttendanceStatusClosed, attendance.Status)
		assert.Equal(t, "8.5", attendance.WorkHours.String())
		require.NotNil(t, attendance.CheckOutAt)
	})

	t.Run("flags early departure in minutes", func(t *testing.T) {
		attendance := open(t)
		out := time.Date(2024, 3, 4, 17, 30, 0, 0, time.UTC)
		require.NoError(t, attendance.CheckOut(out, hubLocation(t), mondayShift()))

		assert.True(t, attendance.Flags.EarlyDeparture)
		assert.Equal(t, 30, attendance.EarlyMinutes)
		assert.Zero(t, attendance.OvertimeMinutes)
	})

	t.Run("counts overtime past shift end", func(t *testing.T) {
		attendance := open(t)
		out := time.Date(2024, 3, 4, 19, 15, 0, 0, time.UTC)
		require.NoError(t, attendance.CheckOut(out, hubLocation(t), mondayShift()))

		assert.False(t, attendance.Flags.EarlyDeparture)
		assert.Equal(t, 75, attendance.OvertimeMinutes)
	})

	t.Run("rejects check-out before check-in", func(t *testing.T) {
		attendance := open(t)
		out := checkIn.Add(-time.Hour)
		err := attendance.CheckOut(out, hubLocation(t), mondayShift())
		require.Error(t, err)
	})

	t.Run("rejects a second check-out", func(t *testing.T) {
		attendance := open(t)
		out := time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC)
		require.NoError(t, attendance.CheckOut(out, hubLocation(t), mondayShift()))

		err := attendance.CheckOut(out.Add(time.Hour), hubLocation(t), mondayShift())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No open attendance record")
	})
}

func TestAttendanceGeofence(t *testing.T) {
	employeeID := uuid.New()
	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	center := hubLocation(t)

	t.Run("inside the circle leaves the flag clear", func(t *testing.T) {
		attendance, err := NewAttendance(employeeID, checkIn, center, nil, 10)
		require.NoError(t, err)

		attendance.EvaluateGeofence(attendance.CheckInLocation, center, 200)
		assert.False(t, attendance.Flags.OutsideGeofence)
	})

	t.Run("outside the circle flags the record", func(t *testing.T) {
		far, err := valueobject.NewGeoPoint(25.3000, 55.2708)
		require.NoError(t, err)
		attendance, err := NewAttendance(employeeID, checkIn, far, nil, 10)
		require.NoError(t, err)

		attendance.EvaluateGeofence(attendance.CheckInLocation, center, 200)
		assert.True(t, attendance.Flags.OutsideGeofence)
	})

	t.Run("unset geofence never flags", func(t *testing.T) {
		far, err := valueobject.NewGeoPoint(25.3000, 55.2708)
		require.NoError(t, err)
		attendance, err := NewAttendance(employeeID, checkIn, far, nil, 10)
		require.NoError(t, err)

		attendance.EvaluateGeofence(attendance.CheckInLocation, valueobject.GeoPoint{}, 0)
		assert.False(t, attendance.Flags.OutsideGeofence)
	})
}

func TestAttendanceCloseDay(t *testing.T) {
	t.Run("flags open records as missing check-out", func(t *testing.T) {
		attendance, err := NewAttendance(uuid.New(), time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), hubLocation(t), nil, 10)
		require.NoError(t, err)

		require.NoError(t, attendance.FlagMissingCheckOut())
		assert.True(t, attendance.Flags.MissingCheckOut)
		assert.True(t, attendance.IsOpen())
	})

	t.Run("closed records cannot be flagged", func(t *testing.T) {
		attendance, err := NewAttendance(uuid.New(), time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), hubLocation(t), nil, 10)
		require.NoError(t, err)
		require.NoError(t, attendance.CheckOut(time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC), hubLocation(t), nil))

		require.Error(t, attendance.FlagMissingCheckOut())
	})

	t.Run("records an absence", func(t *testing.T) {
		absence, err := NewAbsence(uuid.New(), "2024-03-04")
		require.NoError(t, err)
		assert.Equal(t, AttendanceStatusAbsent, absence.Status)
		assert.True(t, absence.WorkHours.IsZero())
	})

	t.Run("rejects malformed absence date", func(t *testing.T) {
		_, err := NewAbsence(uuid.New(), "04/03/2024")
		require.Error(t, err)
	})
}

func TestAttendanceCorrect(t *testing.T) {
	employeeID := uuid.New()

	t.Run("recomputes every derivation", func(t *testing.T) {
		lateIn := time.Date(2024, 3, 4, 9, 40, 0, 0, time.UTC)
		attendance, err := NewAttendance(employeeID, lateIn, hubLocation(t), mondayShift(), 10)
		require.NoError(t, err)
		require.True(t, attendance.Flags.Late)

		correctedIn := time.Date(2024, 3, 4, 9, 5, 0, 0, time.UTC)
		correctedOut := time.Date(2024, 3, 4, 18, 5, 0, 0, time.UTC)
		require.NoError(t, attendance.Correct(correctedIn, &correctedOut, "badge reader outage", mondayShift(), 10))

		assert.False(t, attendance.Flags.Late)
		assert.Equal(t, "9", attendance.WorkHours.String())
		assert.Equal(t, 5, attendance.OvertimeMinutes)
		assert.Equal(t, AttendanceStatusClosed, attendance.Status)
		assert.Equal(t, "badge reader outage", attendance.Note)
	})

	t.Run("correction without check-out reopens the record", func(t *testing.T) {
		in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
		attendance, err := NewAttendance(employeeID, in, hubLocation(t), mondayShift(), 10)
		require.NoError(t, err)
		out := time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC)
		require.NoError(t, attendance.CheckOut(out, hubLocation(t), mondayShift()))

		require.NoError(t, attendance.Correct(in, nil, "check-out was recorded in error", mondayShift(), 10))
		assert.True(t, attendance.IsOpen())
		assert.True(t, attendance.WorkHours.IsZero())
	})

	t.Run("rejects inverted times", func(t *testing.T) {
		in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
		attendance, err := NewAttendance(employeeID, in, hubLocation(t), nil, 10)
		require.NoError(t, err)

		bad := in.Add(-time.Hour)
		require.Error(t, attendance.Correct(in, &bad, "", nil, 10))
	})
}
