package timekeeping

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/logistics-erp/hrm/internal/domain/timekeeping"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
)

type attendanceMocks struct {
	attendanceRepo *MockAttendanceRepository
	scheduleRepo   *MockScheduleRepository
	holidayRepo    *MockHolidayRepository
	employeeRepo   *MockEmployeeRepository
}

func newAttendanceService(config AttendanceServiceConfig) (*AttendanceService, attendanceMocks) {
	m := attendanceMocks{
		attendanceRepo: new(MockAttendanceRepository),
		scheduleRepo:   new(MockScheduleRepository),
		holidayRepo:    new(MockHolidayRepository),
		employeeRepo:   new(MockEmployeeRepository),
	}
	service := NewAttendanceService(m.attendanceRepo, m.scheduleRepo, m.holidayRepo, m.employeeRepo, config, zap.NewNop())
	return service, m
}

func makeSchedule(t *testing.T, employeeID uuid.UUID) *timekeeping.WorkSchedule {
	t.Helper()
	schedule, err := timekeeping.NewWorkSchedule(employeeID,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		timekeeping.StandardWeek("09:00", "17:00"), 0)
	require.NoError(t, err)
	return schedule
}

// 2026-03-02 is a Monday
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mustGeoPoint(t *testing.T, lat, lng float64) valueobject.GeoPoint {
	t.Helper()
	point, err := valueobject.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("opens record within grace period", func(t *testing.T) {
		service, m := newAttendanceService(DefaultAttendanceServiceConfig())
		schedule := makeSchedule(t, employeeID)

		at := monday.Add(9*time.Hour + 5*time.Minute)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, at).Return(schedule, nil)
		m.attendanceRepo.On("FindByEmployeeAndDate", ctx, employeeID, "2026-03-02").Return(nil, shared.ErrNotFound)

		var saved *timekeeping.Attendance
		m.attendanceRepo.On("Save", ctx, mock.AnythingOfType("*timekeeping.Attendance")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*timekeeping.Attendance) }).
			Return(nil)

		resp, err := service.CheckIn(ctx, CheckInRequest{
			EmployeeID: employeeID,
			Location:   GeoPointInput{Lat: -6.2, Lng: 106.8},
			At:         &at,
		})

		require.NoError(t, err)
		assert.Equal(t, "2026-03-02", resp.Date)
		assert.False(t, resp.Flags.Late)
		assert.Equal(t, "open", resp.Status)
		require.NotNil(t, saved)
		assert.Equal(t, employeeID, saved.EmployeeID)
	})

	t.Run("flags late check-in past the grace period", func(t *testing.T) {
		service, m := newAttendanceService(AttendanceServiceConfig{GraceMinutes: 10})
		schedule := makeSchedule(t, employeeID)

		at := monday.Add(9*time.Hour + 25*time.Minute)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, at).Return(schedule, nil)
		m.attendanceRepo.On("FindByEmployeeAndDate", ctx, employeeID, "2026-03-02").Return(nil, shared.ErrNotFound)
		m.attendanceRepo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := service.CheckIn(ctx, CheckInRequest{
			EmployeeID: employeeID,
			Location:   GeoPointInput{Lat: -6.2, Lng: 106.8},
			At:         &at,
		})

		require.NoError(t, err)
		assert.True(t, resp.Flags.Late)
		assert.Equal(t, 25, resp.LateMinutes)
	})

	t.Run("uses the schedule-local calendar day", func(t *testing.T) {
		service, m := newAttendanceService(DefaultAttendanceServiceConfig())
		schedule, err := timekeeping.NewWorkSchedule(employeeID,
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			timekeeping.StandardWeek("09:00", "17:00"), 420) // UTC+7
		require.NoError(t, err)

		// 23:30 UTC Sunday is 06:30 Monday in UTC+7
		at := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, at).Return(schedule, nil)
		m.attendanceRepo.On("FindByEmployeeAndDate", ctx, employeeID, "2026-03-02").Return(nil, shared.ErrNotFound)
		m.attendanceRepo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := service.CheckIn(ctx, CheckInRequest{
			EmployeeID: employeeID,
			Location:   GeoPointInput{Lat: -6.2, Lng: 106.8},
			At:         &at,
		})

		require.NoError(t, err)
		assert.Equal(t, "2026-03-02", resp.Date)
	})

	t.Run("checks in without a schedule", func(t *testing.T) {
		service, m := newAttendanceService(DefaultAttendanceServiceConfig())

		at := monday.Add(11 * time.Hour)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, at).Return(nil, shared.ErrNotFound)
		m.attendanceRepo.On("FindByEmployeeAndDate", ctx, employeeID, "2026-03-02").Return(nil, shared.ErrNotFound)
		m.attendanceRepo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := service.CheckIn(ctx, CheckInRequest{
			EmployeeID: employeeID,
			Location:   GeoPointInput{Lat: -6.2, Lng: 106.8},
			At:         &at,
		})

		require.NoError(t, err)
		assert.False(t, resp.Flags.Late)
		assert.Equal(t, 0, resp.LateMinutes)
	})

	t.Run("rejects a second check-in on the same day", func(t *testing.T) {
		service, m := newAttendanceService(DefaultAttendanceServiceConfig())
		schedule := makeSchedule(t, employeeID)

		at := monday.Add(10 * time.Hour)
		existing, err := timekeeping.NewAttendance(employeeID, monday.Add(9*time.Hour), mustGeoPoint(t, -6.2, 106.8), nil, 0)
		require.NoError(t, err)

		m.scheduleRepo.On("FindEffective", ctx, employeeID, at).Return(schedule, nil)
		m.attendanceRepo.On("FindByEmployeeAndDate", ctx, employeeID, "2026-03-02").Return(existing, nil)

		_, err = service.CheckIn(ctx, CheckInRequest{
			EmployeeID: employeeID,
			Location:   GeoPointInput{Lat: -6.2, Lng: 106.8},
			At:         &at,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_CHECKED_IN", domainErr.Code)
	})

	t.Run("flags check-in outside the geofence", func(t *testing.T) {
		service, m := newAttendanceService(DefaultAttendanceServiceConfig())
		schedule := makeSchedule(t, employeeID)
		require.NoError(t, schedule.SetGeofence(mustGeoPoint(t, -6.2, 106.8), 100))

		at := monday.Add(9 * time.Hour)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, at).Return(schedule, nil)
		m.attendanceRepo.On("FindByEmployeeAndDate", ctx, employeeID, "2026-03-02").Return(nil, shared.ErrNotFound)
		m.attendanceRepo.On("Save", ctx, mock.Anything).Return(nil)

		// roughly 5.5 km north of the geofence center
		resp, err := service.CheckIn(ctx, CheckInRequest{
			EmployeeID: employeeID,
			Location:   GeoPointInput{Lat: -6.15, Lng: 106.8},
			At:         &at,
		})

		require.NoError(t, err)
		assert.True(t, resp.Flags.OutsideGeofence)
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("closes the open record and derives work hours", func(t *testing.T) {
		service, m := newAttendanceService(DefaultAttendanceServiceConfig())
		schedule := makeSchedule(t, employeeID)

		record, err := timekeeping.NewAttendance(employeeID, monday.Add(9*time.Hour), mustGeoPoint(t, -6.2, 106.8), nil, 0)
		require.NoError(t, err)

		at := monday.Add(17 * time.Hour)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, at).Return(schedule, nil)
		m.attendanceRepo.On("FindByEmployeeAndDate", ctx, employeeID, "2026-03-02").Return(record, nil)
		m.attendanceRepo.On("Save", ctx, record).Return(nil)

		resp, err := service.CheckOut(ctx, CheckOutRequest{
			EmployeeID: employeeID,
			Location:   GeoPointInput{Lat: -6.2, Lng: 106.8},
			At:         &at,
		})

		require.NoError(t, err)
		assert.Equal(t, "closed", resp.Status)
		assert.Equal(t, "8", resp.WorkHours.String())
		assert.False(t, resp.Flags.EarlyDeparture)
	})

	t.Run("flags early departure", func(t *testing.T) {
		service, m := newAttendanceService(DefaultAttendanceServiceConfig())
		schedule := makeSchedule(t, employeeID)

		record, err := timekeeping.NewAttendance(employeeID, monday.Add(9*time.Hour), mustGeoPoint(t, -6.2, 106.8), nil, 0)
		require.NoError(t, err)

		at := monday.Add(16 * time.Hour)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, at).Return(schedule, nil)
		m.attendanceRepo.On("FindByEmployeeAndDate", ctx, employeeID, "2026-03-02").Return(record, nil)
		m.attendanceRepo.On("Save", ctx, record).Return(nil)

		resp, err := service.CheckOut(ctx, CheckOutRequest{
			EmployeeID: employeeID,
			Location:   GeoPointInput{Lat: -6.2, Lng: 106.8},
			At:         &at,
		})

		require.NoError(t, err)
		assert.True(t, resp.Flags.EarlyDeparture)
		assert.Equal(t, 60, resp.EarlyMinutes)
	})

	t.Run("falls back to the prior day for overnight shifts", func(t *testing.T) {
		service, m := newAttendanceService(DefaultAttendanceServiceConfig())

		record, err := timekeeping.NewAttendance(employeeID, monday.Add(22*time.Hour), mustGeoPoint(t, -6.2, 106.8), nil, 0)
		require.NoError(t, err)

		at := monday.Add(30 * time.Hour) // 06:00 the next day
		m.scheduleRepo.On("FindEffective", ctx, employeeID, at).Return(nil, shared.ErrNotFound)
		m.attendanceRepo.On("FindByEmployeeAndDate", ctx, employeeID, "2026-03-03").Return(nil, shared.ErrNotFound)
		m.attendanceRepo.On("FindByEmployeeAndDate", ctx, employeeID, "2026-03-02").Return(record, nil)
		m.attendanceRepo.On("Save", ctx, record).Return(nil)

		resp, err := service.CheckOut(ctx, CheckOutRequest{
			EmployeeID: employeeID,
			Location:   GeoPointInput{Lat: -6.2, Lng: 106.8},
			At:         &at,
		})

		require.NoError(t, err)
		assert.Equal(t, "2026-03-02", resp.Date)
		assert.Equal(t, "closed", resp.Status)
	})

	t.Run("fails when no record exists", func(t *testing.T) {
		service, m := newAttendanceService(DefaultAttendanceServiceConfig())

		at := monday.Add(17 * time.Hour)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, at).Return(nil, shared.ErrNotFound)
		m.attendanceRepo.On("FindByEmployeeAndDate", ctx, employeeID, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := service.CheckOut(ctx, CheckOutRequest{
			EmployeeID: employeeID,
			Location:   GeoPointInput{Lat: -6.2, Lng: 106.8},
			At:         &at,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_CHECKED_IN", domainErr.Code)
	})
}

func TestAttendanceService_Correct(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("recomputes flags from the corrected times", func(t *testing.T) {
		service, m := newAttendanceService(AttendanceServiceConfig{GraceMinutes: 10})
		schedule := makeSchedule(t, employeeID)

		record, err := timekeeping.NewAttendance(employeeID, monday.Add(10*time.Hour), mustGeoPoint(t, -6.2, 106.8), nil, 0)
		require.NoError(t, err)

		checkIn := monday.Add(9 * time.Hour)
		checkOut := monday.Add(17 * time.Hour)
		m.attendanceRepo.On("FindByID", ctx, record.ID).Return(record, nil)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, checkIn).Return(schedule, nil)
		m.attendanceRepo.On("Save", ctx, record).Return(nil)

		resp, err := service.Correct(ctx, record.ID, CorrectAttendanceRequest{
			CheckInAt:  checkIn,
			CheckOutAt: &checkOut,
			Note:       "badge reader was offline",
			ActorID:    uuid.New(),
		})

		require.NoError(t, err)
		assert.False(t, resp.Flags.Late)
		assert.Equal(t, "closed", resp.Status)
		assert.Equal(t, "badge reader was offline", resp.Note)
	})

	t.Run("fails for unknown record", func(t *testing.T) {
		service, m := newAttendanceService(DefaultAttendanceServiceConfig())
		id := uuid.New()
		m.attendanceRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Correct(ctx, id, CorrectAttendanceRequest{
			CheckInAt: monday.Add(9 * time.Hour),
			Note:      "fix",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestAttendanceService_CloseDay(t *testing.T) {
	ctx := context.Background()

	t.Run("flags open records and writes absences", func(t *testing.T) {
		service, m := newAttendanceService(DefaultAttendanceServiceConfig())

		recordedID := uuid.New()
		absentID := uuid.New()
		branchID := uuid.New()

		open, err := timekeeping.NewAttendance(recordedID, monday.Add(9*time.Hour), mustGeoPoint(t, -6.2, 106.8), nil, 0)
		require.NoError(t, err)

		m.attendanceRepo.On("FindOpenByDate", ctx, "2026-03-02").Return([]*timekeeping.Attendance{open}, nil)
		m.attendanceRepo.On("Save", ctx, open).Return(nil)

		schedules := []*timekeeping.WorkSchedule{
			makeSchedule(t, recordedID),
			makeSchedule(t, absentID),
		}
		m.scheduleRepo.On("FindAllActive", ctx).Return(schedules, nil)
		m.attendanceRepo.On("EmployeeIDsWithRecord", ctx, "2026-03-02").Return([]uuid.UUID{recordedID}, nil)

		m.employeeRepo.On("FindByID", ctx, absentID).Return(&workforce.Employee{BranchID: branchID}, nil)
		m.holidayRepo.On("ExistsOnDate", ctx, monday, &branchID).Return(false, nil)

		var absence *timekeeping.Attendance
		m.attendanceRepo.On("Save", ctx, mock.MatchedBy(func(a *timekeeping.Attendance) bool {
			return a.Status == timekeeping.AttendanceStatusAbsent
		})).Run(func(args mock.Arguments) { absence = args.Get(1).(*timekeeping.Attendance) }).Return(nil)

		result, err := service.CloseDay(ctx, CloseDayRequest{Date: "2026-03-02"})

		require.NoError(t, err)
		assert.Equal(t, 1, result.MissingCheckOut)
		assert.Equal(t, 1, result.Absences)
		assert.True(t, open.Flags.MissingCheckOut)
		require.NotNil(t, absence)
		assert.Equal(t, absentID, absence.EmployeeID)
		assert.Equal(t, "2026-03-02", absence.Date)
	})

	t.Run("skips holidays and non-working days", func(t *testing.T) {
		service, m := newAttendanceService(DefaultAttendanceServiceConfig())

		holidayID := uuid.New()
		weekendID := uuid.New()
		branchID := uuid.New()

		m.attendanceRepo.On("FindOpenByDate", ctx, "2026-03-02").Return(nil, nil)
		m.scheduleRepo.On("FindAllActive", ctx).Return([]*timekeeping.WorkSchedule{
			makeSchedule(t, holidayID),
		}, nil)
		m.attendanceRepo.On("EmployeeIDsWithRecord", ctx, "2026-03-02").Return(nil, nil)
		m.employeeRepo.On("FindByID", ctx, holidayID).Return(&workforce.Employee{BranchID: branchID}, nil)
		m.holidayRepo.On("ExistsOnDate", ctx, monday, &branchID).Return(true, nil)

		result, err := service.CloseDay(ctx, CloseDayRequest{Date: "2026-03-02"})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Absences)

		// Sunday never produces absences regardless of the calendar
		m2 := attendanceMocks{
			attendanceRepo: new(MockAttendanceRepository),
			scheduleRepo:   new(MockScheduleRepository),
			holidayRepo:    new(MockHolidayRepository),
			employeeRepo:   new(MockEmployeeRepository),
		}
		service2 := NewAttendanceService(m2.attendanceRepo, m2.scheduleRepo, m2.holidayRepo, m2.employeeRepo, DefaultAttendanceServiceConfig(), zap.NewNop())
		m2.attendanceRepo.On("FindOpenByDate", ctx, "2026-03-01").Return(nil, nil)
		m2.scheduleRepo.On("FindAllActive", ctx).Return([]*timekeeping.WorkSchedule{
			makeSchedule(t, weekendID),
		}, nil)
		m2.attendanceRepo.On("EmployeeIDsWithRecord", ctx, "2026-03-01").Return(nil, nil)

		result2, err := service2.CloseDay(ctx, CloseDayRequest{Date: "2026-03-01"})
		require.NoError(t, err)
		assert.Equal(t, 0, result2.Absences)
	})

	t.Run("skips absences when disabled", func(t *testing.T) {
		service, m := newAttendanceService(AttendanceServiceConfig{GraceMinutes: 10, MarkAbsences: false})

		m.attendanceRepo.On("FindOpenByDate", ctx, "2026-03-02").Return(nil, nil)

		result, err := service.CloseDay(ctx, CloseDayRequest{Date: "2026-03-02"})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Absences)
		m.scheduleRepo.AssertNotCalled(t, "FindAllActive", ctx)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		service, _ := newAttendanceService(DefaultAttendanceServiceConfig())

		_, err := service.CloseDay(ctx, CloseDayRequest{Date: "03/02/2026"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}
