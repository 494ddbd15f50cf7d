package timekeeping

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/logistics-erp/hrm/internal/domain/timekeeping"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
)

// AttendanceServiceConfig contains attendance evaluation settings
type AttendanceServiceConfig struct {
	GraceMinutes           int
	DefaultGeofenceRadiusM float64
	MarkAbsences           bool
}

// DefaultAttendanceServiceConfig returns default configuration
func DefaultAttendanceServiceConfig() AttendanceServiceConfig {
	return AttendanceServiceConfig{
		GraceMinutes:           10,
		DefaultGeofenceRadiusM: 250,
		MarkAbsences:           true,
	}
}

// AttendanceService handles daily attendance tracking
type AttendanceService struct {
	attendanceRepo timekeeping.AttendanceRepository
	scheduleRepo   timekeeping.ScheduleRepository
	holidayRepo    timekeeping.HolidayRepository
	employeeRepo   workforce.EmployeeRepository
	config         AttendanceServiceConfig
	logger         *zap.Logger
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo timekeeping.AttendanceRepository,
	scheduleRepo timekeeping.ScheduleRepository,
	holidayRepo timekeeping.HolidayRepository,
	employeeRepo workforce.EmployeeRepository,
	config AttendanceServiceConfig,
	logger *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		holidayRepo:    holidayRepo,
		employeeRepo:   employeeRepo,
		config:         config,
		logger:         logger,
	}
}

// CheckIn opens an attendance record for the day the instant falls on.
// The calendar day and the lateness evaluation follow the employee's
// effective schedule; without one the day is the UTC calendar day and no
// flags are derived.
func (s *AttendanceService) CheckIn(ctx context.Context, req CheckInRequest) (*AttendanceResponse, error) {
	at := time.Now()
	if req.At != nil {
		at = *req.At
	}

	point, err := valueobject.NewGeoPoint(req.Location.Lat, req.Location.Lng)
	if err != nil {
		return nil, err
	}

	schedule, err := s.effectiveSchedule(ctx, req.EmployeeID, at)
	if err != nil {
		return nil, err
	}

	localAt := scheduleLocal(schedule, at)
	date := localAt.Format(timekeeping.DateLayout)

	if _, err := s.attendanceRepo.FindByEmployeeAndDate(ctx, req.EmployeeID, date); err == nil {
		return nil, shared.NewDomainError("ALREADY_CHECKED_IN", "An attendance record already exists for this day")
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to look up attendance record", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check in")
	}

	var window *timekeeping.ShiftWindow
	if schedule != nil {
		window, _ = schedule.WindowFor(at)
	}

	attendance, err := timekeeping.NewAttendance(req.EmployeeID, localAt, point, window, s.config.GraceMinutes)
	if err != nil {
		return nil, err
	}
	s.evaluateGeofence(attendance, schedule, point)

	if err := s.attendanceRepo.Save(ctx, attendance); err != nil {
		s.logger.Error("Failed to save attendance record", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check in")
	}

	s.logger.Info("Employee checked in",
		zap.String("employee_id", req.EmployeeID.String()),
		zap.String("date", date),
		zap.Bool("late", attendance.Flags.Late))

	return ToAttendanceResponse(attendance), nil
}

// CheckOut closes the open record of the day. When no record exists for
// the local day it falls back to the prior day, so overnight shifts can
// still check out after midnight.
func (s *AttendanceService) CheckOut(ctx context.Context, req CheckOutRequest) (*AttendanceResponse, error) {
	at := time.Now()
	if req.At != nil {
		at = *req.At
	}

	point, err := valueobject.NewGeoPoint(req.Location.Lat, req.Location.Lng)
	if err != nil {
		return nil, err
	}

	schedule, err := s.effectiveSchedule(ctx, req.EmployeeID, at)
	if err != nil {
		return nil, err
	}

	localAt := scheduleLocal(schedule, at)
	date := localAt.Format(timekeeping.DateLayout)

	attendance, err := s.attendanceRepo.FindByEmployeeAndDate(ctx, req.EmployeeID, date)
	if errors.Is(err, shared.ErrNotFound) {
		prior := localAt.AddDate(0, 0, -1).Format(timekeeping.DateLayout)
		attendance, err = s.attendanceRepo.FindByEmployeeAndDate(ctx, req.EmployeeID, prior)
	}
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_CHECKED_IN", "No attendance record to check out")
		}
		s.logger.Error("Failed to look up attendance record", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check out")
	}

	var window *timekeeping.ShiftWindow
	if schedule != nil {
		window, _ = schedule.WindowFor(attendance.CheckInAt)
	}

	if err := attendance.CheckOut(localAt, point, window); err != nil {
		return nil, err
	}
	s.evaluateGeofence(attendance, schedule, point)

	if err := s.attendanceRepo.Save(ctx, attendance); err != nil {
		s.logger.Error("Failed to save attendance record", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check out")
	}

	s.logger.Info("Employee checked out",
		zap.String("employee_id", req.EmployeeID.String()),
		zap.String("date", attendance.Date),
		zap.String("work_hours", attendance.WorkHours.String()))

	return ToAttendanceResponse(attendance), nil
}

// Correct replaces the recorded times of a record and recomputes the
// derived values against the schedule in effect at the corrected check-in
func (s *AttendanceService) Correct(ctx context.Context, id uuid.UUID, req CorrectAttendanceRequest) (*AttendanceResponse, error) {
	attendance, err := s.findAttendance(ctx, id)
	if err != nil {
		return nil, err
	}

	schedule, err := s.effectiveSchedule(ctx, attendance.EmployeeID, req.CheckInAt)
	if err != nil {
		return nil, err
	}

	checkInAt := scheduleLocal(schedule, req.CheckInAt)
	var checkOutAt *time.Time
	if req.CheckOutAt != nil {
		out := scheduleLocal(schedule, *req.CheckOutAt)
		checkOutAt = &out
	}

	var window *timekeeping.ShiftWindow
	if schedule != nil {
		window, _ = schedule.WindowFor(checkInAt)
	}

	if err := attendance.Correct(checkInAt, checkOutAt, req.Note, window, s.config.GraceMinutes); err != nil {
		return nil, err
	}

	if err := s.attendanceRepo.Save(ctx, attendance); err != nil {
		s.logger.Error("Failed to save attendance record", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to correct attendance record")
	}

	s.logger.Info("Attendance record corrected",
		zap.String("attendance_id", id.String()),
		zap.String("actor_id", req.ActorID.String()))

	return ToAttendanceResponse(attendance), nil
}

// Get retrieves an attendance record by ID
func (s *AttendanceService) Get(ctx context.Context, id uuid.UUID) (*AttendanceResponse, error) {
	attendance, err := s.findAttendance(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAttendanceResponse(attendance), nil
}

// List retrieves a paginated list of attendance records
func (s *AttendanceService) List(ctx context.Context, req ListAttendanceFilter) (*shared.Paginated[AttendanceResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	if req.EmployeeID != nil {
		filter.Filters["employee_id"] = *req.EmployeeID
	}
	if req.Date != "" {
		filter.Filters["date"] = req.Date
	}
	if req.From != "" {
		filter.Filters["date_from"] = req.From
	}
	if req.To != "" {
		filter.Filters["date_to"] = req.To
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	records, err := s.attendanceRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list attendance records", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list attendance records")
	}

	total, err := s.attendanceRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count attendance records", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count attendance records")
	}

	items := make([]AttendanceResponse, len(records))
	for i := range records {
		items[i] = *ToAttendanceResponse(records[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// CloseDay finalizes one calendar day: open records are flagged as missing
// a check-out, and scheduled working days without any record become
// absences. Holidays never produce absences.
func (s *AttendanceService) CloseDay(ctx context.Context, req CloseDayRequest) (*CloseDayResult, error) {
	date := req.Date
	if date == "" {
		date = time.Now().UTC().AddDate(0, 0, -1).Format(timekeeping.DateLayout)
	}
	day, err := time.Parse(timekeeping.DateLayout, date)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Date must be a valid YYYY-MM-DD value")
	}

	result := &CloseDayResult{Date: date}

	open, err := s.attendanceRepo.FindOpenByDate(ctx, date)
	if err != nil {
		s.logger.Error("Failed to find open attendance records", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to close the day")
	}
	for _, record := range open {
		if err := record.FlagMissingCheckOut(); err != nil {
			continue
		}
		if err := s.attendanceRepo.Save(ctx, record); err != nil {
			s.logger.Error("Failed to flag attendance record",
				zap.String("attendance_id", record.ID.String()), zap.Error(err))
			continue
		}
		result.MissingCheckOut++
	}

	if s.config.MarkAbsences {
		absences, err := s.markAbsences(ctx, day, date)
		if err != nil {
			return nil, err
		}
		result.Absences = absences
	}

	s.logger.Info("Attendance day closed",
		zap.String("date", date),
		zap.Int("missing_check_out", result.MissingCheckOut),
		zap.Int("absences", result.Absences))

	return result, nil
}

func (s *AttendanceService) markAbsences(ctx context.Context, day time.Time, date string) (int, error) {
	schedules, err := s.scheduleRepo.FindAllActive(ctx)
	if err != nil {
		s.logger.Error("Failed to load active schedules", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to close the day")
	}

	recordedIDs, err := s.attendanceRepo.EmployeeIDsWithRecord(ctx, date)
	if err != nil {
		s.logger.Error("Failed to load recorded employees", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to close the day")
	}
	recorded := make(map[uuid.UUID]struct{}, len(recordedIDs))
	for _, id := range recordedIDs {
		recorded[id] = struct{}{}
	}

	absences := 0
	for _, schedule := range schedules {
		if _, ok := recorded[schedule.EmployeeID]; ok {
			continue
		}
		if day.Before(timekeeping.DateOnly(schedule.EffectiveFrom)) {
			continue
		}
		// noon avoids the weekday tipping over at the zone boundary
		noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0,
			time.FixedZone("schedule", schedule.TimezoneOffsetMinutes*60))
		if !schedule.IsWorkingDay(noon) {
			continue
		}

		holiday, err := s.isHoliday(ctx, day, schedule.EmployeeID)
		if err != nil {
			return 0, err
		}
		if holiday {
			continue
		}

		absence, err := timekeeping.NewAbsence(schedule.EmployeeID, date)
		if err != nil {
			continue
		}
		if err := s.attendanceRepo.Save(ctx, absence); err != nil {
			s.logger.Error("Failed to save absence record",
				zap.String("employee_id", schedule.EmployeeID.String()), zap.Error(err))
			continue
		}
		absences++
	}
	return absences, nil
}

func (s *AttendanceService) isHoliday(ctx context.Context, day time.Time, employeeID uuid.UUID) (bool, error) {
	var branchID *uuid.UUID
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err == nil {
		branchID = &employee.BranchID
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to load employee", zap.Error(err))
		return false, shared.NewDomainError("INTERNAL_ERROR", "Failed to close the day")
	}

	exists, err := s.holidayRepo.ExistsOnDate(ctx, day, branchID)
	if err != nil {
		s.logger.Error("Failed to check holiday calendar", zap.Error(err))
		return false, shared.NewDomainError("INTERNAL_ERROR", "Failed to close the day")
	}
	return exists, nil
}

func (s *AttendanceService) findAttendance(ctx context.Context, id uuid.UUID) (*timekeeping.Attendance, error) {
	attendance, err := s.attendanceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Attendance record not found")
		}
		s.logger.Error("Failed to find attendance record", zap.Error(err))
		return nil, err
	}
	return attendance, nil
}

// effectiveSchedule loads the schedule in effect at the instant, nil when
// the employee has none
func (s *AttendanceService) effectiveSchedule(ctx context.Context, employeeID uuid.UUID, at time.Time) (*timekeeping.WorkSchedule, error) {
	schedule, err := s.scheduleRepo.FindEffective(ctx, employeeID, at)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("Failed to load work schedule", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load work schedule")
	}
	return schedule, nil
}

func (s *AttendanceService) evaluateGeofence(attendance *timekeeping.Attendance, schedule *timekeeping.WorkSchedule, point valueobject.GeoPoint) {
	if schedule == nil || !schedule.HasGeofence() {
		return
	}
	radius := schedule.GeofenceRadiusM
	if radius <= 0 {
		radius = s.config.DefaultGeofenceRadiusM
	}
	attendance.EvaluateGeofence(point, *schedule.GeofenceCenter, radius)
}

// scheduleLocal moves the instant into the schedule's zone so the derived
// calendar day is the schedule-local one
func scheduleLocal(schedule *timekeeping.WorkSchedule, at time.Time) time.Time {
	if schedule == nil {
		return at.UTC()
	}
	return at.In(time.FixedZone("schedule", schedule.TimezoneOffsetMinutes*60))
}
