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

// ScheduleService handles work schedule assignment
type ScheduleService struct {
	scheduleRepo timekeeping.ScheduleRepository
	employeeRepo workforce.EmployeeRepository
	logger       *zap.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	scheduleRepo timekeeping.ScheduleRepository,
	employeeRepo workforce.EmployeeRepository,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// Create assigns a weekly schedule to an employee. Any previously active
// schedule of the employee is retired so at most one stays active.
func (s *ScheduleService) Create(ctx context.Context, req CreateScheduleRequest) (*ScheduleResponse, error) {
	if _, err := s.employeeRepo.FindByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee not found")
		}
		s.logger.Error("Failed to load employee", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create work schedule")
	}

	schedule, err := timekeeping.NewWorkSchedule(req.EmployeeID, req.EffectiveFrom, toShifts(req.Shifts), req.TimezoneOffsetMinutes)
	if err != nil {
		return nil, err
	}
	if err := applyGeofence(schedule, req.Geofence); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		s.logger.Error("Failed to save work schedule", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create work schedule")
	}

	if err := s.scheduleRepo.DeactivatePrior(ctx, req.EmployeeID, schedule.ID); err != nil {
		s.logger.Error("Failed to deactivate prior schedules",
			zap.String("employee_id", req.EmployeeID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create work schedule")
	}

	s.logger.Info("Work schedule created",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("employee_id", req.EmployeeID.String()))

	return ToScheduleResponse(schedule), nil
}

// Update replaces a schedule definition
func (s *ScheduleService) Update(ctx context.Context, id uuid.UUID, req UpdateScheduleRequest) (*ScheduleResponse, error) {
	schedule, err := s.findSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := schedule.Update(req.EffectiveFrom, toShifts(req.Shifts), req.TimezoneOffsetMinutes); err != nil {
		return nil, err
	}
	if req.Geofence != nil {
		if err := applyGeofence(schedule, req.Geofence); err != nil {
			return nil, err
		}
	} else {
		schedule.ClearGeofence()
	}

	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		s.logger.Error("Failed to save work schedule", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update work schedule")
	}

	s.logger.Info("Work schedule updated", zap.String("schedule_id", id.String()))

	return ToScheduleResponse(schedule), nil
}

// Activate re-enables a schedule and retires any other active one
func (s *ScheduleService) Activate(ctx context.Context, id uuid.UUID) (*ScheduleResponse, error) {
	schedule, err := s.findSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	schedule.Activate()
	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		s.logger.Error("Failed to save work schedule", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to activate work schedule")
	}
	if err := s.scheduleRepo.DeactivatePrior(ctx, schedule.EmployeeID, schedule.ID); err != nil {
		s.logger.Error("Failed to deactivate prior schedules", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to activate work schedule")
	}

	return ToScheduleResponse(schedule), nil
}

// Deactivate retires a schedule
func (s *ScheduleService) Deactivate(ctx context.Context, id uuid.UUID) (*ScheduleResponse, error) {
	schedule, err := s.findSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	schedule.Deactivate()
	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		s.logger.Error("Failed to save work schedule", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate work schedule")
	}

	return ToScheduleResponse(schedule), nil
}

// Get retrieves a schedule by ID
func (s *ScheduleService) Get(ctx context.Context, id uuid.UUID) (*ScheduleResponse, error) {
	schedule, err := s.findSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToScheduleResponse(schedule), nil
}

// GetEffective retrieves the schedule in effect for an employee on a date
func (s *ScheduleService) GetEffective(ctx context.Context, employeeID uuid.UUID, date time.Time) (*ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindEffective(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "No schedule in effect for this date")
		}
		s.logger.Error("Failed to load work schedule", zap.Error(err))
		return nil, err
	}
	return ToScheduleResponse(schedule), nil
}

// List retrieves a paginated list of schedules
func (s *ScheduleService) List(ctx context.Context, req ListSchedulesFilter) (*shared.Paginated[ScheduleResponse], error) {
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
	if req.Active != nil {
		filter.Filters["active"] = *req.Active
	}

	schedules, err := s.scheduleRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list work schedules", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list work schedules")
	}

	total, err := s.scheduleRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count work schedules", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count work schedules")
	}

	items := make([]ScheduleResponse, len(schedules))
	for i := range schedules {
		items[i] = *ToScheduleResponse(schedules[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Delete removes an inactive schedule
func (s *ScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	schedule, err := s.findSchedule(ctx, id)
	if err != nil {
		return err
	}
	if schedule.Active {
		return shared.NewDomainError("INVALID_STATE", "Active schedules cannot be deleted, deactivate first")
	}

	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete work schedule", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete work schedule")
	}

	s.logger.Info("Work schedule deleted", zap.String("schedule_id", id.String()))
	return nil
}

func (s *ScheduleService) findSchedule(ctx context.Context, id uuid.UUID) (*timekeeping.WorkSchedule, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Work schedule not found")
		}
		s.logger.Error("Failed to find work schedule", zap.Error(err))
		return nil, err
	}
	return schedule, nil
}

func toShifts(inputs []ShiftInput) []timekeeping.Shift {
	shifts := make([]timekeeping.Shift, len(inputs))
	for i, in := range inputs {
		shifts[i] = timekeeping.Shift{
			Weekday: time.Weekday(in.Weekday),
			Start:   in.Start,
			End:     in.End,
			Working: in.Working,
		}
	}
	return shifts
}

func applyGeofence(schedule *timekeeping.WorkSchedule, in *GeofenceInput) error {
	if in == nil {
		return nil
	}
	center, err := valueobject.NewGeoPoint(in.Center.Lat, in.Center.Lng)
	if err != nil {
		return err
	}
	return schedule.SetGeofence(center, in.RadiusM)
}
