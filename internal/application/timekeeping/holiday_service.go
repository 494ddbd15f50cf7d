package timekeeping

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/timekeeping"
)

// HolidayService manages the holiday calendar
type HolidayService struct {
	holidayRepo timekeeping.HolidayRepository
	logger      *zap.Logger
}

// NewHolidayService creates a new holiday service
func NewHolidayService(holidayRepo timekeeping.HolidayRepository, logger *zap.Logger) *HolidayService {
	return &HolidayService{holidayRepo: holidayRepo, logger: logger}
}

// Create adds a holiday entry, rejecting duplicates on the same day and
// scope
func (s *HolidayService) Create(ctx context.Context, req CreateHolidayRequest) (*HolidayResponse, error) {
	exists, err := s.holidayRepo.ExistsOnDate(ctx, timekeeping.DateOnly(req.Date), req.BranchID)
	if err != nil {
		s.logger.Error("Failed to check holiday calendar", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create holiday")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A holiday already exists on this date")
	}

	holiday, err := timekeeping.NewHoliday(req.Date, req.Name, req.Recurring, req.BranchID)
	if err != nil {
		return nil, err
	}

	if err := s.holidayRepo.Save(ctx, holiday); err != nil {
		s.logger.Error("Failed to save holiday", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create holiday")
	}

	s.logger.Info("Holiday created",
		zap.String("holiday_id", holiday.ID.String()),
		zap.String("date", holiday.Date.Format(timekeeping.DateLayout)),
		zap.String("name", holiday.Name))

	return ToHolidayResponse(holiday), nil
}

// Update replaces a holiday definition
func (s *HolidayService) Update(ctx context.Context, id uuid.UUID, req UpdateHolidayRequest) (*HolidayResponse, error) {
	holiday, err := s.findHoliday(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := holiday.Update(req.Date, req.Name, req.Recurring); err != nil {
		return nil, err
	}

	if err := s.holidayRepo.Save(ctx, holiday); err != nil {
		s.logger.Error("Failed to save holiday", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update holiday")
	}

	return ToHolidayResponse(holiday), nil
}

// Get retrieves a holiday by ID
func (s *HolidayService) Get(ctx context.Context, id uuid.UUID) (*HolidayResponse, error) {
	holiday, err := s.findHoliday(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToHolidayResponse(holiday), nil
}

// List retrieves a paginated list of holiday entries
func (s *HolidayService) List(ctx context.Context, req ListHolidaysFilter) (*shared.Paginated[HolidayResponse], error) {
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
	if req.Year > 0 {
		filter.Filters["year"] = req.Year
	}
	if req.BranchID != nil {
		filter.Filters["branch_id"] = *req.BranchID
	}

	holidays, err := s.holidayRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list holidays", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list holidays")
	}

	total, err := s.holidayRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count holidays", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count holidays")
	}

	items := make([]HolidayResponse, len(holidays))
	for i := range holidays {
		items[i] = *ToHolidayResponse(holidays[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Calendar expands the holiday entries of a year into observed days,
// projecting recurring holidays onto the year. Sorted by date.
func (s *HolidayService) Calendar(ctx context.Context, year int, branchID *uuid.UUID) ([]CalendarDayResponse, error) {
	if year < 2000 || year > 2100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Year is out of range")
	}

	holidays, err := s.holidayRepo.FindForYear(ctx, year, branchID)
	if err != nil {
		s.logger.Error("Failed to load holiday calendar", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load holiday calendar")
	}

	days := make([]CalendarDayResponse, 0, len(holidays))
	for _, holiday := range holidays {
		observed, ok := holiday.ObservedIn(year)
		if !ok {
			continue
		}
		days = append(days, CalendarDayResponse{
			Date:      observed.Format(timekeeping.DateLayout),
			Name:      holiday.Name,
			Recurring: holiday.Recurring,
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return days, nil
}

// Delete removes a holiday entry
func (s *HolidayService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findHoliday(ctx, id); err != nil {
		return err
	}

	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete holiday", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete holiday")
	}

	s.logger.Info("Holiday deleted", zap.String("holiday_id", id.String()))
	return nil
}

func (s *HolidayService) findHoliday(ctx context.Context, id uuid.UUID) (*timekeeping.Holiday, error) {
	holiday, err := s.holidayRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Holiday not found")
		}
		s.logger.Error("Failed to find holiday", zap.Error(err))
		return nil, err
	}
	return holiday, nil
}
