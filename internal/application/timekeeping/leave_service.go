package timekeeping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/timekeeping"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
)

// LeaveService handles leave requests and balances
type LeaveService struct {
	requestRepo  timekeeping.LeaveRequestRepository
	balanceRepo  timekeeping.LeaveBalanceRepository
	scheduleRepo timekeeping.ScheduleRepository
	holidayRepo  timekeeping.HolidayRepository
	employeeRepo workforce.EmployeeRepository
	logger       *zap.Logger
}

// NewLeaveService creates a new leave service
func NewLeaveService(
	requestRepo timekeeping.LeaveRequestRepository,
	balanceRepo timekeeping.LeaveBalanceRepository,
	scheduleRepo timekeeping.ScheduleRepository,
	holidayRepo timekeeping.HolidayRepository,
	employeeRepo workforce.EmployeeRepository,
	logger *zap.Logger,
) *LeaveService {
	return &LeaveService{
		requestRepo:  requestRepo,
		balanceRepo:  balanceRepo,
		scheduleRepo: scheduleRepo,
		holidayRepo:  holidayRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// CreateRequest files a leave request. The day count skips non-working
// days per the employee's schedule and holidays of the employee's branch.
// Balance-consuming types reserve the days as pending.
func (s *LeaveService) CreateRequest(ctx context.Context, req CreateLeaveRequestRequest) (*LeaveRequestResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee not found")
		}
		s.logger.Error("Failed to load employee", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create leave request")
	}

	leaveType := timekeeping.LeaveType(req.Type)
	start := timekeeping.DateOnly(req.StartDate)
	end := timekeeping.DateOnly(req.EndDate)

	isWorkingDay, err := s.workingDayFn(ctx, req.EmployeeID, employee.BranchID, start, end)
	if err != nil {
		return nil, err
	}
	days := timekeeping.CountLeaveDays(start, end, isWorkingDay)

	request, err := timekeeping.NewLeaveRequest(req.EmployeeID, leaveType, start, end, days, req.Reason)
	if err != nil {
		return nil, err
	}

	if consumesBalance(leaveType) {
		balance, err := s.findBalance(ctx, req.EmployeeID, start.Year(), leaveType)
		if err != nil {
			return nil, err
		}
		if err := balance.Reserve(days, req.ActorID, reserveReason(request.ID)); err != nil {
			return nil, err
		}
		if err := s.balanceRepo.Save(ctx, balance); err != nil {
			s.logger.Error("Failed to save leave balance", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create leave request")
		}
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to save leave request", zap.Error(err))
		s.releaseReservation(ctx, request, req.ActorID, "request save failed")
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create leave request")
	}

	s.logger.Info("Leave request created",
		zap.String("request_id", request.ID.String()),
		zap.String("employee_id", req.EmployeeID.String()),
		zap.String("type", req.Type),
		zap.String("days", days.String()))

	return ToLeaveRequestResponse(request), nil
}

// ApproveRequest approves a pending request and commits the reserved days
func (s *LeaveService) ApproveRequest(ctx context.Context, id, approverID uuid.UUID) (*LeaveRequestResponse, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.Approve(approverID); err != nil {
		return nil, err
	}

	if consumesBalance(request.Type) {
		balance, err := s.findBalance(ctx, request.EmployeeID, request.StartDate.Year(), request.Type)
		if err != nil {
			return nil, err
		}
		if err := balance.CommitPending(request.Days, approverID, decisionReason(request.ID, "approved")); err != nil {
			return nil, err
		}
		if err := s.balanceRepo.Save(ctx, balance); err != nil {
			s.logger.Error("Failed to save leave balance", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to approve leave request")
		}
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to save leave request", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to approve leave request")
	}

	s.logger.Info("Leave request approved",
		zap.String("request_id", id.String()),
		zap.String("approver_id", approverID.String()))

	return ToLeaveRequestResponse(request), nil
}

// RejectRequest rejects a pending request and releases the reserved days
func (s *LeaveService) RejectRequest(ctx context.Context, id uuid.UUID, req RejectLeaveRequest) (*LeaveRequestResponse, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.Reject(req.ActorID, req.Reason); err != nil {
		return nil, err
	}

	if consumesBalance(request.Type) {
		balance, err := s.findBalance(ctx, request.EmployeeID, request.StartDate.Year(), request.Type)
		if err != nil {
			return nil, err
		}
		if err := balance.ReleasePending(request.Days, req.ActorID, decisionReason(request.ID, "rejected")); err != nil {
			return nil, err
		}
		if err := s.balanceRepo.Save(ctx, balance); err != nil {
			s.logger.Error("Failed to save leave balance", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to reject leave request")
		}
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to save leave request", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to reject leave request")
	}

	s.logger.Info("Leave request rejected", zap.String("request_id", id.String()))

	return ToLeaveRequestResponse(request), nil
}

// CancelRequest withdraws a request. Pending requests release their
// reservation, approved ones return the already committed days.
func (s *LeaveService) CancelRequest(ctx context.Context, id, actorID uuid.UUID) (*LeaveRequestResponse, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	wasApproved := request.IsApproved()
	if err := request.Cancel(time.Now()); err != nil {
		return nil, err
	}

	if consumesBalance(request.Type) {
		balance, err := s.findBalance(ctx, request.EmployeeID, request.StartDate.Year(), request.Type)
		if err != nil {
			return nil, err
		}
		reason := decisionReason(request.ID, "cancelled")
		if wasApproved {
			err = balance.ReleaseUsed(request.Days, actorID, reason)
		} else {
			err = balance.ReleasePending(request.Days, actorID, reason)
		}
		if err != nil {
			return nil, err
		}
		if err := s.balanceRepo.Save(ctx, balance); err != nil {
			s.logger.Error("Failed to save leave balance", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel leave request")
		}
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to save leave request", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel leave request")
	}

	s.logger.Info("Leave request cancelled", zap.String("request_id", id.String()))

	return ToLeaveRequestResponse(request), nil
}

// GetRequest retrieves a leave request by ID
func (s *LeaveService) GetRequest(ctx context.Context, id uuid.UUID) (*LeaveRequestResponse, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToLeaveRequestResponse(request), nil
}

// ListRequests retrieves a paginated list of leave requests
func (s *LeaveService) ListRequests(ctx context.Context, req ListLeaveRequestsFilter) (*shared.Paginated[LeaveRequestResponse], error) {
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
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.Type != "" {
		filter.Filters["type"] = req.Type
	}

	requests, err := s.requestRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list leave requests", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list leave requests")
	}

	total, err := s.requestRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count leave requests", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count leave requests")
	}

	items := make([]LeaveRequestResponse, len(requests))
	for i := range requests {
		items[i] = *ToLeaveRequestResponse(requests[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// AllocateBalance grants a yearly entitlement, unique per employee, year
// and type
func (s *LeaveService) AllocateBalance(ctx context.Context, req AllocateBalanceRequest) (*LeaveBalanceResponse, error) {
	leaveType := timekeeping.LeaveType(req.Type)

	if _, err := s.balanceRepo.FindForPeriod(ctx, req.EmployeeID, req.Year, leaveType); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A balance already exists for this employee, year and type")
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to look up leave balance", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to allocate leave balance")
	}

	if _, err := s.employeeRepo.FindByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee not found")
		}
		s.logger.Error("Failed to load employee", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to allocate leave balance")
	}

	balance, err := timekeeping.NewLeaveBalance(req.EmployeeID, req.Year, leaveType, req.Allocated, req.ActorID)
	if err != nil {
		return nil, err
	}

	if err := s.balanceRepo.Save(ctx, balance); err != nil {
		s.logger.Error("Failed to save leave balance", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to allocate leave balance")
	}

	s.logger.Info("Leave balance allocated",
		zap.String("employee_id", req.EmployeeID.String()),
		zap.Int("year", req.Year),
		zap.String("type", req.Type),
		zap.String("allocated", req.Allocated.String()))

	return ToLeaveBalanceResponse(balance), nil
}

// AdjustBalance changes an allocation by a signed delta
func (s *LeaveService) AdjustBalance(ctx context.Context, id uuid.UUID, req AdjustBalanceRequest) (*LeaveBalanceResponse, error) {
	balance, err := s.balanceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Leave balance not found")
		}
		s.logger.Error("Failed to find leave balance", zap.Error(err))
		return nil, err
	}

	if err := balance.Adjust(req.Delta, req.Reason, req.ActorID); err != nil {
		return nil, err
	}

	if err := s.balanceRepo.Save(ctx, balance); err != nil {
		s.logger.Error("Failed to save leave balance", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to adjust leave balance")
	}

	s.logger.Info("Leave balance adjusted",
		zap.String("balance_id", id.String()),
		zap.String("delta", req.Delta.String()))

	return ToLeaveBalanceResponse(balance), nil
}

// GetBalances retrieves an employee's balances for a year
func (s *LeaveService) GetBalances(ctx context.Context, employeeID uuid.UUID, year int) ([]LeaveBalanceResponse, error) {
	balances, err := s.balanceRepo.FindByEmployee(ctx, employeeID, year)
	if err != nil {
		s.logger.Error("Failed to list leave balances", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list leave balances")
	}

	items := make([]LeaveBalanceResponse, len(balances))
	for i := range balances {
		items[i] = *ToLeaveBalanceResponse(balances[i])
	}
	return items, nil
}

func (s *LeaveService) findRequest(ctx context.Context, id uuid.UUID) (*timekeeping.LeaveRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Leave request not found")
		}
		s.logger.Error("Failed to find leave request", zap.Error(err))
		return nil, err
	}
	return request, nil
}

func (s *LeaveService) findBalance(ctx context.Context, employeeID uuid.UUID, year int, leaveType timekeeping.LeaveType) (*timekeeping.LeaveBalance, error) {
	balance, err := s.balanceRepo.FindForPeriod(ctx, employeeID, year, leaveType)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INSUFFICIENT_BALANCE", "No leave balance allocated for this period")
		}
		s.logger.Error("Failed to find leave balance", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load leave balance")
	}
	return balance, nil
}

// workingDayFn builds the working-day predicate for a date range, folding
// in the employee's effective schedule and the branch holiday calendar
func (s *LeaveService) workingDayFn(ctx context.Context, employeeID, branchID uuid.UUID, start, end time.Time) (func(time.Time) bool, error) {
	schedule, err := s.scheduleRepo.FindEffective(ctx, employeeID, start)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to load work schedule", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load work schedule")
	}

	var holidays []*timekeeping.Holiday
	for year := start.Year(); year <= end.Year(); year++ {
		batch, err := s.holidayRepo.FindForYear(ctx, year, &branchID)
		if err != nil {
			s.logger.Error("Failed to load holiday calendar", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load holiday calendar")
		}
		holidays = append(holidays, batch...)
	}

	return func(day time.Time) bool {
		if schedule != nil {
			noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0,
				time.FixedZone("schedule", schedule.TimezoneOffsetMinutes*60))
			if !schedule.IsWorkingDay(noon) {
				return false
			}
		} else if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return false
		}
		for _, holiday := range holidays {
			if holiday.OccursOn(day) {
				return false
			}
		}
		return true
	}, nil
}

// releaseReservation undoes a pending reservation after a failed save
func (s *LeaveService) releaseReservation(ctx context.Context, request *timekeeping.LeaveRequest, actorID uuid.UUID, reason string) {
	if !consumesBalance(request.Type) {
		return
	}
	balance, err := s.balanceRepo.FindForPeriod(ctx, request.EmployeeID, request.StartDate.Year(), request.Type)
	if err != nil {
		s.logger.Error("Failed to release leave reservation", zap.Error(err))
		return
	}
	if err := balance.ReleasePending(request.Days, actorID, reason); err != nil {
		s.logger.Error("Failed to release leave reservation", zap.Error(err))
		return
	}
	if err := s.balanceRepo.Save(ctx, balance); err != nil {
		s.logger.Error("Failed to release leave reservation", zap.Error(err))
	}
}

// consumesBalance reports whether the leave type draws on an allocation.
// Unpaid leave never does.
func consumesBalance(t timekeeping.LeaveType) bool {
	return t != timekeeping.LeaveTypeUnpaid
}

func reserveReason(requestID uuid.UUID) string {
	return fmt.Sprintf("leave request %s", requestID)
}

func decisionReason(requestID uuid.UUID, decision string) string {
	return fmt.Sprintf("leave request %s %s", requestID, decision)
}
