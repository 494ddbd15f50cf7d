package timekeeping

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/timekeeping"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
)

type leaveMocks struct {
	requestRepo  *MockLeaveRequestRepository
	balanceRepo  *MockLeaveBalanceRepository
	scheduleRepo *MockScheduleRepository
	holidayRepo  *MockHolidayRepository
	employeeRepo *MockEmployeeRepository
}

func newLeaveService() (*LeaveService, leaveMocks) {
	m := leaveMocks{
		requestRepo:  new(MockLeaveRequestRepository),
		balanceRepo:  new(MockLeaveBalanceRepository),
		scheduleRepo: new(MockScheduleRepository),
		holidayRepo:  new(MockHolidayRepository),
		employeeRepo: new(MockEmployeeRepository),
	}
	service := NewLeaveService(m.requestRepo, m.balanceRepo, m.scheduleRepo, m.holidayRepo, m.employeeRepo, zap.NewNop())
	return service, m
}

func makeBalance(t *testing.T, employeeID uuid.UUID, leaveType timekeeping.LeaveType, allocated int64) *timekeeping.LeaveBalance {
	t.Helper()
	balance, err := timekeeping.NewLeaveBalance(employeeID, 2026, leaveType, decimal.NewFromInt(allocated), uuid.New())
	require.NoError(t, err)
	return balance
}

func makeLeaveRequest(t *testing.T, employeeID uuid.UUID, days int64) *timekeeping.LeaveRequest {
	t.Helper()
	request, err := timekeeping.NewLeaveRequest(employeeID, timekeeping.LeaveTypeAnnual,
		monday, monday.AddDate(0, 0, int(days)-1), decimal.NewFromInt(days), "family matters")
	require.NoError(t, err)
	return request
}

func TestLeaveService_CreateRequest(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	branchID := uuid.New()
	actorID := uuid.New()
	employee := &workforce.Employee{BranchID: branchID}

	t.Run("counts only working days and reserves them", func(t *testing.T) {
		service, m := newLeaveService()
		schedule := makeSchedule(t, employeeID)
		balance := makeBalance(t, employeeID, timekeeping.LeaveTypeAnnual, 10)

		// Wednesday of that week is a holiday
		holiday, err := timekeeping.NewHoliday(monday.AddDate(0, 0, 2), "Nyepi", false, nil)
		require.NoError(t, err)

		m.employeeRepo.On("FindByID", ctx, employeeID).Return(employee, nil)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, monday).Return(schedule, nil)
		m.holidayRepo.On("FindForYear", ctx, 2026, &branchID).Return([]*timekeeping.Holiday{holiday}, nil)
		m.balanceRepo.On("FindForPeriod", ctx, employeeID, 2026, timekeeping.LeaveTypeAnnual).Return(balance, nil)
		m.balanceRepo.On("Save", ctx, balance).Return(nil)
		m.requestRepo.On("Save", ctx, mock.AnythingOfType("*timekeeping.LeaveRequest")).Return(nil)

		// Monday through Sunday: five weekdays minus the holiday
		resp, err := service.CreateRequest(ctx, CreateLeaveRequestRequest{
			EmployeeID: employeeID,
			Type:       "annual",
			StartDate:  monday,
			EndDate:    monday.AddDate(0, 0, 6),
			Reason:     "family matters",
			ActorID:    actorID,
		})

		require.NoError(t, err)
		assert.Equal(t, "4", resp.Days.String())
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "4", balance.Pending.String())
		assert.Equal(t, "6", balance.Remaining().String())
	})

	t.Run("fails when the balance cannot cover the request", func(t *testing.T) {
		service, m := newLeaveService()
		schedule := makeSchedule(t, employeeID)
		balance := makeBalance(t, employeeID, timekeeping.LeaveTypeAnnual, 2)

		m.employeeRepo.On("FindByID", ctx, employeeID).Return(employee, nil)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, monday).Return(schedule, nil)
		m.holidayRepo.On("FindForYear", ctx, 2026, &branchID).Return(nil, nil)
		m.balanceRepo.On("FindForPeriod", ctx, employeeID, 2026, timekeeping.LeaveTypeAnnual).Return(balance, nil)

		_, err := service.CreateRequest(ctx, CreateLeaveRequestRequest{
			EmployeeID: employeeID,
			Type:       "annual",
			StartDate:  monday,
			EndDate:    monday.AddDate(0, 0, 4),
			ActorID:    actorID,
		})

		require.ErrorIs(t, err, shared.ErrInsufficientBalance)
		m.requestRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails when no balance is allocated", func(t *testing.T) {
		service, m := newLeaveService()
		schedule := makeSchedule(t, employeeID)

		m.employeeRepo.On("FindByID", ctx, employeeID).Return(employee, nil)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, monday).Return(schedule, nil)
		m.holidayRepo.On("FindForYear", ctx, 2026, &branchID).Return(nil, nil)
		m.balanceRepo.On("FindForPeriod", ctx, employeeID, 2026, timekeeping.LeaveTypeAnnual).Return(nil, shared.ErrNotFound)

		_, err := service.CreateRequest(ctx, CreateLeaveRequestRequest{
			EmployeeID: employeeID,
			Type:       "annual",
			StartDate:  monday,
			EndDate:    monday,
			ActorID:    actorID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_BALANCE", domainErr.Code)
	})

	t.Run("unpaid leave bypasses the balance", func(t *testing.T) {
		service, m := newLeaveService()
		schedule := makeSchedule(t, employeeID)

		m.employeeRepo.On("FindByID", ctx, employeeID).Return(employee, nil)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, monday).Return(schedule, nil)
		m.holidayRepo.On("FindForYear", ctx, 2026, &branchID).Return(nil, nil)
		m.requestRepo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := service.CreateRequest(ctx, CreateLeaveRequestRequest{
			EmployeeID: employeeID,
			Type:       "unpaid",
			StartDate:  monday,
			EndDate:    monday.AddDate(0, 0, 1),
			ActorID:    actorID,
		})

		require.NoError(t, err)
		assert.Equal(t, "2", resp.Days.String())
		m.balanceRepo.AssertNotCalled(t, "FindForPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a range with no working days", func(t *testing.T) {
		service, m := newLeaveService()
		schedule := makeSchedule(t, employeeID)

		saturday := monday.AddDate(0, 0, 5)
		m.employeeRepo.On("FindByID", ctx, employeeID).Return(employee, nil)
		m.scheduleRepo.On("FindEffective", ctx, employeeID, saturday).Return(schedule, nil)
		m.holidayRepo.On("FindForYear", ctx, 2026, &branchID).Return(nil, nil)

		_, err := service.CreateRequest(ctx, CreateLeaveRequestRequest{
			EmployeeID: employeeID,
			Type:       "annual",
			StartDate:  saturday,
			EndDate:    saturday.AddDate(0, 0, 1),
			ActorID:    actorID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("fails for unknown employee", func(t *testing.T) {
		service, m := newLeaveService()
		m.employeeRepo.On("FindByID", ctx, employeeID).Return(nil, shared.ErrNotFound)

		_, err := service.CreateRequest(ctx, CreateLeaveRequestRequest{
			EmployeeID: employeeID,
			Type:       "annual",
			StartDate:  monday,
			EndDate:    monday,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_EMPLOYEE", domainErr.Code)
	})
}

func TestLeaveService_Decisions(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	approverID := uuid.New()

	t.Run("approval commits the reservation", func(t *testing.T) {
		service, m := newLeaveService()
		request := makeLeaveRequest(t, employeeID, 3)
		balance := makeBalance(t, employeeID, timekeeping.LeaveTypeAnnual, 10)
		require.NoError(t, balance.Reserve(request.Days, employeeID, "test"))

		m.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		m.balanceRepo.On("FindForPeriod", ctx, employeeID, 2026, timekeeping.LeaveTypeAnnual).Return(balance, nil)
		m.balanceRepo.On("Save", ctx, balance).Return(nil)
		m.requestRepo.On("Save", ctx, request).Return(nil)

		resp, err := service.ApproveRequest(ctx, request.ID, approverID)

		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		require.NotNil(t, resp.ApproverID)
		assert.Equal(t, approverID, *resp.ApproverID)
		assert.Equal(t, "3", balance.Used.String())
		assert.Equal(t, "0", balance.Pending.String())
	})

	t.Run("rejection releases the reservation", func(t *testing.T) {
		service, m := newLeaveService()
		request := makeLeaveRequest(t, employeeID, 3)
		balance := makeBalance(t, employeeID, timekeeping.LeaveTypeAnnual, 10)
		require.NoError(t, balance.Reserve(request.Days, employeeID, "test"))

		m.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		m.balanceRepo.On("FindForPeriod", ctx, employeeID, 2026, timekeeping.LeaveTypeAnnual).Return(balance, nil)
		m.balanceRepo.On("Save", ctx, balance).Return(nil)
		m.requestRepo.On("Save", ctx, request).Return(nil)

		resp, err := service.RejectRequest(ctx, request.ID, RejectLeaveRequest{
			Reason:  "peak season",
			ActorID: approverID,
		})

		require.NoError(t, err)
		assert.Equal(t, "rejected", resp.Status)
		assert.Equal(t, "peak season", resp.RejectionReason)
		assert.Equal(t, "0", balance.Pending.String())
		assert.Equal(t, "10", balance.Remaining().String())
	})

	t.Run("approving a decided request fails", func(t *testing.T) {
		service, m := newLeaveService()
		request := makeLeaveRequest(t, employeeID, 2)
		require.NoError(t, request.Approve(approverID))

		m.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)

		_, err := service.ApproveRequest(ctx, request.ID, approverID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("cancelling a pending request releases pending days", func(t *testing.T) {
		service, m := newLeaveService()
		request := makeLeaveRequest(t, employeeID, 2)
		balance := makeBalance(t, employeeID, timekeeping.LeaveTypeAnnual, 10)
		require.NoError(t, balance.Reserve(request.Days, employeeID, "test"))

		m.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		m.balanceRepo.On("FindForPeriod", ctx, employeeID, 2026, timekeeping.LeaveTypeAnnual).Return(balance, nil)
		m.balanceRepo.On("Save", ctx, balance).Return(nil)
		m.requestRepo.On("Save", ctx, request).Return(nil)

		resp, err := service.CancelRequest(ctx, request.ID, employeeID)

		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, "0", balance.Pending.String())
	})
}

func TestLeaveService_Balances(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	actorID := uuid.New()

	t.Run("allocates a yearly entitlement", func(t *testing.T) {
		service, m := newLeaveService()

		m.balanceRepo.On("FindForPeriod", ctx, employeeID, 2026, timekeeping.LeaveTypeAnnual).Return(nil, shared.ErrNotFound)
		m.employeeRepo.On("FindByID", ctx, employeeID).Return(&workforce.Employee{}, nil)
		m.balanceRepo.On("Save", ctx, mock.AnythingOfType("*timekeeping.LeaveBalance")).Return(nil)

		resp, err := service.AllocateBalance(ctx, AllocateBalanceRequest{
			EmployeeID: employeeID,
			Year:       2026,
			Type:       "annual",
			Allocated:  decimal.NewFromInt(12),
			ActorID:    actorID,
		})

		require.NoError(t, err)
		assert.Equal(t, "12", resp.Allocated.String())
		assert.Equal(t, "12", resp.Remaining.String())
		require.Len(t, resp.Adjustments, 1)
		assert.Equal(t, "allocated", resp.Adjustments[0].Bucket)
	})

	t.Run("rejects duplicate allocation", func(t *testing.T) {
		service, m := newLeaveService()
		existing := makeBalance(t, employeeID, timekeeping.LeaveTypeAnnual, 12)

		m.balanceRepo.On("FindForPeriod", ctx, employeeID, 2026, timekeeping.LeaveTypeAnnual).Return(existing, nil)

		_, err := service.AllocateBalance(ctx, AllocateBalanceRequest{
			EmployeeID: employeeID,
			Year:       2026,
			Type:       "annual",
			Allocated:  decimal.NewFromInt(12),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("adjustment keeps the audit trail", func(t *testing.T) {
		service, m := newLeaveService()
		balance := makeBalance(t, employeeID, timekeeping.LeaveTypeAnnual, 12)

		m.balanceRepo.On("FindByID", ctx, balance.ID).Return(balance, nil)
		m.balanceRepo.On("Save", ctx, balance).Return(nil)

		resp, err := service.AdjustBalance(ctx, balance.ID, AdjustBalanceRequest{
			Delta:   decimal.NewFromInt(-2),
			Reason:  "pro-rated for mid-year hire",
			ActorID: actorID,
		})

		require.NoError(t, err)
		assert.Equal(t, "10", resp.Allocated.String())
		require.Len(t, resp.Adjustments, 2)
		assert.Equal(t, "-2", resp.Adjustments[1].Delta.String())
	})

	t.Run("adjustment cannot cut below committed days", func(t *testing.T) {
		service, m := newLeaveService()
		balance := makeBalance(t, employeeID, timekeeping.LeaveTypeAnnual, 10)
		require.NoError(t, balance.Reserve(decimal.NewFromInt(8), actorID, "test"))

		m.balanceRepo.On("FindByID", ctx, balance.ID).Return(balance, nil)

		_, err := service.AdjustBalance(ctx, balance.ID, AdjustBalanceRequest{
			Delta:   decimal.NewFromInt(-5),
			Reason:  "correction",
			ActorID: actorID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ADJUSTMENT", domainErr.Code)
	})

	t.Run("lists balances for a year", func(t *testing.T) {
		service, m := newLeaveService()
		annual := makeBalance(t, employeeID, timekeeping.LeaveTypeAnnual, 12)
		sick := makeBalance(t, employeeID, timekeeping.LeaveTypeSick, 5)

		m.balanceRepo.On("FindByEmployee", ctx, employeeID, 2026).Return([]*timekeeping.LeaveBalance{annual, sick}, nil)

		items, err := service.GetBalances(ctx, employeeID, 2026)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "annual", items[0].Type)
		assert.Equal(t, "sick", items[1].Type)
	})
}
