package timekeeping

import (
	"context"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// LeaveRequestRepository persists leave requests
type LeaveRequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]*LeaveRequest, error)
	Save(ctx context.Context, request *LeaveRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// LeaveBalanceRepository persists leave balances, unique per employee,
// year and leave type
type LeaveBalanceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveBalance, error)
	FindForPeriod(ctx context.Context, employeeID uuid.UUID, year int, leaveType LeaveType) (*LeaveBalance, error)
	FindByEmployee(ctx context.Context, employeeID uuid.UUID, year int) ([]*LeaveBalance, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*LeaveBalance, error)
	Save(ctx context.Context, balance *LeaveBalance) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
