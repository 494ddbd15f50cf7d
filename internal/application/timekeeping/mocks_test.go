package timekeeping

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/timekeeping"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
)

// MockAttendanceRepository is a mock implementation of timekeeping.AttendanceRepository
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*timekeeping.Attendance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timekeeping.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date string) (*timekeeping.Attendance, error) {
	args := m.Called(ctx, employeeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timekeeping.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) FindByEmployeeBetween(ctx context.Context, employeeID uuid.UUID, from, to string) ([]*timekeeping.Attendance, error) {
	args := m.Called(ctx, employeeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timekeeping.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*timekeeping.Attendance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timekeeping.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) FindOpenByDate(ctx context.Context, date string) ([]*timekeeping.Attendance, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timekeeping.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) EmployeeIDsWithRecord(ctx context.Context, date string) ([]uuid.UUID, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockAttendanceRepository) Save(ctx context.Context, attendance *timekeeping.Attendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockAttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAttendanceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockScheduleRepository is a mock implementation of timekeeping.ScheduleRepository
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*timekeeping.WorkSchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timekeeping.WorkSchedule), args.Error(1)
}

func (m *MockScheduleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*timekeeping.WorkSchedule, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timekeeping.WorkSchedule), args.Error(1)
}

func (m *MockScheduleRepository) FindActiveByEmployee(ctx context.Context, employeeID uuid.UUID) (*timekeeping.WorkSchedule, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timekeeping.WorkSchedule), args.Error(1)
}

func (m *MockScheduleRepository) FindEffective(ctx context.Context, employeeID uuid.UUID, date time.Time) (*timekeeping.WorkSchedule, error) {
	args := m.Called(ctx, employeeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timekeeping.WorkSchedule), args.Error(1)
}

func (m *MockScheduleRepository) FindAllActive(ctx context.Context) ([]*timekeeping.WorkSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timekeeping.WorkSchedule), args.Error(1)
}

func (m *MockScheduleRepository) DeactivatePrior(ctx context.Context, employeeID uuid.UUID, exceptID uuid.UUID) error {
	args := m.Called(ctx, employeeID, exceptID)
	return args.Error(0)
}

func (m *MockScheduleRepository) Save(ctx context.Context, schedule *timekeeping.WorkSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockLeaveRequestRepository is a mock implementation of timekeeping.LeaveRequestRepository
type MockLeaveRequestRepository struct {
	mock.Mock
}

func (m *MockLeaveRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*timekeeping.LeaveRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timekeeping.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*timekeeping.LeaveRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timekeeping.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRequestRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]*timekeeping.LeaveRequest, error) {
	args := m.Called(ctx, employeeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timekeeping.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRequestRepository) Save(ctx context.Context, request *timekeeping.LeaveRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockLeaveRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaveRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockLeaveBalanceRepository is a mock implementation of timekeeping.LeaveBalanceRepository
type MockLeaveBalanceRepository struct {
	mock.Mock
}

func (m *MockLeaveBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*timekeeping.LeaveBalance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timekeeping.LeaveBalance), args.Error(1)
}

func (m *MockLeaveBalanceRepository) FindForPeriod(ctx context.Context, employeeID uuid.UUID, year int, leaveType timekeeping.LeaveType) (*timekeeping.LeaveBalance, error) {
	args := m.Called(ctx, employeeID, year, leaveType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timekeeping.LeaveBalance), args.Error(1)
}

func (m *MockLeaveBalanceRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, year int) ([]*timekeeping.LeaveBalance, error) {
	args := m.Called(ctx, employeeID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timekeeping.LeaveBalance), args.Error(1)
}

func (m *MockLeaveBalanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*timekeeping.LeaveBalance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timekeeping.LeaveBalance), args.Error(1)
}

func (m *MockLeaveBalanceRepository) Save(ctx context.Context, balance *timekeeping.LeaveBalance) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}

func (m *MockLeaveBalanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaveBalanceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockHolidayRepository is a mock implementation of timekeeping.HolidayRepository
type MockHolidayRepository struct {
	mock.Mock
}

func (m *MockHolidayRepository) FindByID(ctx context.Context, id uuid.UUID) (*timekeeping.Holiday, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timekeeping.Holiday), args.Error(1)
}

func (m *MockHolidayRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*timekeeping.Holiday, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timekeeping.Holiday), args.Error(1)
}

func (m *MockHolidayRepository) FindForYear(ctx context.Context, year int, branchID *uuid.UUID) ([]*timekeeping.Holiday, error) {
	args := m.Called(ctx, year, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timekeeping.Holiday), args.Error(1)
}

func (m *MockHolidayRepository) FindBetween(ctx context.Context, start, end time.Time, branchID *uuid.UUID) ([]*timekeeping.Holiday, error) {
	args := m.Called(ctx, start, end, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timekeeping.Holiday), args.Error(1)
}

func (m *MockHolidayRepository) ExistsOnDate(ctx context.Context, date time.Time, branchID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, date, branchID)
	return args.Bool(0), args.Error(1)
}

func (m *MockHolidayRepository) Save(ctx context.Context, holiday *timekeeping.Holiday) error {
	args := m.Called(ctx, holiday)
	return args.Error(0)
}

func (m *MockHolidayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHolidayRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmployeeRepository is a mock implementation of workforce.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByEmployeeNo(ctx context.Context, employeeNo string) (*workforce.Employee, error) {
	args := m.Called(ctx, employeeNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Employee, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *workforce.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	args := m.Called(ctx, nationalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) NextEmployeeSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) CountByAssignment(ctx context.Context, branchID, divisionID, positionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, branchID, divisionID, positionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) CountByStatus(ctx context.Context) ([]workforce.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.StatusCount), args.Error(1)
}

func (m *MockEmployeeRepository) CountByBranch(ctx context.Context) ([]workforce.BranchCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.BranchCount), args.Error(1)
}
