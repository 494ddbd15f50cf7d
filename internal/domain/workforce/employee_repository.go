package workforce

import (
	"context"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// StatusCount is an aggregated headcount per employment status
type StatusCount struct {
	Status EmployeeStatus
	Count  int64
}

// BranchCount is an aggregated headcount per branch
type BranchCount struct {
	BranchID uuid.UUID
	Count    int64
}

// EmployeeRepository defines the persistence operations for employee files
type EmployeeRepository interface {
	// FindByID finds an employee by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)

	// FindByEmployeeNo finds an employee by employee number
	FindByEmployeeNo(ctx context.Context, employeeNo string) (*Employee, error)

	// FindAll finds all employees matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Employee, error)

	// Save creates or updates an employee file
	Save(ctx context.Context, employee *Employee) error

	// Delete removes an employee file
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts employees matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByNationalID checks whether an employee with the national ID exists
	ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)

	// NextEmployeeSequence returns the next value of the employee number sequence
	NextEmployeeSequence(ctx context.Context) (int64, error)

	// CountByAssignment counts non-terminated employees assigned to the given
	// branch, division or position (zero UUIDs are ignored)
	CountByAssignment(ctx context.Context, branchID, divisionID, positionID uuid.UUID) (int64, error)

	// CountByStatus aggregates headcount per employment status
	CountByStatus(ctx context.Context) ([]StatusCount, error)

	// CountByBranch aggregates non-terminated headcount per branch
	CountByBranch(ctx context.Context) ([]BranchCount, error)
}

// HistoryRepository defines the persistence operations for the audit trail
type HistoryRepository interface {
	// Append stores new history records. Records are immutable once written.
	Append(ctx context.Context, records ...*HistoryRecord) error

	// FindByEmployee lists history records for an employee, newest first
	FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]HistoryRecord, error)

	// CountByEmployee counts history records for an employee
	CountByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) (int64, error)
}
