package timekeeping

import (
	"context"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// AttendanceRepository persists daily attendance records
type AttendanceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date string) (*Attendance, error)
	FindByEmployeeBetween(ctx context.Context, employeeID uuid.UUID, from, to string) ([]*Attendance, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Attendance, error)
	FindOpenByDate(ctx context.Context, date string) ([]*Attendance, error)
	EmployeeIDsWithRecord(ctx context.Context, date string) ([]uuid.UUID, error)
	Save(ctx context.Context, attendance *Attendance) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
