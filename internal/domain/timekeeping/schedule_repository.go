package timekeeping

import (
	"context"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// ScheduleRepository persists work schedules. DeactivatePrior retires all
// other active schedules of the employee when a new one takes effect.
type ScheduleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WorkSchedule, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*WorkSchedule, error)
	FindActiveByEmployee(ctx context.Context, employeeID uuid.UUID) (*WorkSchedule, error)
	FindEffective(ctx context.Context, employeeID uuid.UUID, date time.Time) (*WorkSchedule, error)
	FindAllActive(ctx context.Context) ([]*WorkSchedule, error)
	DeactivatePrior(ctx context.Context, employeeID uuid.UUID, exceptID uuid.UUID) error
	Save(ctx context.Context, schedule *WorkSchedule) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
