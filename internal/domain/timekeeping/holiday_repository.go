package timekeeping

import (
	"context"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// HolidayRepository persists holiday calendar entries. Branch-scoped
// queries include company-wide holidays.
type HolidayRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Holiday, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Holiday, error)
	FindForYear(ctx context.Context, year int, branchID *uuid.UUID) ([]*Holiday, error)
	FindBetween(ctx context.Context, start, end time.Time, branchID *uuid.UUID) ([]*Holiday, error)
	ExistsOnDate(ctx context.Context, date time.Time, branchID *uuid.UUID) (bool, error)
	Save(ctx context.Context, holiday *Holiday) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
