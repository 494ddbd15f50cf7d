package coverage

import (
	"context"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// AssignmentRepository persists branch-to-area assignments. Area-scoped
// queries return assignments ordered by ascending priority.
type AssignmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceAreaAssignment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*ServiceAreaAssignment, error)
	FindByArea(ctx context.Context, areaID uuid.UUID) ([]*ServiceAreaAssignment, error)
	FindByBranch(ctx context.Context, branchID uuid.UUID) ([]*ServiceAreaAssignment, error)
	FindByAreaAndBranch(ctx context.Context, areaID, branchID uuid.UUID) (*ServiceAreaAssignment, error)
	FindActiveByAreas(ctx context.Context, areaIDs []uuid.UUID) ([]*ServiceAreaAssignment, error)
	CountByArea(ctx context.Context, areaID uuid.UUID) (int64, error)
	CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error)
	Save(ctx context.Context, assignment *ServiceAreaAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
