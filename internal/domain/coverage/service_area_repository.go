package coverage

import (
	"context"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ServiceAreaRepository persists service areas with geospatial lookups.
// FindContaining matches areas whose polygon contains the point, boundary
// included; FindNear orders areas by distance from the point.
type ServiceAreaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceArea, error)
	FindByCode(ctx context.Context, code string) (*ServiceArea, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*ServiceArea, error)
	FindContaining(ctx context.Context, point valueobject.GeoPoint) ([]*ServiceArea, error)
	FindNear(ctx context.Context, point valueobject.GeoPoint, maxDistanceM float64, limit int) ([]*ServiceArea, error)
	Save(ctx context.Context, area *ServiceArea) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
