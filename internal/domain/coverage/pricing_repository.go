package coverage

import (
	"context"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// PricingRepository persists area tariffs, unique per area and service type
type PricingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceAreaPricing, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*ServiceAreaPricing, error)
	FindByArea(ctx context.Context, areaID uuid.UUID) ([]*ServiceAreaPricing, error)
	FindByAreaAndType(ctx context.Context, areaID uuid.UUID, serviceType ServiceType) (*ServiceAreaPricing, error)
	FindActiveByAreaAndType(ctx context.Context, areaID uuid.UUID, serviceType ServiceType) (*ServiceAreaPricing, error)
	CountByArea(ctx context.Context, areaID uuid.UUID) (int64, error)
	Save(ctx context.Context, pricing *ServiceAreaPricing) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
