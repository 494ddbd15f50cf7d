package coverage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/logistics-erp/hrm/internal/domain/coverage"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
)

// AreaService handles service area management and coverage lookups
type AreaService struct {
	areaRepo       coverage.ServiceAreaRepository
	assignmentRepo coverage.AssignmentRepository
	pricingRepo    coverage.PricingRepository
	logger         *zap.Logger
}

// NewAreaService creates a new area service
func NewAreaService(
	areaRepo coverage.ServiceAreaRepository,
	assignmentRepo coverage.AssignmentRepository,
	pricingRepo coverage.PricingRepository,
	logger *zap.Logger,
) *AreaService {
	return &AreaService{
		areaRepo:       areaRepo,
		assignmentRepo: assignmentRepo,
		pricingRepo:    pricingRepo,
		logger:         logger,
	}
}

// Create creates a new service area
func (s *AreaService) Create(ctx context.Context, req CreateServiceAreaRequest) (*ServiceAreaResponse, error) {
	exists, err := s.areaRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		s.logger.Error("Failed to check area code", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create service area")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A service area with this code already exists")
	}

	polygon, err := coverage.NewPolygon(req.Ring)
	if err != nil {
		return nil, err
	}

	area, err := coverage.NewServiceArea(req.Code, req.Name, polygon, toServiceTypes(req.ServiceTypes))
	if err != nil {
		return nil, err
	}

	if err := s.areaRepo.Save(ctx, area); err != nil {
		s.logger.Error("Failed to save service area", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create service area")
	}

	s.logger.Info("Service area created",
		zap.String("area_id", area.ID.String()),
		zap.String("code", area.Code))

	return ToServiceAreaResponse(area), nil
}

// Update changes the area name and offered service types
func (s *AreaService) Update(ctx context.Context, id uuid.UUID, req UpdateServiceAreaRequest) (*ServiceAreaResponse, error) {
	area, err := s.findArea(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := area.Update(req.Name, toServiceTypes(req.ServiceTypes)); err != nil {
		return nil, err
	}

	if err := s.areaRepo.Save(ctx, area); err != nil {
		s.logger.Error("Failed to save service area", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update service area")
	}

	return ToServiceAreaResponse(area), nil
}

// UpdatePolygon replaces the area boundary
func (s *AreaService) UpdatePolygon(ctx context.Context, id uuid.UUID, req UpdatePolygonRequest) (*ServiceAreaResponse, error) {
	area, err := s.findArea(ctx, id)
	if err != nil {
		return nil, err
	}

	polygon, err := coverage.NewPolygon(req.Ring)
	if err != nil {
		return nil, err
	}
	if err := area.UpdatePolygon(polygon); err != nil {
		return nil, err
	}

	if err := s.areaRepo.Save(ctx, area); err != nil {
		s.logger.Error("Failed to save service area", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update service area")
	}

	s.logger.Info("Service area boundary updated", zap.String("area_id", id.String()))

	return ToServiceAreaResponse(area), nil
}

// Activate puts an area back into coverage lookups
func (s *AreaService) Activate(ctx context.Context, id uuid.UUID) (*ServiceAreaResponse, error) {
	return s.changeStatus(ctx, id, (*coverage.ServiceArea).Activate)
}

// Deactivate removes an area from coverage lookups
func (s *AreaService) Deactivate(ctx context.Context, id uuid.UUID) (*ServiceAreaResponse, error) {
	return s.changeStatus(ctx, id, (*coverage.ServiceArea).Deactivate)
}

func (s *AreaService) changeStatus(ctx context.Context, id uuid.UUID, transition func(*coverage.ServiceArea)) (*ServiceAreaResponse, error) {
	area, err := s.findArea(ctx, id)
	if err != nil {
		return nil, err
	}

	transition(area)

	if err := s.areaRepo.Save(ctx, area); err != nil {
		s.logger.Error("Failed to save service area", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update service area")
	}

	return ToServiceAreaResponse(area), nil
}

// Get retrieves a service area by ID
func (s *AreaService) Get(ctx context.Context, id uuid.UUID) (*ServiceAreaResponse, error) {
	area, err := s.findArea(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToServiceAreaResponse(area), nil
}

// List retrieves a paginated list of service areas
func (s *AreaService) List(ctx context.Context, req ListServiceAreasFilter) (*shared.Paginated[ServiceAreaResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.ServiceType != "" {
		filter.Filters["service_type"] = req.ServiceType
	}

	areas, err := s.areaRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list service areas", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list service areas")
	}

	total, err := s.areaRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count service areas", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count service areas")
	}

	items := make([]ServiceAreaResponse, len(areas))
	for i := range areas {
		items[i] = *ToServiceAreaResponse(areas[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Locate returns the active areas whose polygon contains the point
func (s *AreaService) Locate(ctx context.Context, req LocateRequest) ([]ServiceAreaResponse, error) {
	point, err := valueobject.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return nil, err
	}

	areas, err := s.areaRepo.FindContaining(ctx, point)
	if err != nil {
		s.logger.Error("Failed to locate service areas", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to locate service areas")
	}

	items := make([]ServiceAreaResponse, 0, len(areas))
	for _, area := range areas {
		if !area.IsActive() {
			continue
		}
		items = append(items, *ToServiceAreaResponse(area))
	}
	return items, nil
}

// Near returns areas ordered by distance from the point
func (s *AreaService) Near(ctx context.Context, req NearRequest) ([]ServiceAreaResponse, error) {
	point, err := valueobject.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return nil, err
	}

	maxDistance := req.MaxDistanceM
	if maxDistance <= 0 {
		maxDistance = 50000
	}
	limit := req.Limit
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	areas, err := s.areaRepo.FindNear(ctx, point, maxDistance, limit)
	if err != nil {
		s.logger.Error("Failed to find nearby service areas", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find nearby service areas")
	}

	items := make([]ServiceAreaResponse, len(areas))
	for i := range areas {
		items[i] = *ToServiceAreaResponse(areas[i])
	}
	return items, nil
}

// Delete removes a service area without assignments or tariffs
func (s *AreaService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findArea(ctx, id); err != nil {
		return err
	}

	assignments, err := s.assignmentRepo.CountByArea(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count assignments", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete service area")
	}
	if assignments > 0 {
		return shared.NewDomainError("IN_USE", "Service area still has branch assignments")
	}

	tariffs, err := s.pricingRepo.CountByArea(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count tariffs", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete service area")
	}
	if tariffs > 0 {
		return shared.NewDomainError("IN_USE", "Service area still has tariffs")
	}

	if err := s.areaRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete service area", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete service area")
	}

	s.logger.Info("Service area deleted", zap.String("area_id", id.String()))
	return nil
}

func (s *AreaService) findArea(ctx context.Context, id uuid.UUID) (*coverage.ServiceArea, error) {
	area, err := s.areaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Service area not found")
		}
		s.logger.Error("Failed to find service area", zap.Error(err))
		return nil, err
	}
	return area, nil
}

func toServiceTypes(values []string) []coverage.ServiceType {
	types := make([]coverage.ServiceType, len(values))
	for i, v := range values {
		types[i] = coverage.ServiceType(v)
	}
	return types
}
