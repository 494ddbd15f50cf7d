package coverage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/logistics-erp/hrm/internal/domain/coverage"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
)

// QuoteCache caches computed quotes. A nil result with a nil error is a
// miss; failures are treated as misses and quoting degrades to computing.
type QuoteCache interface {
	GetQuote(ctx context.Context, key string) (*QuoteResponse, error)
	SetQuote(ctx context.Context, key string, quote *QuoteResponse, ttl time.Duration) error
}

// PricingServiceConfig contains quote computation settings
type PricingServiceConfig struct {
	QuoteCacheTTL time.Duration
}

// DefaultPricingServiceConfig returns default configuration
func DefaultPricingServiceConfig() PricingServiceConfig {
	return PricingServiceConfig{QuoteCacheTTL: 5 * time.Minute}
}

// PricingService handles area tariffs and shipment quoting
type PricingService struct {
	pricingRepo coverage.PricingRepository
	areaRepo    coverage.ServiceAreaRepository
	cache       QuoteCache
	config      PricingServiceConfig
	logger      *zap.Logger
}

// NewPricingService creates a new pricing service. The cache may be nil,
// quoting then always computes.
func NewPricingService(
	pricingRepo coverage.PricingRepository,
	areaRepo coverage.ServiceAreaRepository,
	cache QuoteCache,
	config PricingServiceConfig,
	logger *zap.Logger,
) *PricingService {
	return &PricingService{
		pricingRepo: pricingRepo,
		areaRepo:    areaRepo,
		cache:       cache,
		config:      config,
		logger:      logger,
	}
}

// Create creates a tariff, unique per area and service type
func (s *PricingService) Create(ctx context.Context, req CreatePricingRequest) (*PricingResponse, error) {
	area, err := s.areaRepo.FindByID(ctx, req.AreaID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_AREA", "Service area not found")
		}
		s.logger.Error("Failed to load service area", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tariff")
	}

	serviceType := coverage.ServiceType(req.ServiceType)
	if !area.Supports(serviceType) {
		return nil, shared.NewDomainError("INVALID_INPUT", "The area does not offer this service type")
	}

	if _, err := s.pricingRepo.FindByAreaAndType(ctx, req.AreaID, serviceType); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A tariff already exists for this area and service type")
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to look up tariff", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tariff")
	}

	pricing, err := coverage.NewServiceAreaPricing(req.AreaID, serviceType, toRates(req.Rates))
	if err != nil {
		return nil, err
	}

	if err := s.pricingRepo.Save(ctx, pricing); err != nil {
		s.logger.Error("Failed to save tariff", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tariff")
	}

	s.logger.Info("Tariff created",
		zap.String("area_id", req.AreaID.String()),
		zap.String("service_type", req.ServiceType))

	return ToPricingResponse(pricing), nil
}

// UpdateRates replaces the tariff components
func (s *PricingService) UpdateRates(ctx context.Context, id uuid.UUID, req UpdatePricingRequest) (*PricingResponse, error) {
	pricing, err := s.findPricing(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := pricing.UpdateRates(toRates(req.Rates)); err != nil {
		return nil, err
	}

	if err := s.pricingRepo.Save(ctx, pricing); err != nil {
		s.logger.Error("Failed to save tariff", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update tariff")
	}

	s.logger.Info("Tariff updated", zap.String("pricing_id", id.String()))

	return ToPricingResponse(pricing), nil
}

// Activate puts a tariff back into quoting
func (s *PricingService) Activate(ctx context.Context, id uuid.UUID) (*PricingResponse, error) {
	return s.changeStatus(ctx, id, (*coverage.ServiceAreaPricing).Activate)
}

// Deactivate removes a tariff from quoting
func (s *PricingService) Deactivate(ctx context.Context, id uuid.UUID) (*PricingResponse, error) {
	return s.changeStatus(ctx, id, (*coverage.ServiceAreaPricing).Deactivate)
}

func (s *PricingService) changeStatus(ctx context.Context, id uuid.UUID, transition func(*coverage.ServiceAreaPricing)) (*PricingResponse, error) {
	pricing, err := s.findPricing(ctx, id)
	if err != nil {
		return nil, err
	}

	transition(pricing)

	if err := s.pricingRepo.Save(ctx, pricing); err != nil {
		s.logger.Error("Failed to save tariff", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update tariff")
	}

	return ToPricingResponse(pricing), nil
}

// Get retrieves a tariff by ID
func (s *PricingService) Get(ctx context.Context, id uuid.UUID) (*PricingResponse, error) {
	pricing, err := s.findPricing(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPricingResponse(pricing), nil
}

// ListByArea lists the tariffs of an area
func (s *PricingService) ListByArea(ctx context.Context, areaID uuid.UUID) ([]PricingResponse, error) {
	tariffs, err := s.pricingRepo.FindByArea(ctx, areaID)
	if err != nil {
		s.logger.Error("Failed to list tariffs", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list tariffs")
	}

	items := make([]PricingResponse, len(tariffs))
	for i := range tariffs {
		items[i] = *ToPricingResponse(tariffs[i])
	}
	return items, nil
}

// Delete removes a tariff
func (s *PricingService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findPricing(ctx, id); err != nil {
		return err
	}

	if err := s.pricingRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete tariff", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete tariff")
	}

	s.logger.Info("Tariff deleted", zap.String("pricing_id", id.String()))
	return nil
}

// Quote prices a shipment at a point: locate the containing area, load
// the active tariff for the requested service type and compute the
// breakdown. Results are cached; cache trouble degrades to computing.
func (s *PricingService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	point, err := valueobject.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return nil, err
	}

	serviceType := coverage.ServiceType(req.ServiceType)

	areas, err := s.areaRepo.FindContaining(ctx, point)
	if err != nil {
		s.logger.Error("Failed to locate service areas", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute quote")
	}

	var area *coverage.ServiceArea
	for _, candidate := range areas {
		if candidate.IsActive() && candidate.Supports(serviceType) {
			area = candidate
			break
		}
	}
	if area == nil {
		return nil, shared.NewDomainError("OUT_OF_COVERAGE", "No service area offers this service at the point")
	}

	key := quoteKey(area.ID, serviceType, req)
	if cached := s.cachedQuote(ctx, key); cached != nil {
		return cached, nil
	}

	pricing, err := s.pricingRepo.FindActiveByAreaAndType(ctx, area.ID, serviceType)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NO_TARIFF", "No active tariff for this area and service type")
		}
		s.logger.Error("Failed to load tariff", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute quote")
	}

	quote, err := pricing.ComputeQuote(req.DistanceKm, req.WeightKg)
	if err != nil {
		return nil, err
	}

	resp := &QuoteResponse{
		AreaID:         area.ID,
		AreaCode:       area.Code,
		ServiceType:    string(serviceType),
		BaseAmount:     quote.BaseAmount,
		DistanceCharge: quote.DistanceCharge,
		WeightCharge:   quote.WeightCharge,
		AppliedMinimum: quote.AppliedMinimum,
		AppliedCap:     quote.AppliedCap,
		InsuranceFee:   quote.InsuranceFee,
		PackagingFee:   quote.PackagingFee,
		Total:          quote.Total,
		Currency:       string(quote.Currency),
	}
	s.storeQuote(ctx, key, resp)

	return resp, nil
}

func (s *PricingService) cachedQuote(ctx context.Context, key string) *QuoteResponse {
	if s.cache == nil {
		return nil
	}
	quote, err := s.cache.GetQuote(ctx, key)
	if err != nil {
		s.logger.Warn("Quote cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	return quote
}

func (s *PricingService) storeQuote(ctx context.Context, key string, quote *QuoteResponse) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetQuote(ctx, key, quote, s.config.QuoteCacheTTL); err != nil {
		s.logger.Warn("Quote cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *PricingService) findPricing(ctx context.Context, id uuid.UUID) (*coverage.ServiceAreaPricing, error) {
	pricing, err := s.pricingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Tariff not found")
		}
		s.logger.Error("Failed to find tariff", zap.Error(err))
		return nil, err
	}
	return pricing, nil
}

func quoteKey(areaID uuid.UUID, serviceType coverage.ServiceType, req QuoteRequest) string {
	return fmt.Sprintf("quote:%s:%s:%s:%s", areaID, serviceType, req.DistanceKm, req.WeightKg)
}

func toRates(in PricingRatesInput) coverage.PricingRates {
	return coverage.PricingRates{
		BasePrice:    in.BasePrice,
		PricePerKm:   in.PricePerKm,
		PricePerKg:   in.PricePerKg,
		MinCharge:    in.MinCharge,
		MaxCharge:    in.MaxCharge,
		InsuranceFee: in.InsuranceFee,
		PackagingFee: in.PackagingFee,
		Currency:     valueobject.Currency(in.Currency),
	}
}
