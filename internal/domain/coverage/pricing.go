package coverage

import (
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceAreaPricing is the tariff for one service type inside an area.
// Area and service type form a unique pair.
type ServiceAreaPricing struct {
	shared.BaseAggregateRoot
	AreaID       uuid.UUID
	ServiceType  ServiceType
	BasePrice    decimal.Decimal
	PricePerKm   decimal.Decimal
	PricePerKg   decimal.Decimal
	MinCharge    decimal.Decimal
	MaxCharge    *decimal.Decimal
	InsuranceFee decimal.Decimal
	PackagingFee decimal.Decimal
	Currency     valueobject.Currency
	Active       bool
}

// PricingRates carries the tariff components for creation and updates
type PricingRates struct {
	BasePrice    decimal.Decimal
	PricePerKm   decimal.Decimal
	PricePerKg   decimal.Decimal
	MinCharge    decimal.Decimal
	MaxCharge    *decimal.Decimal
	InsuranceFee decimal.Decimal
	PackagingFee decimal.Decimal
	Currency     valueobject.Currency
}

// NewServiceAreaPricing creates an active tariff
func NewServiceAreaPricing(areaID uuid.UUID, serviceType ServiceType, rates PricingRates) (*ServiceAreaPricing, error) {
	if areaID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service area is required")
	}
	if err := validateServiceTypes([]ServiceType{serviceType}); err != nil {
		return nil, err
	}
	if err := validateRates(&rates); err != nil {
		return nil, err
	}

	pricing := &ServiceAreaPricing{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AreaID:            areaID,
		ServiceType:       serviceType,
		Active:            true,
	}
	pricing.applyRates(rates)
	return pricing, nil
}

// UpdateRates replaces the tariff components
func (p *ServiceAreaPricing) UpdateRates(rates PricingRates) error {
	if err := validateRates(&rates); err != nil {
		return err
	}
	p.applyRates(rates)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

func (p *ServiceAreaPricing) applyRates(rates PricingRates) {
	p.BasePrice = rates.BasePrice
	p.PricePerKm = rates.PricePerKm
	p.PricePerKg = rates.PricePerKg
	p.MinCharge = rates.MinCharge
	p.MaxCharge = rates.MaxCharge
	p.InsuranceFee = rates.InsuranceFee
	p.PackagingFee = rates.PackagingFee
	p.Currency = rates.Currency
}

// Activate puts the tariff back into quoting
func (p *ServiceAreaPricing) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate removes the tariff from quoting
func (p *ServiceAreaPricing) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Quote is a priced shipment with its component breakdown
type Quote struct {
	BaseAmount     decimal.Decimal
	DistanceCharge decimal.Decimal
	WeightCharge   decimal.Decimal
	AppliedMinimum bool
	AppliedCap     bool
	InsuranceFee   decimal.Decimal
	PackagingFee   decimal.Decimal
	Total          decimal.Decimal
	Currency       valueobject.Currency
}

// ComputeQuote prices a shipment against the tariff. The carried charge is
// the larger of the minimum charge and base + distance + weight, capped at
// the maximum charge when one is set; fees are added after the cap.
func (p *ServiceAreaPricing) ComputeQuote(distanceKm, weightKg decimal.Decimal) (Quote, error) {
	if !p.Active {
		return Quote{}, shared.NewDomainError("INVALID_STATE", "Tariff is not active")
	}
	if distanceKm.IsNegative() {
		return Quote{}, shared.NewDomainError("INVALID_INPUT", "Distance cannot be negative")
	}
	if weightKg.IsNegative() {
		return Quote{}, shared.NewDomainError("INVALID_INPUT", "Weight cannot be negative")
	}

	distanceCharge := distanceKm.Mul(p.PricePerKm).Round(2)
	weightCharge := weightKg.Mul(p.PricePerKg).Round(2)
	carried := p.BasePrice.Add(distanceCharge).Add(weightCharge)

	appliedMinimum := false
	if carried.LessThan(p.MinCharge) {
		carried = p.MinCharge
		appliedMinimum = true
	}
	appliedCap := false
	if p.MaxCharge != nil && carried.GreaterThan(*p.MaxCharge) {
		carried = *p.MaxCharge
		appliedCap = true
	}

	return Quote{
		BaseAmount:     p.BasePrice,
		DistanceCharge: distanceCharge,
		WeightCharge:   weightCharge,
		AppliedMinimum: appliedMinimum,
		AppliedCap:     appliedCap,
		InsuranceFee:   p.InsuranceFee,
		PackagingFee:   p.PackagingFee,
		Total:          carried.Add(p.InsuranceFee).Add(p.PackagingFee).Round(2),
		Currency:       p.Currency,
	}, nil
}

// validateRates validates the tariff components, defaulting the currency
func validateRates(rates *PricingRates) error {
	components := []struct {
		name  string
		value decimal.Decimal
	}{
		{"Base price", rates.BasePrice},
		{"Price per km", rates.PricePerKm},
		{"Price per kg", rates.PricePerKg},
		{"Minimum charge", rates.MinCharge},
		{"Insurance fee", rates.InsuranceFee},
		{"Packaging fee", rates.PackagingFee},
	}
	for _, c := range components {
		if c.value.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", c.name+" cannot be negative")
		}
	}
	if rates.MaxCharge != nil && !rates.MaxCharge.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Maximum charge must be positive when set")
	}
	if rates.Currency == "" {
		rates.Currency = valueobject.DefaultCurrency
	}
	return nil
}
