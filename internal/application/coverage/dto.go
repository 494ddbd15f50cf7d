package coverage

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logistics-erp/hrm/internal/domain/coverage"
)

// CreateServiceAreaRequest represents a request to create a service area
type CreateServiceAreaRequest struct {
	Code         string      `json:"code" binding:"required,min=1,max=50"`
	Name         string      `json:"name" binding:"required,min=1,max=100"`
	Ring         [][]float64 `json:"ring" binding:"required,min=4"`
	ServiceTypes []string    `json:"service_types" binding:"required,min=1,dive,oneof=standard express same_day freight"`
}

// UpdateServiceAreaRequest changes the area name and offered services
type UpdateServiceAreaRequest struct {
	Name         string   `json:"name" binding:"required,min=1,max=100"`
	ServiceTypes []string `json:"service_types" binding:"required,min=1,dive,oneof=standard express same_day freight"`
}

// UpdatePolygonRequest replaces the area boundary
type UpdatePolygonRequest struct {
	Ring [][]float64 `json:"ring" binding:"required,min=4"`
}

// ListServiceAreasFilter contains filters for area queries
type ListServiceAreasFilter struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
	OrderBy     string `form:"sortBy"`
	OrderDir    string `form:"sortDir"`
	Search      string `form:"search"`
	Status      string `form:"status"`
	ServiceType string `form:"service_type"`
}

// LocateRequest looks up coverage at a point
type LocateRequest struct {
	Lat float64 `form:"lat" binding:"min=-90,max=90"`
	Lng float64 `form:"lng" binding:"min=-180,max=180"`
}

// NearRequest finds areas around a point
type NearRequest struct {
	Lat          float64 `form:"lat" binding:"min=-90,max=90"`
	Lng          float64 `form:"lng" binding:"min=-180,max=180"`
	MaxDistanceM float64 `form:"max_distance_m"`
	Limit        int     `form:"limit"`
}

// PolygonResponse is the GeoJSON boundary in responses
type PolygonResponse struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// ServiceAreaResponse represents a service area in responses
type ServiceAreaResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Polygon      PolygonResponse `json:"polygon"`
	ServiceTypes []string        `json:"service_types"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToServiceAreaResponse converts a service area to a response DTO
func ToServiceAreaResponse(a *coverage.ServiceArea) *ServiceAreaResponse {
	types := make([]string, len(a.ServiceTypes))
	for i, t := range a.ServiceTypes {
		types[i] = string(t)
	}
	return &ServiceAreaResponse{
		ID:   a.ID,
		Code: a.Code,
		Name: a.Name,
		Polygon: PolygonResponse{
			Type:        a.Polygon.Type,
			Coordinates: a.Polygon.Coordinates,
		},
		ServiceTypes: types,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// CreateAssignmentRequest links a branch to a service area
type CreateAssignmentRequest struct {
	AreaID   uuid.UUID `json:"area_id" binding:"required"`
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
	Priority int       `json:"priority" binding:"min=0,max=1000"`
}

// SetPriorityRequest changes an assignment's rank
type SetPriorityRequest struct {
	Priority int `json:"priority" binding:"min=0,max=1000"`
}

// AssignmentResponse represents an assignment in responses
type AssignmentResponse struct {
	ID        uuid.UUID `json:"id"`
	AreaID    uuid.UUID `json:"area_id"`
	BranchID  uuid.UUID `json:"branch_id"`
	Priority  int       `json:"priority"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToAssignmentResponse converts an assignment to a response DTO
func ToAssignmentResponse(a *coverage.ServiceAreaAssignment) *AssignmentResponse {
	return &AssignmentResponse{
		ID:        a.ID,
		AreaID:    a.AreaID,
		BranchID:  a.BranchID,
		Priority:  a.Priority,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// BranchForPointResponse is the routing decision for a point
type BranchForPointResponse struct {
	AreaID   uuid.UUID `json:"area_id"`
	AreaCode string    `json:"area_code"`
	BranchID uuid.UUID `json:"branch_id"`
	Priority int       `json:"priority"`
}

// PricingRatesInput carries the tariff components in requests
type PricingRatesInput struct {
	BasePrice    decimal.Decimal  `json:"base_price"`
	PricePerKm   decimal.Decimal  `json:"price_per_km"`
	PricePerKg   decimal.Decimal  `json:"price_per_kg"`
	MinCharge    decimal.Decimal  `json:"min_charge"`
	MaxCharge    *decimal.Decimal `json:"max_charge"`
	InsuranceFee decimal.Decimal  `json:"insurance_fee"`
	PackagingFee decimal.Decimal  `json:"packaging_fee"`
	Currency     string           `json:"currency" binding:"omitempty,len=3"`
}

// CreatePricingRequest creates a tariff for an area and service type
type CreatePricingRequest struct {
	AreaID      uuid.UUID         `json:"area_id" binding:"required"`
	ServiceType string            `json:"service_type" binding:"required,oneof=standard express same_day freight"`
	Rates       PricingRatesInput `json:"rates" binding:"required"`
}

// UpdatePricingRequest replaces the tariff components
type UpdatePricingRequest struct {
	Rates PricingRatesInput `json:"rates" binding:"required"`
}

// PricingResponse represents a tariff in responses
type PricingResponse struct {
	ID           uuid.UUID        `json:"id"`
	AreaID       uuid.UUID        `json:"area_id"`
	ServiceType  string           `json:"service_type"`
	BasePrice    decimal.Decimal  `json:"base_price"`
	PricePerKm   decimal.Decimal  `json:"price_per_km"`
	PricePerKg   decimal.Decimal  `json:"price_per_kg"`
	MinCharge    decimal.Decimal  `json:"min_charge"`
	MaxCharge    *decimal.Decimal `json:"max_charge,omitempty"`
	InsuranceFee decimal.Decimal  `json:"insurance_fee"`
	PackagingFee decimal.Decimal  `json:"packaging_fee"`
	Currency     string           `json:"currency"`
	Active       bool             `json:"active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ToPricingResponse converts a tariff to a response DTO
func ToPricingResponse(p *coverage.ServiceAreaPricing) *PricingResponse {
	return &PricingResponse{
		ID:           p.ID,
		AreaID:       p.AreaID,
		ServiceType:  string(p.ServiceType),
		BasePrice:    p.BasePrice,
		PricePerKm:   p.PricePerKm,
		PricePerKg:   p.PricePerKg,
		MinCharge:    p.MinCharge,
		MaxCharge:    p.MaxCharge,
		InsuranceFee: p.InsuranceFee,
		PackagingFee: p.PackagingFee,
		Currency:     string(p.Currency),
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// QuoteRequest prices a shipment at a point
type QuoteRequest struct {
	Lat         float64         `json:"lat" binding:"min=-90,max=90"`
	Lng         float64         `json:"lng" binding:"min=-180,max=180"`
	ServiceType string          `json:"service_type" binding:"required,oneof=standard express same_day freight"`
	DistanceKm  decimal.Decimal `json:"distance_km"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
}

// QuoteResponse is the priced shipment with its component breakdown
type QuoteResponse struct {
	AreaID         uuid.UUID       `json:"area_id"`
	AreaCode       string          `json:"area_code"`
	ServiceType    string          `json:"service_type"`
	BaseAmount     decimal.Decimal `json:"base_amount"`
	DistanceCharge decimal.Decimal `json:"distance_charge"`
	WeightCharge   decimal.Decimal `json:"weight_charge"`
	AppliedMinimum bool            `json:"applied_minimum"`
	AppliedCap     bool            `json:"applied_cap"`
	InsuranceFee   decimal.Decimal `json:"insurance_fee"`
	PackagingFee   decimal.Decimal `json:"packaging_fee"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
}
