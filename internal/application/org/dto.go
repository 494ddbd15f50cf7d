package org

import (
	"time"

	"github.com/google/uuid"
	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// GeoPointInput is a latitude/longitude pair in request payloads
type GeoPointInput struct {
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
	Lng float64 `json:"lng" binding:"min=-180,max=180"`
}

// AddressInput represents a physical address in request payloads
type AddressInput struct {
	Street     string         `json:"street" binding:"max=200"`
	City       string         `json:"city" binding:"max=100"`
	State      string         `json:"state" binding:"max=100"`
	PostalCode string         `json:"postal_code" binding:"max=20"`
	Country    string         `json:"country" binding:"max=100"`
	Location   *GeoPointInput `json:"location"`
}

// ToAddress converts the input to a domain address
func (a AddressInput) ToAddress() (org.Address, error) {
	addr := org.Address{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
	if a.Location != nil {
		point, err := valueobject.NewGeoPoint(a.Location.Lat, a.Location.Lng)
		if err != nil {
			return org.Address{}, err
		}
		addr.Location = point
	}
	return addr, nil
}

// DayHoursInput represents opening hours for one weekday
type DayHoursInput struct {
	Weekday int    `json:"weekday" binding:"min=0,max=6"`
	Open    string `json:"open"`
	Close   string `json:"close"`
	Closed  bool   `json:"closed"`
}

// MoneyInput represents a monetary amount in request payloads
type MoneyInput struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" binding:"omitempty,len=3"`
}

// ToMoney converts the input to a domain money value
func (m MoneyInput) ToMoney() (valueobject.Money, error) {
	currency := valueobject.Currency(m.Currency)
	if m.Currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return valueobject.NewMoney(m.Amount, currency)
}

// CreateBranchRequest represents a request to create a branch
type CreateBranchRequest struct {
	Code             string          `json:"code" binding:"required,min=1,max=50"`
	Name             string          `json:"name" binding:"required,min=1,max=100"`
	Type             string          `json:"type" binding:"required,oneof=hub depot station office"`
	ParentID         *uuid.UUID      `json:"parent_id"`
	Address          AddressInput    `json:"address"`
	OperationalHours []DayHoursInput `json:"operational_hours"`
	Resources        *ResourcesInput `json:"resources"`
	ManagerID        *uuid.UUID      `json:"manager_id"`
}

// UpdateBranchRequest represents a request to update branch fields
type UpdateBranchRequest struct {
	Name             *string         `json:"name" binding:"omitempty,min=1,max=100"`
	Type             *string         `json:"type" binding:"omitempty,oneof=hub depot station office"`
	Address          *AddressInput   `json:"address"`
	OperationalHours []DayHoursInput `json:"operational_hours"`
	ManagerID        *uuid.UUID      `json:"manager_id"`
	UnsetManager     bool            `json:"unset_manager"`
}

// ResourcesInput represents branch capacity counters
type ResourcesInput struct {
	Vehicles          int     `json:"vehicles" binding:"min=0"`
	StaffCapacity     int     `json:"staff_capacity" binding:"min=0"`
	StorageCapacityM3 float64 `json:"storage_capacity_m3" binding:"min=0"`
}

// MetricsInput represents reported branch metrics
type MetricsInput struct {
	MonthlyShipments int64   `json:"monthly_shipments" binding:"min=0"`
	OnTimeRate       float64 `json:"on_time_rate" binding:"min=0,max=1"`
	UtilizationPct   float64 `json:"utilization_pct" binding:"min=0,max=100"`
}

// ChangeStatusRequest represents a branch status transition
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive closed"`
}

// TransferRequest re-parents a node in its tree. A nil parent moves the
// node to the root.
type TransferRequest struct {
	NewParentID *uuid.UUID `json:"new_parent_id"`
}

// ListBranchesFilter carries list filters for branches
type ListBranchesFilter struct {
	Search   string     `form:"search"`
	Status   string     `form:"status" binding:"omitempty,oneof=active inactive closed"`
	Type     string     `form:"type" binding:"omitempty,oneof=hub depot station office"`
	ParentID *uuid.UUID `form:"parent_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"pageSize" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"sortBy"`
	OrderDir string     `form:"sortDir" binding:"omitempty,oneof=asc desc"`
}

// NearestBranchesQuery carries the nearest-branch lookup parameters
type NearestBranchesQuery struct {
	Lat   float64 `form:"lat" binding:"min=-90,max=90"`
	Lng   float64 `form:"lng" binding:"min=-180,max=180"`
	Limit int     `form:"limit" binding:"omitempty,min=1,max=50"`
}

// GeoPointResponse is a latitude/longitude pair in responses
type GeoPointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	Street     string            `json:"street,omitempty"`
	City       string            `json:"city,omitempty"`
	State      string            `json:"state,omitempty"`
	PostalCode string            `json:"postal_code,omitempty"`
	Country    string            `json:"country,omitempty"`
	Location   *GeoPointResponse `json:"location,omitempty"`
}

// DayHoursResponse represents opening hours in API responses
type DayHoursResponse struct {
	Weekday int    `json:"weekday"`
	Open    string `json:"open,omitempty"`
	Close   string `json:"close,omitempty"`
	Closed  bool   `json:"closed"`
}

// BranchResponse represents a branch in API responses
type BranchResponse struct {
	ID               uuid.UUID          `json:"id"`
	Code             string             `json:"code"`
	Name             string             `json:"name"`
	Type             string             `json:"type"`
	ParentID         *uuid.UUID         `json:"parent_id,omitempty"`
	Path             string             `json:"path"`
	Level            int                `json:"level"`
	Address          AddressResponse    `json:"address"`
	OperationalHours []DayHoursResponse `json:"operational_hours,omitempty"`
	Resources        ResourcesInput     `json:"resources"`
	Metrics          MetricsInput       `json:"metrics"`
	ManagerID        *uuid.UUID         `json:"manager_id,omitempty"`
	Status           string             `json:"status"`
	DistanceM        *float64           `json:"distance_m,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// ToBranchResponse maps a branch aggregate to its API representation
func ToBranchResponse(branch *org.Branch) *BranchResponse {
	resp := &BranchResponse{
		ID:       branch.ID,
		Code:     branch.Code,
		Name:     branch.Name,
		Type:     string(branch.Type),
		ParentID: branch.ParentID,
		Path:     branch.Path,
		Level:    branch.Level,
		Address:  toAddressResponse(branch.Address),
		Resources: ResourcesInput{
			Vehicles:          branch.Resources.Vehicles,
			StaffCapacity:     branch.Resources.StaffCapacity,
			StorageCapacityM3: branch.Resources.StorageCapacityM3,
		},
		Metrics: MetricsInput{
			MonthlyShipments: branch.Metrics.MonthlyShipments,
			OnTimeRate:       branch.Metrics.OnTimeRate,
			UtilizationPct:   branch.Metrics.UtilizationPct,
		},
		ManagerID: branch.ManagerID,
		Status:    string(branch.Status),
		CreatedAt: branch.CreatedAt,
		UpdatedAt: branch.UpdatedAt,
	}
	for _, h := range branch.OperationalHours {
		resp.OperationalHours = append(resp.OperationalHours, DayHoursResponse{
			Weekday: int(h.Weekday),
			Open:    h.Open,
			Close:   h.Close,
			Closed:  h.Closed,
		})
	}
	return resp
}

func toAddressResponse(addr org.Address) AddressResponse {
	resp := AddressResponse{
		Street:     addr.Street,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
		Country:    addr.Country,
	}
	if !addr.Location.IsZero() {
		resp.Location = &GeoPointResponse{Lat: addr.Location.Lat(), Lng: addr.Location.Lng()}
	}
	return resp
}

// CreateDivisionRequest represents a request to create a division
type CreateDivisionRequest struct {
	Code        string      `json:"code" binding:"required,min=1,max=50"`
	Name        string      `json:"name" binding:"required,min=1,max=100"`
	Description string      `json:"description" binding:"max=2000"`
	ParentID    *uuid.UUID  `json:"parent_id"`
	BranchID    *uuid.UUID  `json:"branch_id"`
	ManagerID   *uuid.UUID  `json:"manager_id"`
	Budget      *MoneyInput `json:"budget"`
}

// UpdateDivisionRequest represents a request to update division fields
type UpdateDivisionRequest struct {
	Name        *string     `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string     `json:"description" binding:"omitempty,max=2000"`
	BranchID    *uuid.UUID  `json:"branch_id"`
	UnsetBranch bool        `json:"unset_branch"`
	ManagerID   *uuid.UUID  `json:"manager_id"`
	UnsetManager bool       `json:"unset_manager"`
	Budget      *MoneyInput `json:"budget"`
}

// ListDivisionsFilter carries list filters for divisions
type ListDivisionsFilter struct {
	Search   string     `form:"search"`
	Status   string     `form:"status" binding:"omitempty,oneof=active inactive"`
	ParentID *uuid.UUID `form:"parent_id"`
	BranchID *uuid.UUID `form:"branch_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"pageSize" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"sortBy"`
	OrderDir string     `form:"sortDir" binding:"omitempty,oneof=asc desc"`
}

// DivisionResponse represents a division in API responses
type DivisionResponse struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Path        string     `json:"path"`
	Level       int        `json:"level"`
	BranchID    *uuid.UUID `json:"branch_id,omitempty"`
	ManagerID   *uuid.UUID `json:"manager_id,omitempty"`
	Budget      MoneyResponse `json:"budget"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MoneyResponse represents a monetary amount in API responses
type MoneyResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func toMoneyResponse(m valueobject.Money) MoneyResponse {
	return MoneyResponse{Amount: m.Amount(), Currency: string(m.Currency())}
}

// ToDivisionResponse maps a division aggregate to its API representation
func ToDivisionResponse(division *org.Division) *DivisionResponse {
	return &DivisionResponse{
		ID:          division.ID,
		Code:        division.Code,
		Name:        division.Name,
		Description: division.Description,
		ParentID:    division.ParentID,
		Path:        division.Path,
		Level:       division.Level,
		BranchID:    division.BranchID,
		ManagerID:   division.ManagerID,
		Budget:      toMoneyResponse(division.Budget),
		Status:      string(division.Status),
		CreatedAt:   division.CreatedAt,
		UpdatedAt:   division.UpdatedAt,
	}
}

// CompensationInput represents a salary band in request payloads
type CompensationInput struct {
	MinSalary decimal.Decimal `json:"min_salary"`
	MaxSalary decimal.Decimal `json:"max_salary"`
	Currency  string          `json:"currency" binding:"omitempty,len=3"`
}

// ToBand converts the input to a domain compensation band
func (c CompensationInput) ToBand() (org.CompensationBand, error) {
	currency := valueobject.Currency(c.Currency)
	if c.Currency == "" {
		currency = valueobject.DefaultCurrency
	}
	minSalary, err := valueobject.NewMoney(c.MinSalary, currency)
	if err != nil {
		return org.CompensationBand{}, err
	}
	maxSalary, err := valueobject.NewMoney(c.MaxSalary, currency)
	if err != nil {
		return org.CompensationBand{}, err
	}
	return org.CompensationBand{MinSalary: minSalary, MaxSalary: maxSalary}, nil
}

// CreatePositionRequest represents a request to create a position
type CreatePositionRequest struct {
	Code         string             `json:"code" binding:"required,min=1,max=50"`
	Title        string             `json:"title" binding:"required,min=1,max=100"`
	DivisionID   uuid.UUID          `json:"division_id" binding:"required"`
	ReportsToID  *uuid.UUID         `json:"reports_to_id"`
	Grade        int                `json:"grade" binding:"required,min=1,max=20"`
	Compensation *CompensationInput `json:"compensation"`
	Requirements []string           `json:"requirements"`
	Authorized   *int               `json:"authorized_headcount" binding:"omitempty,min=0"`
}

// UpdatePositionRequest represents a request to update position fields
type UpdatePositionRequest struct {
	Title        *string            `json:"title" binding:"omitempty,min=1,max=100"`
	Grade        *int               `json:"grade" binding:"omitempty,min=1,max=20"`
	Requirements []string           `json:"requirements"`
	Compensation *CompensationInput `json:"compensation"`
	Authorized   *int               `json:"authorized_headcount" binding:"omitempty,min=0"`
}

// ChangePositionStatusRequest represents a position status transition
type ChangePositionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open frozen closed"`
}

// ListPositionsFilter carries list filters for positions
type ListPositionsFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=open frozen closed"`
	DivisionID *uuid.UUID `form:"division_id"`
	Grade      *int       `form:"grade" binding:"omitempty,min=1,max=20"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"pageSize" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"sortBy"`
	OrderDir   string     `form:"sortDir" binding:"omitempty,oneof=asc desc"`
}

// CompensationResponse represents a salary band in API responses
type CompensationResponse struct {
	MinSalary decimal.Decimal `json:"min_salary"`
	MaxSalary decimal.Decimal `json:"max_salary"`
	Currency  string          `json:"currency"`
}

// HeadcountResponse represents seat usage in API responses
type HeadcountResponse struct {
	Authorized int `json:"authorized"`
	Filled     int `json:"filled"`
}

// PositionResponse represents a position in API responses
type PositionResponse struct {
	ID           uuid.UUID            `json:"id"`
	Code         string               `json:"code"`
	Title        string               `json:"title"`
	DivisionID   uuid.UUID            `json:"division_id"`
	ReportsToID  *uuid.UUID           `json:"reports_to_id,omitempty"`
	Path         string               `json:"path"`
	Level        int                  `json:"level"`
	Grade        int                  `json:"grade"`
	Compensation CompensationResponse `json:"compensation"`
	Requirements []string             `json:"requirements,omitempty"`
	Headcount    HeadcountResponse    `json:"headcount"`
	Status       string               `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ToPositionResponse maps a position aggregate to its API representation
func ToPositionResponse(position *org.Position) *PositionResponse {
	return &PositionResponse{
		ID:          position.ID,
		Code:        position.Code,
		Title:       position.Title,
		DivisionID:  position.DivisionID,
		ReportsToID: position.ReportsToID,
		Path:        position.Path,
		Level:       position.Level,
		Grade:       position.Grade,
		Compensation: CompensationResponse{
			MinSalary: position.Compensation.MinSalary.Amount(),
			MaxSalary: position.Compensation.MaxSalary.Amount(),
			Currency:  string(position.Compensation.MinSalary.Currency()),
		},
		Requirements: position.Requirements,
		Headcount: HeadcountResponse{
			Authorized: position.Headcount.Authorized,
			Filled:     position.Headcount.Filled,
		},
		Status:    string(position.Status),
		CreatedAt: position.CreatedAt,
		UpdatedAt: position.UpdatedAt,
	}
}
