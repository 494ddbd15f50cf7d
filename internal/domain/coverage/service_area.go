package coverage

import (
	"regexp"
	"strings"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
)

// ServiceType classifies the delivery services offered inside an area
type ServiceType string

const (
	ServiceTypeStandard ServiceType = "standard"
	ServiceTypeExpress  ServiceType = "express"
	ServiceTypeSameDay  ServiceType = "same_day"
	ServiceTypeFreight  ServiceType = "freight"
)

// AreaStatus represents the service area lifecycle
type AreaStatus string

const (
	AreaStatusActive   AreaStatus = "active"
	AreaStatusInactive AreaStatus = "inactive"
)

// Polygon is a GeoJSON polygon. Coordinates are rings of [lng, lat]
// vertex pairs; each ring is closed, first and last vertex equal.
type Polygon struct {
	Type        string
	Coordinates [][][]float64
}

// NewPolygon builds a single-ring polygon from [lng, lat] vertices
func NewPolygon(ring [][]float64) (Polygon, error) {
	polygon := Polygon{
		Type:        "Polygon",
		Coordinates: [][][]float64{ring},
	}
	if err := validatePolygon(polygon); err != nil {
		return Polygon{}, err
	}
	return polygon, nil
}

// ServiceArea is a geographic delivery zone bounded by a polygon
type ServiceArea struct {
	shared.BaseAggregateRoot
	Code         string
	Name         string
	Polygon      Polygon
	ServiceTypes []ServiceType
	Status       AreaStatus
}

// NewServiceArea creates an active service area
func NewServiceArea(code, name string, polygon Polygon, serviceTypes []ServiceType) (*ServiceArea, error) {
	if err := validateAreaCode(code); err != nil {
		return nil, err
	}
	if err := validateAreaName(name); err != nil {
		return nil, err
	}
	if err := validatePolygon(polygon); err != nil {
		return nil, err
	}
	if err := validateServiceTypes(serviceTypes); err != nil {
		return nil, err
	}

	return &ServiceArea{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		Name:              strings.TrimSpace(name),
		Polygon:           polygon,
		ServiceTypes:      serviceTypes,
		Status:            AreaStatusActive,
	}, nil
}

// Update changes the area name and offered service types
func (a *ServiceArea) Update(name string, serviceTypes []ServiceType) error {
	if err := validateAreaName(name); err != nil {
		return err
	}
	if err := validateServiceTypes(serviceTypes); err != nil {
		return err
	}

	a.Name = strings.TrimSpace(name)
	a.ServiceTypes = serviceTypes
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// UpdatePolygon replaces the boundary after re-validating the ring
func (a *ServiceArea) UpdatePolygon(polygon Polygon) error {
	if err := validatePolygon(polygon); err != nil {
		return err
	}

	a.Polygon = polygon
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Activate puts the area back into coverage lookups
func (a *ServiceArea) Activate() {
	a.Status = AreaStatusActive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Deactivate removes the area from coverage lookups
func (a *ServiceArea) Deactivate() {
	a.Status = AreaStatusInactive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// IsActive reports whether the area participates in coverage lookups
func (a *ServiceArea) IsActive() bool {
	return a.Status == AreaStatusActive
}

// Supports reports whether the area offers the given service type
func (a *ServiceArea) Supports(serviceType ServiceType) bool {
	for _, t := range a.ServiceTypes {
		if t == serviceType {
			return true
		}
	}
	return false
}

var areaCodePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validateAreaCode validates the area code format
func validateAreaCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_INPUT", "Area code is required")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_INPUT", "Area code cannot exceed 50 characters")
	}
	if !areaCodePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_INPUT", "Area code can only contain letters, numbers, hyphens and underscores")
	}
	return nil
}

// validateAreaName validates the area name
func validateAreaName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Area name is required")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Area name cannot exceed 100 characters")
	}
	return nil
}

// validatePolygon checks the GeoJSON closed-ring rules
func validatePolygon(p Polygon) error {
	if p.Type != "Polygon" {
		return shared.NewDomainError("INVALID_INPUT", "Geometry type must be Polygon")
	}
	if len(p.Coordinates) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Polygon requires at least one ring")
	}
	for _, ring := range p.Coordinates {
		if len(ring) < 4 {
			return shared.NewDomainError("INVALID_INPUT", "Polygon ring requires at least four points")
		}
		for _, vertex := range ring {
			if len(vertex) != 2 {
				return shared.NewDomainError("INVALID_INPUT", "Polygon vertices must be [lng, lat] pairs")
			}
			lng, lat := vertex[0], vertex[1]
			if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
				return shared.NewDomainError("INVALID_INPUT", "Polygon vertex is out of range")
			}
		}
		first, last := ring[0], ring[len(ring)-1]
		if first[0] != last[0] || first[1] != last[1] {
			return shared.NewDomainError("INVALID_INPUT", "Polygon ring must be closed")
		}
	}
	return nil
}

// validateServiceTypes validates the offered service type list
func validateServiceTypes(types []ServiceType) error {
	if len(types) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "At least one service type is required")
	}
	seen := make(map[ServiceType]bool, len(types))
	for _, t := range types {
		switch t {
		case ServiceTypeStandard, ServiceTypeExpress, ServiceTypeSameDay, ServiceTypeFreight:
		default:
			return shared.NewDomainError("INVALID_INPUT", "Unknown service type")
		}
		if seen[t] {
			return shared.NewDomainError("INVALID_INPUT", "Duplicate service type")
		}
		seen[t] = true
	}
	return nil
}
