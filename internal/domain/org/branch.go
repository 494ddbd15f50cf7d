package org

import (
	"strings"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BranchType classifies a branch within the logistics network
type BranchType string

const (
	BranchTypeHub     BranchType = "hub"
	BranchTypeDepot   BranchType = "depot"
	BranchTypeStation BranchType = "station"
	BranchTypeOffice  BranchType = "office"
)

// BranchStatus represents the lifecycle status of a branch
type BranchStatus string

const (
	BranchStatusActive   BranchStatus = "active"
	BranchStatusInactive BranchStatus = "inactive"
	BranchStatusClosed   BranchStatus = "closed"
)

// Address is a physical branch address with an optional geo location
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	Location   valueobject.GeoPoint
}

// DayHours describes opening hours for one weekday
type DayHours struct {
	Weekday time.Weekday
	Open    string // "08:00" 24h format
	Close   string // "18:00"
	Closed  bool
}

// BranchResources tracks operational capacity counters
type BranchResources struct {
	Vehicles          int
	StaffCapacity     int
	StorageCapacityM3 float64
}

// BranchMetrics tracks rolling operational figures reported per branch
type BranchMetrics struct {
	MonthlyShipments int64
	OnTimeRate       float64 // 0..1
	UtilizationPct   float64 // 0..100
}

// Branch represents a physical site in the logistics network.
// Branches form a tree via materialized paths (hub -> depot -> station).
type Branch struct {
	shared.BaseAggregateRoot
	Code             string
	Name             string
	Type             BranchType
	ParentID         *uuid.UUID
	Path             string
	Level            int
	Address          Address
	OperationalHours []DayHours
	Resources        BranchResources
	Metrics          BranchMetrics
	ManagerID        *uuid.UUID
	Status           BranchStatus
}

// NewBranch creates a new root branch
func NewBranch(code, name string, branchType BranchType, address Address) (*Branch, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateBranchType(branchType); err != nil {
		return nil, err
	}

	branch := &Branch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              strings.TrimSpace(name),
		Type:              branchType,
		Address:           address,
		Status:            BranchStatusActive,
		Level:             0,
	}
	branch.Path = branch.ID.String()

	return branch, nil
}

// NewChildBranch creates a new branch under a parent
func NewChildBranch(code, name string, branchType BranchType, address Address, parent *Branch) (*Branch, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent branch is required")
	}
	if err := checkDepth(parent.Level); err != nil {
		return nil, err
	}
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateBranchType(branchType); err != nil {
		return nil, err
	}

	branch := &Branch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              strings.TrimSpace(name),
		Type:              branchType,
		Address:           address,
		ParentID:          &parent.ID,
		Level:             parent.Level + 1,
		Status:            BranchStatusActive,
	}
	branch.Path = childPath(parent.Path, branch.ID)

	return branch, nil
}

// Update updates the branch's basic information
func (b *Branch) Update(name string, branchType BranchType) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateBranchType(branchType); err != nil {
		return err
	}

	b.Name = strings.TrimSpace(name)
	b.Type = branchType
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// UpdateAddress replaces the branch address
func (b *Branch) UpdateAddress(address Address) {
	b.Address = address
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// SetOperationalHours replaces the weekly opening hours.
// At most one entry per weekday; times use "HH:MM" 24h format.
func (b *Branch) SetOperationalHours(hours []DayHours) error {
	seen := make(map[time.Weekday]bool, len(hours))
	for _, h := range hours {
		if h.Weekday < time.Sunday || h.Weekday > time.Saturday {
			return shared.NewDomainError("INVALID_HOURS", "Invalid weekday in operational hours")
		}
		if seen[h.Weekday] {
			return shared.NewDomainError("INVALID_HOURS", "Duplicate weekday in operational hours")
		}
		seen[h.Weekday] = true
		if h.Closed {
			continue
		}
		if !validClockTime(h.Open) || !validClockTime(h.Close) {
			return shared.NewDomainError("INVALID_HOURS", "Hours must use HH:MM 24h format")
		}
		if h.Open >= h.Close {
			return shared.NewDomainError("INVALID_HOURS", "Opening time must be before closing time")
		}
	}

	b.OperationalHours = hours
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// UpdateResources replaces the resource counters
func (b *Branch) UpdateResources(resources BranchResources) error {
	if resources.Vehicles < 0 || resources.StaffCapacity < 0 || resources.StorageCapacityM3 < 0 {
		return shared.NewDomainError("INVALID_RESOURCES", "Resource counters cannot be negative")
	}

	b.Resources = resources
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// UpdateMetrics replaces the reported operational metrics
func (b *Branch) UpdateMetrics(metrics BranchMetrics) error {
	if metrics.MonthlyShipments < 0 {
		return shared.NewDomainError("INVALID_METRICS", "Monthly shipments cannot be negative")
	}
	if metrics.OnTimeRate < 0 || metrics.OnTimeRate > 1 {
		return shared.NewDomainError("INVALID_METRICS", "On-time rate must be between 0 and 1")
	}
	if metrics.UtilizationPct < 0 || metrics.UtilizationPct > 100 {
		return shared.NewDomainError("INVALID_METRICS", "Utilization must be between 0 and 100")
	}

	b.Metrics = metrics
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// SetManager assigns the branch manager
func (b *Branch) SetManager(managerID *uuid.UUID) {
	b.ManagerID = managerID
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// ChangeStatus transitions the branch lifecycle. Closed is terminal.
func (b *Branch) ChangeStatus(status BranchStatus) error {
	switch status {
	case BranchStatusActive, BranchStatusInactive, BranchStatusClosed:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown branch status")
	}

	if b.Status == status {
		return shared.NewDomainError("INVALID_STATE", "Branch is already in the requested status")
	}
	if b.Status == BranchStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "A closed branch cannot be reopened")
	}

	b.Status = status
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// MoveTo re-parents the branch. The caller is responsible for checking cycles
// and reconciling descendant paths through the repository.
func (b *Branch) MoveTo(parent *Branch) error {
	if parent == nil {
		b.ParentID = nil
		b.Level = 0
		b.Path = b.ID.String()
	} else {
		if parent.ID == b.ID {
			return shared.NewDomainError("CIRCULAR_REFERENCE", "Branch cannot be its own parent")
		}
		if err := checkDepth(parent.Level); err != nil {
			return err
		}
		b.ParentID = &parent.ID
		b.Level = parent.Level + 1
		b.Path = childPath(parent.Path, b.ID)
	}

	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// IsRoot returns true if this is a root branch
func (b *Branch) IsRoot() bool {
	return b.ParentID == nil
}

// IsAncestorOf returns true if this branch is an ancestor of the given branch
func (b *Branch) IsAncestorOf(other *Branch) bool {
	if other == nil {
		return false
	}
	return isAncestorPath(b.Path, other.Path)
}

// GetAncestorIDs returns the IDs of all ancestor branches, root first
func (b *Branch) GetAncestorIDs() []uuid.UUID {
	return ancestorIDs(b.Path)
}

// IsOperational returns true if the branch can take assignments
func (b *Branch) IsOperational() bool {
	return b.Status == BranchStatusActive
}

// validateBranchType validates the branch type
func validateBranchType(t BranchType) error {
	switch t {
	case BranchTypeHub, BranchTypeDepot, BranchTypeStation, BranchTypeOffice:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Unknown branch type")
	}
}

// validClockTime reports whether s is a valid "HH:MM" 24h clock time
func validClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
