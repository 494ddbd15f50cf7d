package org

import (
	"strings"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// DivisionStatus represents the status of a division
type DivisionStatus string

const (
	DivisionStatusActive   DivisionStatus = "active"
	DivisionStatusInactive DivisionStatus = "inactive"
)

// Division represents an organizational unit in the company org chart.
// Divisions form a tree via materialized paths.
type Division struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	Description string
	ParentID    *uuid.UUID
	Path        string
	Level       int
	BranchID    *uuid.UUID // Home branch, if the division is site-bound
	ManagerID   *uuid.UUID
	Budget      valueobject.Money // Annual budget
	Status      DivisionStatus
}

// NewDivision creates a new root division
func NewDivision(code, name string) (*Division, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	division := &Division{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              strings.TrimSpace(name),
		Budget:            valueobject.Zero(valueobject.DefaultCurrency),
		Status:            DivisionStatusActive,
		Level:             0,
	}
	division.Path = division.ID.String()

	return division, nil
}

// NewChildDivision creates a new division under a parent
func NewChildDivision(code, name string, parent *Division) (*Division, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent division is required")
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

	division := &Division{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              strings.TrimSpace(name),
		ParentID:          &parent.ID,
		Level:             parent.Level + 1,
		Budget:            valueobject.Zero(valueobject.DefaultCurrency),
		Status:            DivisionStatusActive,
	}
	division.Path = childPath(parent.Path, division.ID)

	return division, nil
}

// Update updates the division's basic information
func (d *Division) Update(name, description string) error {
	if err := validateName(name); err != nil {
		return err
	}

	d.Name = strings.TrimSpace(name)
	d.Description = description
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetBudget sets the division's annual budget
func (d *Division) SetBudget(budget valueobject.Money) error {
	if budget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}

	d.Budget = budget
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetBranch binds the division to a home branch (nil unbinds)
func (d *Division) SetBranch(branchID *uuid.UUID) {
	d.BranchID = branchID
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// SetManager assigns the division manager
func (d *Division) SetManager(managerID *uuid.UUID) {
	d.ManagerID = managerID
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// Activate activates the division
func (d *Division) Activate() error {
	if d.Status == DivisionStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Division is already active")
	}

	d.Status = DivisionStatusActive
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// Deactivate deactivates the division
func (d *Division) Deactivate() error {
	if d.Status == DivisionStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Division is already inactive")
	}

	d.Status = DivisionStatusInactive
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// MoveTo re-parents the division. The caller is responsible for checking
// cycles and reconciling descendant paths through the repository.
func (d *Division) MoveTo(parent *Division) error {
	if parent == nil {
		d.ParentID = nil
		d.Level = 0
		d.Path = d.ID.String()
	} else {
		if parent.ID == d.ID {
			return shared.NewDomainError("CIRCULAR_REFERENCE", "Division cannot be its own parent")
		}
		if err := checkDepth(parent.Level); err != nil {
			return err
		}
		d.ParentID = &parent.ID
		d.Level = parent.Level + 1
		d.Path = childPath(parent.Path, d.ID)
	}

	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// IsRoot returns true if this is a root division
func (d *Division) IsRoot() bool {
	return d.ParentID == nil
}

// IsActive returns true if the division is active
func (d *Division) IsActive() bool {
	return d.Status == DivisionStatusActive
}

// IsAncestorOf returns true if this division is an ancestor of the given division
func (d *Division) IsAncestorOf(other *Division) bool {
	if other == nil {
		return false
	}
	return isAncestorPath(d.Path, other.Path)
}

// GetAncestorIDs returns the IDs of all ancestor divisions, root first
func (d *Division) GetAncestorIDs() []uuid.UUID {
	return ancestorIDs(d.Path)
}
