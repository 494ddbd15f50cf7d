package org

import (
	"strings"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PositionStatus represents the hiring status of a position
type PositionStatus string

const (
	PositionStatusOpen   PositionStatus = "open"
	PositionStatusFrozen PositionStatus = "frozen"
	PositionStatusClosed PositionStatus = "closed"
)

// CompensationBand is the salary range attached to a position
type CompensationBand struct {
	MinSalary valueobject.Money
	MaxSalary valueobject.Money
}

// Headcount tracks authorized versus filled seats on a position
type Headcount struct {
	Authorized int
	Filled     int
}

// Position represents a role in the org chart. Positions form a reporting
// tree via ReportsToID, mirrored in a materialized path for subtree queries.
type Position struct {
	shared.BaseAggregateRoot
	Code         string
	Title        string
	DivisionID   uuid.UUID
	ReportsToID  *uuid.UUID
	Path         string
	Level        int
	Grade        int
	Compensation CompensationBand
	Requirements []string
	Headcount    Headcount
	Status       PositionStatus
}

// NewPosition creates a new top-level position (reports to nobody)
func NewPosition(code, title string, divisionID uuid.UUID, grade int) (*Position, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validatePositionTitle(title); err != nil {
		return nil, err
	}
	if err := validateGrade(grade); err != nil {
		return nil, err
	}
	if divisionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Division is required")
	}

	position := &Position{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Title:             strings.TrimSpace(title),
		DivisionID:        divisionID,
		Grade:             grade,
		Status:            PositionStatusOpen,
		Level:             0,
	}
	position.Path = position.ID.String()

	return position, nil
}

// NewReportingPosition creates a position reporting to an existing one
func NewReportingPosition(code, title string, divisionID uuid.UUID, grade int, reportsTo *Position) (*Position, error) {
	if reportsTo == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Reporting position is required")
	}
	if err := checkDepth(reportsTo.Level); err != nil {
		return nil, err
	}

	position, err := NewPosition(code, title, divisionID, grade)
	if err != nil {
		return nil, err
	}

	position.ReportsToID = &reportsTo.ID
	position.Level = reportsTo.Level + 1
	position.Path = childPath(reportsTo.Path, position.ID)

	return position, nil
}

// Update updates the position's basic information
func (p *Position) Update(title string, grade int, requirements []string) error {
	if err := validatePositionTitle(title); err != nil {
		return err
	}
	if err := validateGrade(grade); err != nil {
		return err
	}

	p.Title = strings.TrimSpace(title)
	p.Grade = grade
	p.Requirements = requirements
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCompensation sets the salary band. Min must not exceed max and both
// must share a currency.
func (p *Position) SetCompensation(band CompensationBand) error {
	if band.MinSalary.Currency() != band.MaxSalary.Currency() {
		return shared.NewDomainError("INVALID_COMPENSATION", "Salary band must use a single currency")
	}
	if band.MinSalary.IsNegative() {
		return shared.NewDomainError("INVALID_COMPENSATION", "Minimum salary cannot be negative")
	}
	greater, err := band.MinSalary.GreaterThan(band.MaxSalary)
	if err != nil {
		return shared.NewDomainError("INVALID_COMPENSATION", err.Error())
	}
	if greater {
		return shared.NewDomainError("INVALID_COMPENSATION", "Minimum salary cannot exceed maximum salary")
	}

	p.Compensation = band
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetHeadcount sets authorized seats. Filled seats are maintained by
// employee assignment and cannot be set directly above authorized.
func (p *Position) SetHeadcount(authorized int) error {
	if authorized < 0 {
		return shared.NewDomainError("INVALID_HEADCOUNT", "Authorized headcount cannot be negative")
	}
	if authorized < p.Headcount.Filled {
		return shared.NewDomainError("INVALID_HEADCOUNT", "Authorized headcount cannot fall below filled seats")
	}

	p.Headcount.Authorized = authorized
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// FillSeat increments the filled headcount when an employee is assigned
func (p *Position) FillSeat() error {
	if p.Status != PositionStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Position is not open for assignment")
	}
	if p.Headcount.Authorized > 0 && p.Headcount.Filled >= p.Headcount.Authorized {
		return shared.NewDomainError("HEADCOUNT_EXCEEDED", "Position has no authorized seats left")
	}

	p.Headcount.Filled++
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ReleaseSeat decrements the filled headcount when an employee leaves
func (p *Position) ReleaseSeat() {
	if p.Headcount.Filled > 0 {
		p.Headcount.Filled--
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// ChangeStatus transitions the position hiring status
func (p *Position) ChangeStatus(status PositionStatus) error {
	switch status {
	case PositionStatusOpen, PositionStatusFrozen, PositionStatusClosed:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown position status")
	}
	if p.Status == status {
		return shared.NewDomainError("INVALID_STATE", "Position is already in the requested status")
	}
	if status == PositionStatusClosed && p.Headcount.Filled > 0 {
		return shared.NewDomainError("IN_USE", "Position with filled seats cannot be closed")
	}

	p.Status = status
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// MoveTo re-points the reporting line. The caller is responsible for checking
// cycles and reconciling descendant paths through the repository.
func (p *Position) MoveTo(reportsTo *Position) error {
	if reportsTo == nil {
		p.ReportsToID = nil
		p.Level = 0
		p.Path = p.ID.String()
	} else {
		if reportsTo.ID == p.ID {
			return shared.NewDomainError("CIRCULAR_REFERENCE", "Position cannot report to itself")
		}
		if err := checkDepth(reportsTo.Level); err != nil {
			return err
		}
		p.ReportsToID = &reportsTo.ID
		p.Level = reportsTo.Level + 1
		p.Path = childPath(reportsTo.Path, p.ID)
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsAncestorOf returns true if this position is above the given position in
// the reporting tree
func (p *Position) IsAncestorOf(other *Position) bool {
	if other == nil {
		return false
	}
	return isAncestorPath(p.Path, other.Path)
}

// GetAncestorIDs returns the reporting chain IDs, top first
func (p *Position) GetAncestorIDs() []uuid.UUID {
	return ancestorIDs(p.Path)
}

// IsOpen returns true if the position accepts assignments
func (p *Position) IsOpen() bool {
	return p.Status == PositionStatusOpen
}

// validatePositionTitle validates the position title
func validatePositionTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Position title cannot be empty")
	}
	if len(title) > 100 {
		return shared.NewDomainError("INVALID_TITLE", "Position title cannot exceed 100 characters")
	}
	return nil
}

// validateGrade validates the position grade
func validateGrade(grade int) error {
	if grade < 1 || grade > 20 {
		return shared.NewDomainError("INVALID_GRADE", "Grade must be between 1 and 20")
	}
	return nil
}
