package coverage

import (
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// ServiceAreaAssignment links a branch to a service area it serves.
// Area and branch form a unique pair. When several branches serve the
// same area the lowest priority number wins.
type ServiceAreaAssignment struct {
	shared.BaseAggregateRoot
	AreaID   uuid.UUID
	BranchID uuid.UUID
	Priority int
	Active   bool
}

// NewServiceAreaAssignment creates an active assignment
func NewServiceAreaAssignment(areaID, branchID uuid.UUID, priority int) (*ServiceAreaAssignment, error) {
	if areaID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service area is required")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Branch is required")
	}
	if err := validatePriority(priority); err != nil {
		return nil, err
	}

	return &ServiceAreaAssignment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AreaID:            areaID,
		BranchID:          branchID,
		Priority:          priority,
		Active:            true,
	}, nil
}

// SetPriority changes the branch's rank for this area
func (a *ServiceAreaAssignment) SetPriority(priority int) error {
	if err := validatePriority(priority); err != nil {
		return err
	}
	a.Priority = priority
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Activate puts the assignment back into routing decisions
func (a *ServiceAreaAssignment) Activate() {
	a.Active = true
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Deactivate removes the assignment from routing decisions
func (a *ServiceAreaAssignment) Deactivate() {
	a.Active = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// validatePriority validates the assignment priority
func validatePriority(priority int) error {
	if priority < 0 || priority > 1000 {
		return shared.NewDomainError("INVALID_INPUT", "Priority must be between 0 and 1000")
	}
	return nil
}
