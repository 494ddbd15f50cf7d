package workforce

import (
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeEmployee = "Employee"

// Event type constants
const (
	EventTypeEmployeeCreated         = "EmployeeCreated"
	EventTypeEmployeeUpdated         = "EmployeeUpdated"
	EventTypeEmployeeStatusChanged   = "EmployeeStatusChanged"
	EventTypeEmployeeDocumentAdded   = "EmployeeDocumentAdded"
	EventTypeEmployeeDocumentRemoved = "EmployeeDocumentRemoved"
	EventTypeEmployeeSkillAdded      = "EmployeeSkillAdded"
	EventTypeEmployeeTrainingAdded   = "EmployeeTrainingAdded"
	EventTypeEmployeeContractAdded   = "EmployeeContractAdded"
	EventTypeEmployeeTransferred     = "EmployeeTransferred"
)

// EmployeeCreatedEvent is published when a personnel file is opened
type EmployeeCreatedEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID `json:"employee_id"`
	EmployeeNo string    `json:"employee_no"`
	FullName   string    `json:"full_name"`
	BranchID   uuid.UUID `json:"branch_id"`
	DivisionID uuid.UUID `json:"division_id"`
	PositionID uuid.UUID `json:"position_id"`
}

// NewEmployeeCreatedEvent creates a new EmployeeCreatedEvent
func NewEmployeeCreatedEvent(e *Employee) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeCreated, AggregateTypeEmployee, e.ID),
		EmployeeID:      e.ID,
		EmployeeNo:      e.EmployeeNo,
		FullName:        e.FullName(),
		BranchID:        e.BranchID,
		DivisionID:      e.DivisionID,
		PositionID:      e.PositionID,
	}
}

// EmployeeUpdatedEvent is published when a file section changes
type EmployeeUpdatedEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID `json:"employee_id"`
	Field      string    `json:"field"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
}

// NewEmployeeUpdatedEvent creates a new EmployeeUpdatedEvent
func NewEmployeeUpdatedEvent(e *Employee, field, oldValue, newValue string) *EmployeeUpdatedEvent {
	return &EmployeeUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeUpdated, AggregateTypeEmployee, e.ID),
		EmployeeID:      e.ID,
		Field:           field,
		OldValue:        oldValue,
		NewValue:        newValue,
	}
}

// EmployeeStatusChangedEvent is published on lifecycle transitions
type EmployeeStatusChangedEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID      `json:"employee_id"`
	OldStatus  EmployeeStatus `json:"old_status"`
	NewStatus  EmployeeStatus `json:"new_status"`
	Reason     string         `json:"reason"`
}

// NewEmployeeStatusChangedEvent creates a new EmployeeStatusChangedEvent
func NewEmployeeStatusChangedEvent(e *Employee, oldStatus, newStatus EmployeeStatus, reason string) *EmployeeStatusChangedEvent {
	return &EmployeeStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeStatusChanged, AggregateTypeEmployee, e.ID),
		EmployeeID:      e.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
		Reason:          reason,
	}
}

// EmployeeDocumentAddedEvent is published when a document is attached
type EmployeeDocumentAddedEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID    `json:"employee_id"`
	DocumentID uuid.UUID    `json:"document_id"`
	Title      string       `json:"title"`
	DocType    DocumentType `json:"doc_type"`
}

// NewEmployeeDocumentAddedEvent creates a new EmployeeDocumentAddedEvent
func NewEmployeeDocumentAddedEvent(e *Employee, doc Document) *EmployeeDocumentAddedEvent {
	return &EmployeeDocumentAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeDocumentAdded, AggregateTypeEmployee, e.ID),
		EmployeeID:      e.ID,
		DocumentID:      doc.ID,
		Title:           doc.Title,
		DocType:         doc.Type,
	}
}

// EmployeeDocumentRemovedEvent is published when a document is detached
type EmployeeDocumentRemovedEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID `json:"employee_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Title      string    `json:"title"`
}

// NewEmployeeDocumentRemovedEvent creates a new EmployeeDocumentRemovedEvent
func NewEmployeeDocumentRemovedEvent(e *Employee, doc Document) *EmployeeDocumentRemovedEvent {
	return &EmployeeDocumentRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeDocumentRemoved, AggregateTypeEmployee, e.ID),
		EmployeeID:      e.ID,
		DocumentID:      doc.ID,
		Title:           doc.Title,
	}
}

// EmployeeSkillAddedEvent is published when a skill is recorded
type EmployeeSkillAddedEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID `json:"employee_id"`
	SkillName  string    `json:"skill_name"`
	Level      int       `json:"level"`
}

// NewEmployeeSkillAddedEvent creates a new EmployeeSkillAddedEvent
func NewEmployeeSkillAddedEvent(e *Employee, skill Skill) *EmployeeSkillAddedEvent {
	return &EmployeeSkillAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeSkillAdded, AggregateTypeEmployee, e.ID),
		EmployeeID:      e.ID,
		SkillName:       skill.Name,
		Level:           skill.Level,
	}
}

// EmployeeTrainingAddedEvent is published when a training is recorded
type EmployeeTrainingAddedEvent struct {
	shared.BaseDomainEvent
	EmployeeID   uuid.UUID `json:"employee_id"`
	TrainingName string    `json:"training_name"`
	Provider     string    `json:"provider"`
}

// NewEmployeeTrainingAddedEvent creates a new EmployeeTrainingAddedEvent
func NewEmployeeTrainingAddedEvent(e *Employee, training Training) *EmployeeTrainingAddedEvent {
	return &EmployeeTrainingAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeTrainingAdded, AggregateTypeEmployee, e.ID),
		EmployeeID:      e.ID,
		TrainingName:    training.Name,
		Provider:        training.Provider,
	}
}

// EmployeeContractAddedEvent is published when a contract period is recorded
type EmployeeContractAddedEvent struct {
	shared.BaseDomainEvent
	EmployeeID   uuid.UUID `json:"employee_id"`
	ContractType string    `json:"contract_type"`
}

// NewEmployeeContractAddedEvent creates a new EmployeeContractAddedEvent
func NewEmployeeContractAddedEvent(e *Employee, contract ContractTerm) *EmployeeContractAddedEvent {
	return &EmployeeContractAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeContractAdded, AggregateTypeEmployee, e.ID),
		EmployeeID:      e.ID,
		ContractType:    contract.Type,
	}
}

// EmployeeTransferredEvent is published when assignments change
type EmployeeTransferredEvent struct {
	shared.BaseDomainEvent
	EmployeeID    uuid.UUID `json:"employee_id"`
	OldBranchID   uuid.UUID `json:"old_branch_id"`
	OldDivisionID uuid.UUID `json:"old_division_id"`
	OldPositionID uuid.UUID `json:"old_position_id"`
	NewBranchID   uuid.UUID `json:"new_branch_id"`
	NewDivisionID uuid.UUID `json:"new_division_id"`
	NewPositionID uuid.UUID `json:"new_position_id"`
}

// NewEmployeeTransferredEvent creates a new EmployeeTransferredEvent
func NewEmployeeTransferredEvent(e *Employee, oldBranch, oldDivision, oldPosition uuid.UUID) *EmployeeTransferredEvent {
	return &EmployeeTransferredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeTransferred, AggregateTypeEmployee, e.ID),
		EmployeeID:      e.ID,
		OldBranchID:     oldBranch,
		OldDivisionID:   oldDivision,
		OldPositionID:   oldPosition,
		NewBranchID:     e.BranchID,
		NewDivisionID:   e.DivisionID,
		NewPositionID:   e.PositionID,
	}
}
