package workforce

import (
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// HistoryAction classifies an entry in the employee audit trail
type HistoryAction string

const (
	HistoryActionCreated         HistoryAction = "created"
	HistoryActionUpdated         HistoryAction = "updated"
	HistoryActionStatusChanged   HistoryAction = "status_changed"
	HistoryActionDocumentAdded   HistoryAction = "document_added"
	HistoryActionDocumentRemoved HistoryAction = "document_removed"
	HistoryActionSkillAdded      HistoryAction = "skill_added"
	HistoryActionTrainingAdded   HistoryAction = "training_added"
	HistoryActionContractAdded   HistoryAction = "contract_added"
	HistoryActionTransferred     HistoryAction = "transferred"
)

// IsValid returns true if the action is a known history action
func (a HistoryAction) IsValid() bool {
	switch a {
	case HistoryActionCreated, HistoryActionUpdated, HistoryActionStatusChanged,
		HistoryActionDocumentAdded, HistoryActionDocumentRemoved,
		HistoryActionSkillAdded, HistoryActionTrainingAdded,
		HistoryActionContractAdded, HistoryActionTransferred:
		return true
	}
	return false
}

// HistoryRecord is an immutable entry in the employee audit trail.
// Once created, records cannot be modified or deleted.
type HistoryRecord struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	Action     HistoryAction
	Field      string
	OldValue   string
	NewValue   string
	ActorID    uuid.UUID
	Note       string
	OccurredAt time.Time
}

// NewHistoryRecord creates an audit trail entry
func NewHistoryRecord(employeeID uuid.UUID, action HistoryAction, field, oldValue, newValue string, actorID uuid.UUID, note string) (*HistoryRecord, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "History record requires an employee")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown history action")
	}

	return &HistoryRecord{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Action:     action,
		Field:      field,
		OldValue:   oldValue,
		NewValue:   newValue,
		ActorID:    actorID,
		Note:       note,
		OccurredAt: time.Now(),
	}, nil
}
