package workforce

import (
	"fmt"
	"strings"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// EmployeeStatus represents the employment lifecycle status
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusOnLeave    EmployeeStatus = "on_leave"
	EmployeeStatusSuspended  EmployeeStatus = "suspended"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
)

// EmploymentType classifies the employment contract
type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "full_time"
	EmploymentTypePartTime EmploymentType = "part_time"
	EmploymentTypeContract EmploymentType = "contract"
)

// Gender as recorded in the personnel file
type Gender string

const (
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
	GenderUnspecified Gender = "unspecified"
)

// Address is a postal address on the employee file
type Address struct {
	Label      string // home, mailing, ...
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// ContactType classifies a contact entry
type ContactType string

const (
	ContactTypePhone     ContactType = "phone"
	ContactTypeEmail     ContactType = "email"
	ContactTypeEmergency ContactType = "emergency"
)

// Contact is a reachable contact entry on the employee file
type Contact struct {
	Type    ContactType
	Value   string
	Primary bool
}

// DocumentType classifies an uploaded employee document
type DocumentType string

const (
	DocumentTypeContract    DocumentType = "contract"
	DocumentTypeIDCard      DocumentType = "id_card"
	DocumentTypeCertificate DocumentType = "certificate"
	DocumentTypeOther       DocumentType = "other"
)

// Document is metadata for a file stored in object storage
type Document struct {
	ID          uuid.UUID
	Type        DocumentType
	Title       string
	ObjectKey   string
	ContentType string
	SizeBytes   int64
	UploadedBy  uuid.UUID
	UploadedAt  time.Time
}

// Skill is a rated competency on the employee file
type Skill struct {
	Name        string
	Level       int // 1..5
	CertifiedAt *time.Time
}

// Training is a completed training record
type Training struct {
	Name        string
	Provider    string
	CompletedAt time.Time
	ExpiresAt   *time.Time
}

// ContractTerm is an employment contract period
type ContractTerm struct {
	Type      string // permanent, fixed_term, probation
	StartDate time.Time
	EndDate   *time.Time
	SignedAt  time.Time
}

// Employee is the personnel file aggregate. All mutations raise domain
// events which the application layer folds into the append-only history.
type Employee struct {
	shared.BaseAggregateRoot
	EmployeeNo      string // immutable after creation, e.g. EMP-000123
	FirstName       string
	LastName        string
	NationalID      string
	DateOfBirth     time.Time
	Gender          Gender
	Addresses       []Address
	Contacts        []Contact
	BranchID        uuid.UUID
	DivisionID      uuid.UUID
	PositionID      uuid.UUID
	HireDate        time.Time
	EmploymentType  EmploymentType
	Salary          valueobject.Money
	Documents       []Document
	Skills          []Skill
	Trainings       []Training
	Contracts       []ContractTerm
	Status          EmployeeStatus
	TerminationDate *time.Time
}

// NewEmployeeInput carries the required fields for hiring
type NewEmployeeInput struct {
	EmployeeNo     string
	FirstName      string
	LastName       string
	NationalID     string
	DateOfBirth    time.Time
	Gender         Gender
	BranchID       uuid.UUID
	DivisionID     uuid.UUID
	PositionID     uuid.UUID
	HireDate       time.Time
	EmploymentType EmploymentType
	Salary         valueobject.Money
}

// NewEmployee creates an employee file
func NewEmployee(in NewEmployeeInput) (*Employee, error) {
	if in.EmployeeNo == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee number is required")
	}
	if err := validatePersonName(in.FirstName, "First name"); err != nil {
		return nil, err
	}
	if err := validatePersonName(in.LastName, "Last name"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.NationalID) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "National ID is required")
	}
	if err := validateEmploymentType(in.EmploymentType); err != nil {
		return nil, err
	}
	if in.BranchID == uuid.Nil || in.DivisionID == uuid.Nil || in.PositionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Branch, division and position are required")
	}
	if in.HireDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Hire date is required")
	}
	if in.Salary.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Salary cannot be negative")
	}
	if in.Gender == "" {
		in.Gender = GenderUnspecified
	}

	employee := &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeNo:        strings.ToUpper(strings.TrimSpace(in.EmployeeNo)),
		FirstName:         strings.TrimSpace(in.FirstName),
		LastName:          strings.TrimSpace(in.LastName),
		NationalID:        strings.TrimSpace(in.NationalID),
		DateOfBirth:       in.DateOfBirth,
		Gender:            in.Gender,
		BranchID:          in.BranchID,
		DivisionID:        in.DivisionID,
		PositionID:        in.PositionID,
		HireDate:          in.HireDate,
		EmploymentType:    in.EmploymentType,
		Salary:            in.Salary,
		Status:            EmployeeStatusActive,
	}

	employee.AddDomainEvent(NewEmployeeCreatedEvent(employee))

	return employee, nil
}

// FullName returns the display name
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// UpdatePersonal updates the personal section of the file
func (e *Employee) UpdatePersonal(firstName, lastName string, dateOfBirth time.Time, gender Gender, addresses []Address, contacts []Contact) error {
	if err := validatePersonName(firstName, "First name"); err != nil {
		return err
	}
	if err := validatePersonName(lastName, "Last name"); err != nil {
		return err
	}
	for _, c := range contacts {
		if err := validateContact(c); err != nil {
			return err
		}
	}

	old := e.FullName()
	e.FirstName = strings.TrimSpace(firstName)
	e.LastName = strings.TrimSpace(lastName)
	e.DateOfBirth = dateOfBirth
	if gender != "" {
		e.Gender = gender
	}
	e.Addresses = addresses
	e.Contacts = contacts
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeUpdatedEvent(e, "personal", old, e.FullName()))

	return nil
}

// UpdateSalary adjusts the salary on file
func (e *Employee) UpdateSalary(salary valueobject.Money) error {
	if salary.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Salary cannot be negative")
	}

	old := e.Salary
	e.Salary = salary
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeUpdatedEvent(e, "salary", old.String(), salary.String()))

	return nil
}

// AddDocument attaches stored document metadata to the file
func (e *Employee) AddDocument(doc Document) error {
	if doc.Title == "" {
		return shared.NewDomainError("INVALID_INPUT", "Document title is required")
	}
	if doc.ObjectKey == "" {
		return shared.NewDomainError("INVALID_INPUT", "Document object key is required")
	}
	switch doc.Type {
	case DocumentTypeContract, DocumentTypeIDCard, DocumentTypeCertificate, DocumentTypeOther:
	default:
		return shared.NewDomainError("INVALID_INPUT", "Unknown document type")
	}

	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now()
	}

	e.Documents = append(e.Documents, doc)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeDocumentAddedEvent(e, doc))

	return nil
}

// RemoveDocument detaches a document from the file. The stored object is
// cleaned up by the application layer.
func (e *Employee) RemoveDocument(documentID uuid.UUID) (Document, error) {
	for i, doc := range e.Documents {
		if doc.ID == documentID {
			e.Documents = append(e.Documents[:i], e.Documents[i+1:]...)
			e.UpdatedAt = time.Now()
			e.IncrementVersion()

			e.AddDomainEvent(NewEmployeeDocumentRemovedEvent(e, doc))
			return doc, nil
		}
	}
	return Document{}, shared.NewDomainError("NOT_FOUND", "Document not found on employee file")
}

// FindDocument returns the document metadata with the given ID
func (e *Employee) FindDocument(documentID uuid.UUID) (Document, bool) {
	for _, doc := range e.Documents {
		if doc.ID == documentID {
			return doc, true
		}
	}
	return Document{}, false
}

// AddSkill records a rated skill
func (e *Employee) AddSkill(skill Skill) error {
	if strings.TrimSpace(skill.Name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Skill name is required")
	}
	if skill.Level < 1 || skill.Level > 5 {
		return shared.NewDomainError("INVALID_INPUT", "Skill level must be between 1 and 5")
	}
	for _, s := range e.Skills {
		if strings.EqualFold(s.Name, skill.Name) {
			return shared.NewDomainError("ALREADY_EXISTS", "Skill is already on the employee file")
		}
	}

	e.Skills = append(e.Skills, skill)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeSkillAddedEvent(e, skill))

	return nil
}

// AddTraining records a completed training
func (e *Employee) AddTraining(training Training) error {
	if strings.TrimSpace(training.Name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Training name is required")
	}
	if training.CompletedAt.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Training completion date is required")
	}
	if training.ExpiresAt != nil && training.ExpiresAt.Before(training.CompletedAt) {
		return shared.NewDomainError("INVALID_INPUT", "Training expiry cannot precede completion")
	}

	e.Trainings = append(e.Trainings, training)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeTrainingAddedEvent(e, training))

	return nil
}

// AddContract records an employment contract period
func (e *Employee) AddContract(contract ContractTerm) error {
	if contract.StartDate.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Contract start date is required")
	}
	if contract.EndDate != nil && contract.EndDate.Before(contract.StartDate) {
		return shared.NewDomainError("INVALID_INPUT", "Contract end cannot precede start")
	}
	if contract.SignedAt.IsZero() {
		contract.SignedAt = time.Now()
	}

	e.Contracts = append(e.Contracts, contract)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeContractAddedEvent(e, contract))

	return nil
}

// ChangeStatus transitions the employment status. Terminated is terminal and
// stamps the termination date.
func (e *Employee) ChangeStatus(status EmployeeStatus, reason string) error {
	if !validStatusTransition(e.Status, status) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change employee status from %s to %s", e.Status, status))
	}

	old := e.Status
	e.Status = status
	if status == EmployeeStatusTerminated {
		now := time.Now()
		e.TerminationDate = &now
	}
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeStatusChangedEvent(e, old, status, reason))

	return nil
}

// Transfer moves the employee to a new branch/division/position. Nil UUIDs
// keep the current assignment.
func (e *Employee) Transfer(branchID, divisionID, positionID uuid.UUID) error {
	if e.Status == EmployeeStatusTerminated {
		return shared.NewDomainError("INVALID_STATE", "Terminated employees cannot be transferred")
	}
	if branchID == uuid.Nil && divisionID == uuid.Nil && positionID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Transfer requires at least one new assignment")
	}

	oldBranch, oldDivision, oldPosition := e.BranchID, e.DivisionID, e.PositionID
	if branchID != uuid.Nil {
		e.BranchID = branchID
	}
	if divisionID != uuid.Nil {
		e.DivisionID = divisionID
	}
	if positionID != uuid.Nil {
		e.PositionID = positionID
	}
	if oldBranch == e.BranchID && oldDivision == e.DivisionID && oldPosition == e.PositionID {
		return shared.NewDomainError("INVALID_INPUT", "Transfer does not change any assignment")
	}

	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeTransferredEvent(e, oldBranch, oldDivision, oldPosition))

	return nil
}

// IsActive returns true while the employee is on active duty
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

// IsTerminated returns true once the employee has left
func (e *Employee) IsTerminated() bool {
	return e.Status == EmployeeStatusTerminated
}

// validStatusTransition encodes the legal lifecycle moves: active pairs with
// on_leave and suspended, anything may terminate, terminated is final.
func validStatusTransition(from, to EmployeeStatus) bool {
	if from == to {
		return false
	}
	if from == EmployeeStatusTerminated {
		return false
	}
	if to == EmployeeStatusTerminated {
		return true
	}
	switch from {
	case EmployeeStatusActive:
		return to == EmployeeStatusOnLeave || to == EmployeeStatusSuspended
	case EmployeeStatusOnLeave, EmployeeStatusSuspended:
		return to == EmployeeStatusActive
	}
	return false
}

// validatePersonName validates a name component
func validatePersonName(name, label string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", label+" is required")
	}
	if len(name) > 80 {
		return shared.NewDomainError("INVALID_INPUT", label+" cannot exceed 80 characters")
	}
	return nil
}

// validateContact validates a contact entry
func validateContact(c Contact) error {
	switch c.Type {
	case ContactTypePhone, ContactTypeEmail, ContactTypeEmergency:
	default:
		return shared.NewDomainError("INVALID_INPUT", "Unknown contact type")
	}
	if strings.TrimSpace(c.Value) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Contact value is required")
	}
	if c.Type == ContactTypeEmail && !strings.Contains(c.Value, "@") {
		return shared.NewDomainError("INVALID_INPUT", "Contact email is not valid")
	}
	return nil
}

// validateEmploymentType validates the employment type
func validateEmploymentType(t EmploymentType) error {
	switch t {
	case EmploymentTypeFullTime, EmploymentTypePartTime, EmploymentTypeContract:
		return nil
	default:
		return shared.NewDomainError("INVALID_INPUT", "Unknown employment type")
	}
}
