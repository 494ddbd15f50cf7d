package workforce

import (
	"time"

	"github.com/google/uuid"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
	"github.com/shopspring/decimal"
)

// AddressInput is a postal address in request payloads
type AddressInput struct {
	Label      string `json:"label" binding:"max=50"`
	Street     string `json:"street" binding:"max=200"`
	City       string `json:"city" binding:"max=100"`
	State      string `json:"state" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	Country    string `json:"country" binding:"max=100"`
}

// ContactInput is a contact entry in request payloads
type ContactInput struct {
	Type    string `json:"type" binding:"required,oneof=phone email emergency"`
	Value   string `json:"value" binding:"required,max=200"`
	Primary bool   `json:"primary"`
}

// CreateEmployeeRequest opens a new personnel file
type CreateEmployeeRequest struct {
	FirstName      string          `json:"first_name" binding:"required,min=1,max=100"`
	LastName       string          `json:"last_name" binding:"required,min=1,max=100"`
	NationalID     string          `json:"national_id" binding:"required,min=4,max=50"`
	DateOfBirth    time.Time       `json:"date_of_birth" binding:"required"`
	Gender         string          `json:"gender" binding:"omitempty,oneof=female male unspecified"`
	Addresses      []AddressInput  `json:"addresses"`
	Contacts       []ContactInput  `json:"contacts"`
	BranchID       uuid.UUID       `json:"branch_id" binding:"required"`
	DivisionID     uuid.UUID       `json:"division_id" binding:"required"`
	PositionID     uuid.UUID       `json:"position_id" binding:"required"`
	HireDate       time.Time       `json:"hire_date" binding:"required"`
	EmploymentType string          `json:"employment_type" binding:"required,oneof=full_time part_time contract"`
	Salary         decimal.Decimal `json:"salary"`
	Currency       string          `json:"currency" binding:"omitempty,len=3"`
	ActorID        uuid.UUID       `json:"-"`
}

// UpdateEmployeeRequest updates the personal section of the file
type UpdateEmployeeRequest struct {
	FirstName   string         `json:"first_name" binding:"required,min=1,max=100"`
	LastName    string         `json:"last_name" binding:"required,min=1,max=100"`
	DateOfBirth time.Time      `json:"date_of_birth" binding:"required"`
	Gender      string         `json:"gender" binding:"omitempty,oneof=female male unspecified"`
	Addresses   []AddressInput `json:"addresses"`
	Contacts    []ContactInput `json:"contacts"`
	Note        string         `json:"note" binding:"max=500"`
	ActorID     uuid.UUID      `json:"-"`
}

// UpdateSalaryRequest adjusts the salary on file
type UpdateSalaryRequest struct {
	Salary   decimal.Decimal `json:"salary"`
	Currency string          `json:"currency" binding:"omitempty,len=3"`
	Note     string          `json:"note" binding:"max=500"`
	ActorID  uuid.UUID       `json:"-"`
}

// AddDocumentRequest attaches document metadata and requests an upload slot
type AddDocumentRequest struct {
	Type        string    `json:"type" binding:"required,oneof=contract id_card certificate other"`
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	FileName    string    `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string    `json:"content_type" binding:"required"`
	SizeBytes   int64     `json:"size_bytes" binding:"min=0"`
	ActorID     uuid.UUID `json:"-"`
}

// AddSkillRequest records a rated competency
type AddSkillRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Level       int        `json:"level" binding:"required,min=1,max=5"`
	CertifiedAt *time.Time `json:"certified_at"`
	ActorID     uuid.UUID  `json:"-"`
}

// AddTrainingRequest records a completed training
type AddTrainingRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	Provider    string     `json:"provider" binding:"max=200"`
	CompletedAt time.Time  `json:"completed_at" binding:"required"`
	ExpiresAt   *time.Time `json:"expires_at"`
	ActorID     uuid.UUID  `json:"-"`
}

// AddContractRequest records an employment contract period
type AddContractRequest struct {
	Type      string     `json:"type" binding:"required,oneof=permanent fixed_term probation"`
	StartDate time.Time  `json:"start_date" binding:"required"`
	EndDate   *time.Time `json:"end_date"`
	SignedAt  time.Time  `json:"signed_at" binding:"required"`
	ActorID   uuid.UUID  `json:"-"`
}

// ChangeEmployeeStatusRequest transitions the employment status
type ChangeEmployeeStatusRequest struct {
	Status  string    `json:"status" binding:"required,oneof=active on_leave suspended terminated"`
	Reason  string    `json:"reason" binding:"max=500"`
	ActorID uuid.UUID `json:"-"`
}

// TransferEmployeeRequest moves the employee to new assignments. Omitted
// targets keep the current assignment.
type TransferEmployeeRequest struct {
	BranchID   *uuid.UUID `json:"branch_id"`
	DivisionID *uuid.UUID `json:"division_id"`
	PositionID *uuid.UUID `json:"position_id"`
	Note       string     `json:"note" binding:"max=500"`
	ActorID    uuid.UUID  `json:"-"`
}

// ListEmployeesFilter carries list filters for employees
type ListEmployeesFilter struct {
	Search         string     `form:"search"`
	BranchID       *uuid.UUID `form:"branch_id"`
	DivisionID     *uuid.UUID `form:"division_id"`
	PositionID     *uuid.UUID `form:"position_id"`
	Status         string     `form:"status" binding:"omitempty,oneof=active on_leave suspended terminated"`
	EmploymentType string     `form:"employment_type" binding:"omitempty,oneof=full_time part_time contract"`
	Page           int        `form:"page" binding:"omitempty,min=1"`
	PageSize       int        `form:"pageSize" binding:"omitempty,min=1,max=100"`
	OrderBy        string     `form:"sortBy"`
	OrderDir       string     `form:"sortDir" binding:"omitempty,oneof=asc desc"`
}

// ListHistoryFilter carries filters for the audit trail
type ListHistoryFilter struct {
	Action   string `form:"action" binding:"omitempty,oneof=created updated status_changed document_added document_removed skill_added training_added contract_added transferred"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// AddressResponse is a postal address in API responses
type AddressResponse struct {
	Label      string `json:"label,omitempty"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// ContactResponse is a contact entry in API responses
type ContactResponse struct {
	Type    string `json:"type"`
	Value   string `json:"value"`
	Primary bool   `json:"primary"`
}

// DocumentResponse is document metadata in API responses
type DocumentResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedBy  uuid.UUID `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// SkillResponse is a rated competency in API responses
type SkillResponse struct {
	Name        string     `json:"name"`
	Level       int        `json:"level"`
	CertifiedAt *time.Time `json:"certified_at,omitempty"`
}

// TrainingResponse is a training record in API responses
type TrainingResponse struct {
	Name        string     `json:"name"`
	Provider    string     `json:"provider,omitempty"`
	CompletedAt time.Time  `json:"completed_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// ContractResponse is a contract period in API responses
type ContractResponse struct {
	Type      string     `json:"type"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	SignedAt  time.Time  `json:"signed_at"`
}

// EmployeeResponse is the personnel file in API responses
type EmployeeResponse struct {
	ID              uuid.UUID          `json:"id"`
	EmployeeNo      string             `json:"employee_no"`
	FirstName       string             `json:"first_name"`
	LastName        string             `json:"last_name"`
	NationalID      string             `json:"national_id"`
	DateOfBirth     time.Time          `json:"date_of_birth"`
	Gender          string             `json:"gender"`
	Addresses       []AddressResponse  `json:"addresses,omitempty"`
	Contacts        []ContactResponse  `json:"contacts,omitempty"`
	BranchID        uuid.UUID          `json:"branch_id"`
	DivisionID      uuid.UUID          `json:"division_id"`
	PositionID      uuid.UUID          `json:"position_id"`
	HireDate        time.Time          `json:"hire_date"`
	EmploymentType  string             `json:"employment_type"`
	Salary          decimal.Decimal    `json:"salary"`
	Currency        string             `json:"currency"`
	Documents       []DocumentResponse `json:"documents,omitempty"`
	Skills          []SkillResponse    `json:"skills,omitempty"`
	Trainings       []TrainingResponse `json:"trainings,omitempty"`
	Contracts       []ContractResponse `json:"contracts,omitempty"`
	Status          string             `json:"status"`
	TerminationDate *time.Time         `json:"termination_date,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// AddDocumentResponse returns the stored metadata plus a presigned upload URL
type AddDocumentResponse struct {
	Document  DocumentResponse `json:"document"`
	UploadURL string           `json:"upload_url"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// DocumentURLResponse is a presigned download link
type DocumentURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HistoryResponse is an audit trail entry in API responses
type HistoryResponse struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Action     string    `json:"action"`
	Field      string    `json:"field,omitempty"`
	OldValue   string    `json:"old_value,omitempty"`
	NewValue   string    `json:"new_value,omitempty"`
	ActorID    uuid.UUID `json:"actor_id"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StatsResponse aggregates headcount figures
type StatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	ByBranch map[string]int64 `json:"by_branch"`
}

// ToEmployeeResponse maps the aggregate to its API representation
func ToEmployeeResponse(e *workforce.Employee) *EmployeeResponse {
	resp := &EmployeeResponse{
		ID:              e.ID,
		EmployeeNo:      e.EmployeeNo,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		NationalID:      e.NationalID,
		DateOfBirth:     e.DateOfBirth,
		Gender:          string(e.Gender),
		BranchID:        e.BranchID,
		DivisionID:      e.DivisionID,
		PositionID:      e.PositionID,
		HireDate:        e.HireDate,
		EmploymentType:  string(e.EmploymentType),
		Salary:          e.Salary.Amount(),
		Currency:        string(e.Salary.Currency()),
		Status:          string(e.Status),
		TerminationDate: e.TerminationDate,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	for _, a := range e.Addresses {
		resp.Addresses = append(resp.Addresses, AddressResponse{
			Label: a.Label, Street: a.Street, City: a.City,
			State: a.State, PostalCode: a.PostalCode, Country: a.Country,
		})
	}
	for _, c := range e.Contacts {
		resp.Contacts = append(resp.Contacts, ContactResponse{
			Type: string(c.Type), Value: c.Value, Primary: c.Primary,
		})
	}
	for _, d := range e.Documents {
		resp.Documents = append(resp.Documents, toDocumentResponse(d))
	}
	for _, s := range e.Skills {
		resp.Skills = append(resp.Skills, SkillResponse{
			Name: s.Name, Level: s.Level, CertifiedAt: s.CertifiedAt,
		})
	}
	for _, tr := range e.Trainings {
		resp.Trainings = append(resp.Trainings, TrainingResponse{
			Name: tr.Name, Provider: tr.Provider, CompletedAt: tr.CompletedAt, ExpiresAt: tr.ExpiresAt,
		})
	}
	for _, c := range e.Contracts {
		resp.Contracts = append(resp.Contracts, ContractResponse{
			Type: c.Type, StartDate: c.StartDate, EndDate: c.EndDate, SignedAt: c.SignedAt,
		})
	}
	return resp
}

func toDocumentResponse(d workforce.Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		Type:        string(d.Type),
		Title:       d.Title,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		UploadedBy:  d.UploadedBy,
		UploadedAt:  d.UploadedAt,
	}
}

// ToHistoryResponse maps an audit trail entry to its API representation
func ToHistoryResponse(r *workforce.HistoryRecord) *HistoryResponse {
	return &HistoryResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Action:     string(r.Action),
		Field:      r.Field,
		OldValue:   r.OldValue,
		NewValue:   r.NewValue,
		ActorID:    r.ActorID,
		Note:       r.Note,
		OccurredAt: r.OccurredAt,
	}
}

func toAddresses(inputs []AddressInput) []workforce.Address {
	if len(inputs) == 0 {
		return nil
	}
	addresses := make([]workforce.Address, len(inputs))
	for i, a := range inputs {
		addresses[i] = workforce.Address{
			Label: a.Label, Street: a.Street, City: a.City,
			State: a.State, PostalCode: a.PostalCode, Country: a.Country,
		}
	}
	return addresses
}

func toContacts(inputs []ContactInput) []workforce.Contact {
	if len(inputs) == 0 {
		return nil
	}
	contacts := make([]workforce.Contact, len(inputs))
	for i, c := range inputs {
		contacts[i] = workforce.Contact{
			Type: workforce.ContactType(c.Type), Value: c.Value, Primary: c.Primary,
		}
	}
	return contacts
}

func toSalary(amount decimal.Decimal, currency string) (valueobject.Money, error) {
	cur := valueobject.Currency(currency)
	if currency == "" {
		cur = valueobject.DefaultCurrency
	}
	return valueobject.NewMoney(amount, cur)
}
