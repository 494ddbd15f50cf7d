package docgen

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logistics-erp/hrm/internal/domain/document"
)

// RenderParams carries the inputs for assembling one document
type RenderParams struct {
	EmployeeID uuid.UUID
	// Params holds per-type extras: "month" (YYYY-MM) for attendance
	// sheets, "leave_request_id" for leave forms, "issued_by" for
	// certificates.
	Params map[string]string
}

// Param returns the named extra parameter, or "" when absent
func (p RenderParams) Param(name string) string {
	if p.Params == nil {
		return ""
	}
	return p.Params[name]
}

// DataProvider assembles template data for one document type
type DataProvider interface {
	DocumentType() document.DocumentType
	GetData(ctx context.Context, params RenderParams) (*DocumentData, error)
}

// DocumentData is the root object bound to every template
type DocumentData struct {
	Type        document.DocumentType `json:"type"`
	Title       string                `json:"title"`
	GeneratedAt time.Time             `json:"generatedAt"`

	Employee EmployeeInfo `json:"employee"`

	// Document holds the type-specific payload: CertificateData,
	// LeaveFormData or AttendanceSheetData.
	Document any `json:"document"`
}

// NewDocumentData creates the common envelope
func NewDocumentData(docType document.DocumentType, title string) *DocumentData {
	return &DocumentData{
		Type:        docType,
		Title:       title,
		GeneratedAt: time.Now(),
	}
}

// EmployeeInfo is the employee header shared by all documents
type EmployeeInfo struct {
	ID             uuid.UUID `json:"id"`
	EmployeeNo     string    `json:"employeeNo"`
	FullName       string    `json:"fullName"`
	NationalID     string    `json:"nationalId"`
	HireDate       time.Time `json:"hireDate"`
	EmploymentType string    `json:"employmentType"`
	Status         string    `json:"status"`
	PositionTitle  string    `json:"positionTitle"`
	DivisionName   string    `json:"divisionName"`
	BranchName     string    `json:"branchName"`
	BranchAddress  string    `json:"branchAddress"`
}

// CertificateData is the employment certificate payload
type CertificateData struct {
	IssuedAt      time.Time       `json:"issuedAt"`
	IssuedBy      string          `json:"issuedBy"`
	TenureYears   decimal.Decimal `json:"tenureYears"`
	SalaryAmount  decimal.Decimal `json:"salaryAmount"`
	Currency      string          `json:"currency"`
	IncludeSalary bool            `json:"includeSalary"`
}

// LeaveFormData is the leave request form payload
type LeaveFormData struct {
	RequestID       uuid.UUID       `json:"requestId"`
	Type            string          `json:"type"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         time.Time       `json:"endDate"`
	Days            decimal.Decimal `json:"days"`
	Reason          string          `json:"reason"`
	Status          string          `json:"status"`
	ApproverName    string          `json:"approverName"`
	DecidedAt       *time.Time      `json:"decidedAt"`
	RejectionReason string          `json:"rejectionReason"`
}

// AttendanceSheetData is the monthly attendance sheet payload
type AttendanceSheetData struct {
	Month   string           `json:"month"`
	Rows    []AttendanceRow  `json:"rows"`
	Summary AttendanceTotals `json:"summary"`
}

// AttendanceRow is one day on the sheet
type AttendanceRow struct {
	Date            string          `json:"date"`
	CheckIn         time.Time       `json:"checkIn"`
	CheckOut        *time.Time      `json:"checkOut"`
	WorkHours       decimal.Decimal `json:"workHours"`
	LateMinutes     int             `json:"lateMinutes"`
	OvertimeMinutes int             `json:"overtimeMinutes"`
	Status          string          `json:"status"`
	Remarks         string          `json:"remarks"`
}

// AttendanceTotals summarizes the month
type AttendanceTotals struct {
	DaysPresent     int             `json:"daysPresent"`
	DaysAbsent      int             `json:"daysAbsent"`
	LateCount       int             `json:"lateCount"`
	TotalWorkHours  decimal.Decimal `json:"totalWorkHours"`
	OvertimeMinutes int             `json:"overtimeMinutes"`
}
