package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/logistics-erp/hrm/internal/domain/document"
	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
	"github.com/logistics-erp/hrm/internal/infrastructure/docgen"
)

// EmploymentCertificateProvider assembles data for employment
// certificates. Params: "issued_by" names the signing officer,
// "include_salary"="true" adds the salary line.
type EmploymentCertificateProvider struct {
	dir directory
}

// NewEmploymentCertificateProvider creates the provider
func NewEmploymentCertificateProvider(
	employeeRepo workforce.EmployeeRepository,
	branchRepo org.BranchRepository,
	divisionRepo org.DivisionRepository,
	positionRepo org.PositionRepository,
) *EmploymentCertificateProvider {
	return &EmploymentCertificateProvider{dir: directory{
		employeeRepo: employeeRepo,
		branchRepo:   branchRepo,
		divisionRepo: divisionRepo,
		positionRepo: positionRepo,
	}}
}

func (p *EmploymentCertificateProvider) DocumentType() document.DocumentType {
	return document.TypeEmploymentCertificate
}

func (p *EmploymentCertificateProvider) GetData(ctx context.Context, params docgen.RenderParams) (*docgen.DocumentData, error) {
	employee, err := p.dir.employeeRepo.FindByID(ctx, params.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}

	data := docgen.NewDocumentData(document.TypeEmploymentCertificate, "Employment Certificate")
	data.Employee = p.dir.employeeInfo(ctx, employee)

	tenureDays := time.Since(employee.HireDate).Hours() / 24
	data.Document = docgen.CertificateData{
		IssuedAt:      time.Now(),
		IssuedBy:      params.Param("issued_by"),
		TenureYears:   decimal.NewFromFloat(tenureDays / 365.25).Round(1),
		SalaryAmount:  employee.Salary.Amount(),
		Currency:      string(employee.Salary.Currency()),
		IncludeSalary: params.Param("include_salary") == "true",
	}
	return data, nil
}

var _ docgen.DataProvider = (*EmploymentCertificateProvider)(nil)
