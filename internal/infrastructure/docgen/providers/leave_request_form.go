package providers

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/logistics-erp/hrm/internal/domain/document"
	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/timekeeping"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
	"github.com/logistics-erp/hrm/internal/infrastructure/docgen"
)

// LeaveRequestFormProvider assembles data for printable leave request
// forms. Params: "leave_request_id" is required.
type LeaveRequestFormProvider struct {
	requestRepo timekeeping.LeaveRequestRepository
	dir         directory
}

// NewLeaveRequestFormProvider creates the provider
func NewLeaveRequestFormProvider(
	requestRepo timekeeping.LeaveRequestRepository,
	employeeRepo workforce.EmployeeRepository,
	branchRepo org.BranchRepository,
	divisionRepo org.DivisionRepository,
	positionRepo org.PositionRepository,
) *LeaveRequestFormProvider {
	return &LeaveRequestFormProvider{
		requestRepo: requestRepo,
		dir: directory{
			employeeRepo: employeeRepo,
			branchRepo:   branchRepo,
			divisionRepo: divisionRepo,
			positionRepo: positionRepo,
		},
	}
}

func (p *LeaveRequestFormProvider) DocumentType() document.DocumentType {
	return document.TypeLeaveRequestForm
}

func (p *LeaveRequestFormProvider) GetData(ctx context.Context, params docgen.RenderParams) (*docgen.DocumentData, error) {
	requestID, err := uuid.Parse(params.Param("leave_request_id"))
	if err != nil {
		return nil, fmt.Errorf("leave_request_id parameter is required: %w", err)
	}

	request, err := p.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("load leave request: %w", err)
	}
	if params.EmployeeID != uuid.Nil && params.EmployeeID != request.EmployeeID {
		return nil, fmt.Errorf("leave request %s does not belong to employee %s", requestID, params.EmployeeID)
	}

	employee, err := p.dir.employeeRepo.FindByID(ctx, request.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}

	data := docgen.NewDocumentData(document.TypeLeaveRequestForm, "Leave Request Form")
	data.Employee = p.dir.employeeInfo(ctx, employee)

	form := docgen.LeaveFormData{
		RequestID:       request.ID,
		Type:            string(request.Type),
		StartDate:       request.StartDate,
		EndDate:         request.EndDate,
		Days:            request.Days,
		Reason:          request.Reason,
		Status:          string(request.Status),
		DecidedAt:       request.DecidedAt,
		RejectionReason: request.RejectionReason,
	}
	if request.ApproverID != nil {
		if approver, err := p.dir.employeeRepo.FindByID(ctx, *request.ApproverID); err == nil {
			form.ApproverName = approver.FullName()
		}
	}
	data.Document = form
	return data, nil
}

var _ docgen.DataProvider = (*LeaveRequestFormProvider)(nil)
