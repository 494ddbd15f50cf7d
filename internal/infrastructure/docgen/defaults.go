package docgen

import (
	"github.com/logistics-erp/hrm/internal/domain/document"
)

// BuiltinTemplate returns the in-code template for a document type,
// used when no stored template is marked default.
func BuiltinTemplate(docType document.DocumentType) (*document.Template, error) {
	content, ok := builtinTemplates[docType]
	if !ok {
		return nil, NewRenderError(ErrCodeInvalidHTML, "no built-in template for document type "+string(docType), nil)
	}
	tpl, err := document.NewTemplate(docType, "Built-in "+string(docType), content)
	if err != nil {
		return nil, err
	}
	if docType == document.TypeAttendanceSheet {
		if err := tpl.SetLayout(document.PaperA4, document.OrientationLandscape, document.DefaultMargins()); err != nil {
			return nil, err
		}
	}
	return tpl, nil
}

var builtinTemplates = map[document.DocumentType]string{
	document.TypeEmploymentCertificate: employmentCertificateHTML,
	document.TypeLeaveRequestForm:      leaveRequestFormHTML,
	document.TypeAttendanceSheet:       attendanceSheetHTML,
}

const documentCSS = `<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 12px; color: #1a1a1a; }
h1 { font-size: 20px; text-align: center; margin-bottom: 24px; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th, td { border: 1px solid #999; padding: 6px 8px; text-align: left; }
th { background: #f0f0f0; }
.meta { margin-top: 32px; font-size: 11px; color: #555; }
.signature { margin-top: 48px; display: flex; justify-content: space-between; }
.signature div { width: 40%; border-top: 1px solid #333; padding-top: 6px; text-align: center; }
</style>`

const employmentCertificateHTML = documentCSS + `
<h1>{{upper "Employment Certificate"}}</h1>
<p>This is to certify that <strong>{{.Employee.FullName}}</strong>
(employee no. {{.Employee.EmployeeNo}}) has been employed by
{{.Employee.BranchName}} since {{formatDate .Employee.HireDate}} as
<strong>{{.Employee.PositionTitle}}</strong> in the
{{.Employee.DivisionName}} division.</p>
{{with .Document}}
{{if .IncludeSalary}}
<p>The employee's current salary is {{.Currency}} {{formatMoney .SalaryAmount}} per month.</p>
{{end}}
<p>Tenure to date: {{formatDecimal .TenureYears 1}} years.</p>
<div class="signature">
  <div>{{default "Human Resources" .IssuedBy}}</div>
  <div>Date: {{formatDate .IssuedAt}}</div>
</div>
{{end}}
<p class="meta">Generated {{formatDateTime .GeneratedAt}} · {{.Employee.BranchAddress}}</p>
`

const leaveRequestFormHTML = documentCSS + `
<h1>Leave Request Form</h1>
<table>
  <tr><th>Employee</th><td>{{.Employee.FullName}} ({{.Employee.EmployeeNo}})</td></tr>
  <tr><th>Position</th><td>{{.Employee.PositionTitle}}, {{.Employee.DivisionName}}</td></tr>
  <tr><th>Branch</th><td>{{.Employee.BranchName}}</td></tr>
{{with .Document}}
  <tr><th>Leave type</th><td>{{title .Type}}</td></tr>
  <tr><th>Period</th><td>{{formatDate .StartDate}} to {{formatDate .EndDate}} ({{.Days}} working days)</td></tr>
  <tr><th>Reason</th><td>{{default "-" .Reason}}</td></tr>
  <tr><th>Status</th><td>{{upper .Status}}</td></tr>
  {{if .DecidedAt}}<tr><th>Decided</th><td>{{formatDate .DecidedAt}} by {{default "-" .ApproverName}}</td></tr>{{end}}
  {{if .RejectionReason}}<tr><th>Rejection reason</th><td>{{.RejectionReason}}</td></tr>{{end}}
{{end}}
</table>
<div class="signature">
  <div>Employee signature</div>
  <div>Approver signature</div>
</div>
<p class="meta">Generated {{formatDateTime .GeneratedAt}}</p>
`

const attendanceSheetHTML = documentCSS + `
<h1>Attendance Sheet — {{with .Document}}{{.Month}}{{end}}</h1>
<p>{{.Employee.FullName}} ({{.Employee.EmployeeNo}}) · {{.Employee.BranchName}}</p>
{{with .Document}}
<table>
  <tr>
    <th>Date</th><th>Check-in</th><th>Check-out</th><th>Hours</th>
    <th>Late (min)</th><th>Overtime (min)</th><th>Status</th><th>Remarks</th>
  </tr>
  {{range .Rows}}
  <tr>
    <td>{{.Date}}</td>
    <td>{{formatTime .CheckIn}}</td>
    <td>{{if .CheckOut}}{{formatTime .CheckOut}}{{else}}—{{end}}</td>
    <td>{{formatDecimal .WorkHours 2}}</td>
    <td>{{.LateMinutes}}</td>
    <td>{{.OvertimeMinutes}}</td>
    <td>{{.Status}}</td>
    <td>{{.Remarks}}</td>
  </tr>
  {{end}}
</table>
<p>
  Present: {{.Summary.DaysPresent}} ·
  Absent: {{.Summary.DaysAbsent}} ·
  Late days: {{.Summary.LateCount}} ·
  Total hours: {{formatDecimal .Summary.TotalWorkHours 2}} ·
  Overtime: {{.Summary.OvertimeMinutes}} min
</p>
{{end}}
<p class="meta">Generated {{formatDateTime .GeneratedAt}}</p>
`
