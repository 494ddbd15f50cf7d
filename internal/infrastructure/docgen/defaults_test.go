package docgen

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logistics-erp/hrm/internal/domain/document"
)

func sampleEmployee() EmployeeInfo {
	return EmployeeInfo{
		ID:             uuid.New(),
		EmployeeNo:     "EMP-000042",
		FullName:       "Siti Rahma",
		HireDate:       time.Date(2020, 2, 10, 0, 0, 0, 0, time.UTC),
		EmploymentType: "full_time",
		Status:         "active",
		PositionTitle:  "Courier Supervisor",
		DivisionName:   "Last Mile",
		BranchName:     "Jakarta Central Hub",
		BranchAddress:  "Jl. Merdeka 1, Jakarta, Indonesia",
	}
}

func TestBuiltinTemplates_Render(t *testing.T) {
	engine := NewTemplateEngine()

	t.Run("employment certificate", func(t *testing.T) {
		tpl, err := BuiltinTemplate(document.TypeEmploymentCertificate)
		require.NoError(t, err)

		data := NewDocumentData(document.TypeEmploymentCertificate, "Employment Certificate")
		data.Employee = sampleEmployee()
		data.Document = CertificateData{
			IssuedAt:      time.Now(),
			IssuedBy:      "Dewi Lestari",
			TenureYears:   decimal.RequireFromString("6.5"),
			SalaryAmount:  decimal.NewFromInt(9500000),
			Currency:      "IDR",
			IncludeSalary: true,
		}

		html, err := engine.Render(tpl, data)
		require.NoError(t, err)
		assert.Contains(t, html, "EMPLOYMENT CERTIFICATE")
		assert.Contains(t, html, "Siti Rahma")
		assert.Contains(t, html, "IDR 9,500,000.00")
		assert.Contains(t, html, "6.5 years")
	})

	t.Run("certificate omits salary when excluded", func(t *testing.T) {
		tpl, err := BuiltinTemplate(document.TypeEmploymentCertificate)
		require.NoError(t, err)

		data := NewDocumentData(document.TypeEmploymentCertificate, "Employment Certificate")
		data.Employee = sampleEmployee()
		data.Document = CertificateData{IssuedAt: time.Now(), TenureYears: decimal.NewFromInt(2)}

		html, err := engine.Render(tpl, data)
		require.NoError(t, err)
		assert.NotContains(t, html, "salary")
		assert.Contains(t, html, "Human Resources")
	})

	t.Run("leave request form", func(t *testing.T) {
		tpl, err := BuiltinTemplate(document.TypeLeaveRequestForm)
		require.NoError(t, err)

		decided := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
		data := NewDocumentData(document.TypeLeaveRequestForm, "Leave Request Form")
		data.Employee = sampleEmployee()
		data.Document = LeaveFormData{
			RequestID:    uuid.New(),
			Type:         "annual",
			StartDate:    time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
			Days:         decimal.NewFromInt(5),
			Reason:       "Family visit",
			Status:       "approved",
			ApproverName: "Dewi Lestari",
			DecidedAt:    &decided,
		}

		html, err := engine.Render(tpl, data)
		require.NoError(t, err)
		assert.Contains(t, html, "2026-03-09 to 2026-03-13")
		assert.Contains(t, html, "APPROVED")
		assert.Contains(t, html, "Dewi Lestari")
	})

	t.Run("attendance sheet", func(t *testing.T) {
		tpl, err := BuiltinTemplate(document.TypeAttendanceSheet)
		require.NoError(t, err)
		assert.Equal(t, document.OrientationLandscape, tpl.Orientation)

		out := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
		data := NewDocumentData(document.TypeAttendanceSheet, "Attendance Sheet 2026-03")
		data.Employee = sampleEmployee()
		data.Document = AttendanceSheetData{
			Month: "2026-03",
			Rows: []AttendanceRow{
				{
					Date:      "2026-03-02",
					CheckIn:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
					CheckOut:  &out,
					WorkHours: decimal.NewFromInt(8),
					Status:    "closed",
				},
				{Date: "2026-03-03", Status: "absent", Remarks: ""},
			},
			Summary: AttendanceTotals{
				DaysPresent:    1,
				DaysAbsent:     1,
				TotalWorkHours: decimal.NewFromInt(8),
			},
		}

		html, err := engine.Render(tpl, data)
		require.NoError(t, err)
		assert.Contains(t, html, "2026-03-02")
		assert.Contains(t, html, "Present: 1")
		assert.Contains(t, html, "Absent: 1")
	})

	t.Run("unknown type has no builtin", func(t *testing.T) {
		_, err := BuiltinTemplate("payslip")
		assert.Error(t, err)
	})
}
