package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/logistics-erp/hrm/internal/domain/document"
	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/timekeeping"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
	"github.com/logistics-erp/hrm/internal/infrastructure/docgen"
)

// AttendanceSheetProvider assembles a monthly attendance sheet.
// Params: "month" (YYYY-MM) selects the month, defaulting to the
// current one.
type AttendanceSheetProvider struct {
	attendanceRepo timekeeping.AttendanceRepository
	dir            directory
}

// NewAttendanceSheetProvider creates the provider
func NewAttendanceSheetProvider(
	attendanceRepo timekeeping.AttendanceRepository,
	employeeRepo workforce.EmployeeRepository,
	branchRepo org.BranchRepository,
	divisionRepo org.DivisionRepository,
	positionRepo org.PositionRepository,
) *AttendanceSheetProvider {
	return &AttendanceSheetProvider{
		attendanceRepo: attendanceRepo,
		dir: directory{
			employeeRepo: employeeRepo,
			branchRepo:   branchRepo,
			divisionRepo: divisionRepo,
			positionRepo: positionRepo,
		},
	}
}

func (p *AttendanceSheetProvider) DocumentType() document.DocumentType {
	return document.TypeAttendanceSheet
}

func (p *AttendanceSheetProvider) GetData(ctx context.Context, params docgen.RenderParams) (*docgen.DocumentData, error) {
	employee, err := p.dir.employeeRepo.FindByID(ctx, params.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}

	month := params.Param("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("month parameter must be YYYY-MM: %w", err)
	}
	from := first.Format(timekeeping.DateLayout)
	to := first.AddDate(0, 1, -1).Format(timekeeping.DateLayout)

	records, err := p.attendanceRepo.FindByEmployeeBetween(ctx, params.EmployeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load attendance records: %w", err)
	}

	sheet := docgen.AttendanceSheetData{
		Month: month,
		Rows:  make([]docgen.AttendanceRow, 0, len(records)),
	}
	totalHours := decimal.Zero
	for _, record := range records {
		sheet.Rows = append(sheet.Rows, docgen.AttendanceRow{
			Date:            record.Date,
			CheckIn:         record.CheckInAt,
			CheckOut:        record.CheckOutAt,
			WorkHours:       record.WorkHours,
			LateMinutes:     record.LateMinutes,
			OvertimeMinutes: record.OvertimeMinutes,
			Status:          string(record.Status),
			Remarks:         flagRemarks(record),
		})

		if record.Status == timekeeping.AttendanceStatusAbsent {
			sheet.Summary.DaysAbsent++
			continue
		}
		sheet.Summary.DaysPresent++
		if record.Flags.Late {
			sheet.Summary.LateCount++
		}
		totalHours = totalHours.Add(record.WorkHours)
		sheet.Summary.OvertimeMinutes += record.OvertimeMinutes
	}
	sheet.Summary.TotalWorkHours = totalHours

	data := docgen.NewDocumentData(document.TypeAttendanceSheet, "Attendance Sheet "+month)
	data.Employee = p.dir.employeeInfo(ctx, employee)
	data.Document = sheet
	return data, nil
}

func flagRemarks(record *timekeeping.Attendance) string {
	var remarks []string
	if record.Flags.Late {
		remarks = append(remarks, "late")
	}
	if record.Flags.EarlyDeparture {
		remarks = append(remarks, "early departure")
	}
	if record.Flags.OutsideGeofence {
		remarks = append(remarks, "outside geofence")
	}
	if record.Flags.MissingCheckOut {
		remarks = append(remarks, "missing check-out")
	}
	return strings.Join(remarks, ", ")
}

var _ docgen.DataProvider = (*AttendanceSheetProvider)(nil)
