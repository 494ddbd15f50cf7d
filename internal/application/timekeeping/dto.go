package timekeeping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logistics-erp/hrm/internal/domain/timekeeping"
)

// GeoPointInput is a latitude/longitude pair in request payloads
type GeoPointInput struct {
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
	Lng float64 `json:"lng" binding:"min=-180,max=180"`
}

// CheckInRequest opens an attendance record for the current day
type CheckInRequest struct {
	EmployeeID uuid.UUID     `json:"employee_id" binding:"required"`
	Location   GeoPointInput `json:"location" binding:"required"`
	At         *time.Time    `json:"at"` // defaults to now
}

// CheckOutRequest closes the open attendance record of the day
type CheckOutRequest struct {
	EmployeeID uuid.UUID     `json:"employee_id" binding:"required"`
	Location   GeoPointInput `json:"location" binding:"required"`
	At         *time.Time    `json:"at"`
}

// CorrectAttendanceRequest replaces the recorded times of one record
type CorrectAttendanceRequest struct {
	CheckInAt  time.Time  `json:"check_in_at" binding:"required"`
	CheckOutAt *time.Time `json:"check_out_at"`
	Note       string     `json:"note" binding:"required,min=1,max=500"`
	ActorID    uuid.UUID  `json:"-"`
}

// CloseDayRequest finalizes attendance for one calendar day
type CloseDayRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, defaults to yesterday
}

// CloseDayResult reports what the day-close pass changed
type CloseDayResult struct {
	Date            string `json:"date"`
	MissingCheckOut int    `json:"missing_check_out"`
	Absences        int    `json:"absences"`
}

// ListAttendanceFilter contains filters for attendance queries
type ListAttendanceFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
	OrderBy    string     `form:"sortBy"`
	OrderDir   string     `form:"sortDir"`
	EmployeeID *uuid.UUID `form:"employee_id"`
	Date       string     `form:"date"`
	From       string     `form:"from"`
	To         string     `form:"to"`
	Status     string     `form:"status"`
}

// AttendanceFlagsResponse mirrors the derived exception flags
type AttendanceFlagsResponse struct {
	Late            bool `json:"late"`
	EarlyDeparture  bool `json:"early_departure"`
	OutsideGeofence bool `json:"outside_geofence"`
	MissingCheckOut bool `json:"missing_check_out"`
}

// GeoPointResponse is a latitude/longitude pair in responses
type GeoPointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AttendanceResponse represents an attendance record in responses
type AttendanceResponse struct {
	ID               uuid.UUID               `json:"id"`
	EmployeeID       uuid.UUID               `json:"employee_id"`
	Date             string                  `json:"date"`
	CheckInAt        *time.Time              `json:"check_in_at,omitempty"`
	CheckInLocation  *GeoPointResponse       `json:"check_in_location,omitempty"`
	CheckOutAt       *time.Time              `json:"check_out_at,omitempty"`
	CheckOutLocation *GeoPointResponse       `json:"check_out_location,omitempty"`
	WorkHours        decimal.Decimal         `json:"work_hours"`
	Flags            AttendanceFlagsResponse `json:"flags"`
	LateMinutes      int                     `json:"late_minutes"`
	EarlyMinutes     int                     `json:"early_minutes"`
	OvertimeMinutes  int                     `json:"overtime_minutes"`
	Status           string                  `json:"status"`
	Note             string                  `json:"note,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// ToAttendanceResponse converts an attendance record to a response DTO
func ToAttendanceResponse(a *timekeeping.Attendance) *AttendanceResponse {
	resp := &AttendanceResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		Date:            a.Date,
		CheckOutAt:      a.CheckOutAt,
		WorkHours:       a.WorkHours,
		LateMinutes:     a.LateMinutes,
		EarlyMinutes:    a.EarlyMinutes,
		OvertimeMinutes: a.OvertimeMinutes,
		Status:          string(a.Status),
		Note:            a.Note,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		Flags: AttendanceFlagsResponse{
			Late:            a.Flags.Late,
			EarlyDeparture:  a.Flags.EarlyDeparture,
			OutsideGeofence: a.Flags.OutsideGeofence,
			MissingCheckOut: a.Flags.MissingCheckOut,
		},
	}
	if !a.CheckInAt.IsZero() {
		at := a.CheckInAt
		resp.CheckInAt = &at
	}
	if !a.CheckInLocation.IsZero() {
		resp.CheckInLocation = &GeoPointResponse{Lat: a.CheckInLocation.Lat(), Lng: a.CheckInLocation.Lng()}
	}
	if a.CheckOutLocation != nil {
		resp.CheckOutLocation = &GeoPointResponse{Lat: a.CheckOutLocation.Lat(), Lng: a.CheckOutLocation.Lng()}
	}
	return resp
}

// CreateLeaveRequestRequest files a leave request
type CreateLeaveRequestRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
	Type       string    `json:"type" binding:"required,oneof=annual sick unpaid maternity bereavement"`
	StartDate  time.Time `json:"start_date" binding:"required"`
	EndDate    time.Time `json:"end_date" binding:"required"`
	Reason     string    `json:"reason" binding:"max=500"`
	ActorID    uuid.UUID `json:"-"`
}

// RejectLeaveRequest rejects a pending leave request
type RejectLeaveRequest struct {
	Reason  string    `json:"reason" binding:"required,min=1,max=500"`
	ActorID uuid.UUID `json:"-"`
}

// AllocateBalanceRequest grants a yearly leave entitlement
type AllocateBalanceRequest struct {
	EmployeeID uuid.UUID       `json:"employee_id" binding:"required"`
	Year       int             `json:"year" binding:"required,min=2000,max=2100"`
	Type       string          `json:"type" binding:"required,oneof=annual sick unpaid maternity bereavement"`
	Allocated  decimal.Decimal `json:"allocated"`
	ActorID    uuid.UUID       `json:"-"`
}

// AdjustBalanceRequest changes an existing allocation
type AdjustBalanceRequest struct {
	Delta   decimal.Decimal `json:"delta"`
	Reason  string          `json:"reason" binding:"required,min=1,max=500"`
	ActorID uuid.UUID       `json:"-"`
}

// ListLeaveRequestsFilter contains filters for leave request queries
type ListLeaveRequestsFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
	OrderBy    string     `form:"sortBy"`
	OrderDir   string     `form:"sortDir"`
	EmployeeID *uuid.UUID `form:"employee_id"`
	Status     string     `form:"status"`
	Type       string     `form:"type"`
}

// LeaveRequestResponse represents a leave request in responses
type LeaveRequestResponse struct {
	ID              uuid.UUID       `json:"id"`
	EmployeeID      uuid.UUID       `json:"employee_id"`
	Type            string          `json:"type"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	Days            decimal.Decimal `json:"days"`
	Reason          string          `json:"reason,omitempty"`
	Status          string          `json:"status"`
	ApproverID      *uuid.UUID      `json:"approver_id,omitempty"`
	DecidedAt       *time.Time      `json:"decided_at,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToLeaveRequestResponse converts a leave request to a response DTO
func ToLeaveRequestResponse(r *timekeeping.LeaveRequest) *LeaveRequestResponse {
	return &LeaveRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		Type:            string(r.Type),
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Days:            r.Days,
		Reason:          r.Reason,
		Status:          string(r.Status),
		ApproverID:      r.ApproverID,
		DecidedAt:       r.DecidedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// BalanceAdjustmentResponse is one movement in the balance trail
type BalanceAdjustmentResponse struct {
	Bucket  string          `json:"bucket"`
	Delta   decimal.Decimal `json:"delta"`
	Reason  string          `json:"reason,omitempty"`
	ActorID uuid.UUID       `json:"actor_id"`
	At      time.Time       `json:"at"`
}

// LeaveBalanceResponse represents a leave balance in responses
type LeaveBalanceResponse struct {
	ID          uuid.UUID                   `json:"id"`
	EmployeeID  uuid.UUID                   `json:"employee_id"`
	Year        int                         `json:"year"`
	Type        string                      `json:"type"`
	Allocated   decimal.Decimal             `json:"allocated"`
	Used        decimal.Decimal             `json:"used"`
	Pending     decimal.Decimal             `json:"pending"`
	Remaining   decimal.Decimal             `json:"remaining"`
	Adjustments []BalanceAdjustmentResponse `json:"adjustments,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// ToLeaveBalanceResponse converts a leave balance to a response DTO
func ToLeaveBalanceResponse(b *timekeeping.LeaveBalance) *LeaveBalanceResponse {
	adjustments := make([]BalanceAdjustmentResponse, len(b.Adjustments))
	for i, adj := range b.Adjustments {
		adjustments[i] = BalanceAdjustmentResponse{
			Bucket:  string(adj.Bucket),
			Delta:   adj.Delta,
			Reason:  adj.Reason,
			ActorID: adj.ActorID,
			At:      adj.At,
		}
	}
	return &LeaveBalanceResponse{
		ID:          b.ID,
		EmployeeID:  b.EmployeeID,
		Year:        b.Year,
		Type:        string(b.Type),
		Allocated:   b.Allocated,
		Used:        b.Used,
		Pending:     b.Pending,
		Remaining:   b.Remaining(),
		Adjustments: adjustments,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ShiftInput represents one weekday of the weekly pattern
type ShiftInput struct {
	Weekday int    `json:"weekday" binding:"min=0,max=6"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Working bool   `json:"working"`
}

// GeofenceInput defines an allowed check-in circle
type GeofenceInput struct {
	Center  GeoPointInput `json:"center" binding:"required"`
	RadiusM float64       `json:"radius_m" binding:"required,gt=0"`
}

// CreateScheduleRequest assigns a weekly work schedule to an employee
type CreateScheduleRequest struct {
	EmployeeID            uuid.UUID      `json:"employee_id" binding:"required"`
	EffectiveFrom         time.Time      `json:"effective_from" binding:"required"`
	Shifts                []ShiftInput   `json:"shifts" binding:"required,len=7,dive"`
	TimezoneOffsetMinutes int            `json:"timezone_offset_minutes" binding:"min=-840,max=840"`
	Geofence              *GeofenceInput `json:"geofence"`
}

// UpdateScheduleRequest replaces a schedule definition
type UpdateScheduleRequest struct {
	EffectiveFrom         time.Time      `json:"effective_from" binding:"required"`
	Shifts                []ShiftInput   `json:"shifts" binding:"required,len=7,dive"`
	TimezoneOffsetMinutes int            `json:"timezone_offset_minutes" binding:"min=-840,max=840"`
	Geofence              *GeofenceInput `json:"geofence"`
}

// ListSchedulesFilter contains filters for schedule queries
type ListSchedulesFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
	OrderBy    string     `form:"sortBy"`
	OrderDir   string     `form:"sortDir"`
	EmployeeID *uuid.UUID `form:"employee_id"`
	Active     *bool      `form:"active"`
}

// ShiftResponse represents one weekday in schedule responses
type ShiftResponse struct {
	Weekday int    `json:"weekday"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	Working bool   `json:"working"`
}

// GeofenceResponse represents the schedule's geofence in responses
type GeofenceResponse struct {
	Center  GeoPointResponse `json:"center"`
	RadiusM float64          `json:"radius_m"`
}

// ScheduleResponse represents a work schedule in responses
type ScheduleResponse struct {
	ID                    uuid.UUID         `json:"id"`
	EmployeeID            uuid.UUID         `json:"employee_id"`
	EffectiveFrom         time.Time         `json:"effective_from"`
	Shifts                [7]ShiftResponse  `json:"shifts"`
	TimezoneOffsetMinutes int               `json:"timezone_offset_minutes"`
	Geofence              *GeofenceResponse `json:"geofence,omitempty"`
	Active                bool              `json:"active"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// ToScheduleResponse converts a work schedule to a response DTO
func ToScheduleResponse(s *timekeeping.WorkSchedule) *ScheduleResponse {
	resp := &ScheduleResponse{
		ID:                    s.ID,
		EmployeeID:            s.EmployeeID,
		EffectiveFrom:         s.EffectiveFrom,
		TimezoneOffsetMinutes: s.TimezoneOffsetMinutes,
		Active:                s.Active,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
	for i, shift := range s.Shifts {
		resp.Shifts[i] = ShiftResponse{
			Weekday: int(shift.Weekday),
			Start:   shift.Start,
			End:     shift.End,
			Working: shift.Working,
		}
	}
	if s.HasGeofence() {
		resp.Geofence = &GeofenceResponse{
			Center:  GeoPointResponse{Lat: s.GeofenceCenter.Lat(), Lng: s.GeofenceCenter.Lng()},
			RadiusM: s.GeofenceRadiusM,
		}
	}
	return resp
}

// CreateHolidayRequest adds a holiday calendar entry
type CreateHolidayRequest struct {
	Date      time.Time  `json:"date" binding:"required"`
	Name      string     `json:"name" binding:"required,min=1,max=100"`
	Recurring bool       `json:"recurring"`
	BranchID  *uuid.UUID `json:"branch_id"`
}

// UpdateHolidayRequest replaces a holiday definition
type UpdateHolidayRequest struct {
	Date      time.Time `json:"date" binding:"required"`
	Name      string    `json:"name" binding:"required,min=1,max=100"`
	Recurring bool      `json:"recurring"`
}

// ListHolidaysFilter contains filters for holiday queries
type ListHolidaysFilter struct {
	Page     int        `form:"page"`
	PageSize int        `form:"pageSize"`
	OrderBy  string     `form:"sortBy"`
	OrderDir string     `form:"sortDir"`
	Year     int        `form:"year"`
	BranchID *uuid.UUID `form:"branch_id"`
}

// HolidayResponse represents a holiday in responses
type HolidayResponse struct {
	ID        uuid.UUID  `json:"id"`
	Date      string     `json:"date"`
	Name      string     `json:"name"`
	Recurring bool       `json:"recurring"`
	BranchID  *uuid.UUID `json:"branch_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToHolidayResponse converts a holiday to a response DTO
func ToHolidayResponse(h *timekeeping.Holiday) *HolidayResponse {
	return &HolidayResponse{
		ID:        h.ID,
		Date:      h.Date.Format(timekeeping.DateLayout),
		Name:      h.Name,
		Recurring: h.Recurring,
		BranchID:  h.BranchID,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

// CalendarDayResponse is one observed holiday in a yearly calendar
type CalendarDayResponse struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}
