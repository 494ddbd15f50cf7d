package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/logistics-erp/hrm/internal/application/timekeeping"
)

// AttendanceHandler handles attendance tracking HTTP requests
type AttendanceHandler struct {
	BaseHandler
	attendanceService *timekeeping.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *timekeeping.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// CheckIn godoc
// @Summary      Check in
// @Description  Records the employee's check-in for today. Lateness and
// @Description  geofence flags are evaluated against the effective schedule.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request body timekeeping.CheckInRequest true "Check-in"
// @Success      201 {object} dto.Response{data=timekeeping.AttendanceResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req timekeeping.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	attendance, err := h.attendanceService.CheckIn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Checked in", attendance)
}

// CheckOut godoc
// @Summary      Check out
// @Description  Records the employee's check-out and computes worked and
// @Description  overtime minutes.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request body timekeeping.CheckOutRequest true "Check-out"
// @Success      200 {object} dto.Response{data=timekeeping.AttendanceResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var req timekeeping.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	attendance, err := h.attendanceService.CheckOut(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Checked out", attendance)
}

// Correct godoc
// @Summary      Correct attendance record
// @Description  Manager correction of check-in/check-out times. The original
// @Description  values are preserved and the record is flagged as corrected.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        id path string true "Attendance record ID"
// @Param        request body timekeeping.CorrectAttendanceRequest true "Correction"
// @Success      200 {object} dto.Response{data=timekeeping.AttendanceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attendance/{id}/correct [put]
func (h *AttendanceHandler) Correct(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req timekeeping.CorrectAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	attendance, err := h.attendanceService.Correct(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Attendance corrected", attendance)
}

// Get godoc
// @Summary      Get attendance record
// @Tags         attendance
// @Produce      json
// @Param        id path string true "Attendance record ID"
// @Success      200 {object} dto.Response{data=timekeeping.AttendanceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attendance/{id} [get]
func (h *AttendanceHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	attendance, err := h.attendanceService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", attendance)
}

// List godoc
// @Summary      List attendance records
// @Tags         attendance
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        employee_id query string false "Filter by employee"
// @Param        date query string false "Exact date (YYYY-MM-DD)"
// @Param        from query string false "Range start (YYYY-MM-DD)"
// @Param        to query string false "Range end (YYYY-MM-DD)"
// @Param        status query string false "Filter by status"
// @Success      200 {object} dto.Response{data=[]timekeeping.AttendanceResponse}
// @Security     BearerAuth
// @Router       /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	var filter timekeeping.ListAttendanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.attendanceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, "OK", result.Items, result.Page, result.PageSize, result.Total)
}

// CloseDay godoc
// @Summary      Close attendance day
// @Description  Finalizes open records for the given day and marks absences
// @Description  for scheduled employees without a record. Also runs on a cron
// @Description  schedule; this endpoint triggers it manually.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request body timekeeping.CloseDayRequest false "Day to close (defaults to yesterday)"
// @Success      200 {object} dto.Response{data=timekeeping.CloseDayResult}
// @Security     BearerAuth
// @Router       /attendance/close-day [post]
func (h *AttendanceHandler) CloseDay(c *gin.Context) {
	var req timekeeping.CloseDayRequest
	// Empty body means close yesterday
	_ = c.ShouldBindJSON(&req)

	result, err := h.attendanceService.CloseDay(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Day closed", result)
}
