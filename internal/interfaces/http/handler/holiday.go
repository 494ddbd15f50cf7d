package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/logistics-erp/hrm/internal/application/timekeeping"
)

// HolidayHandler handles holiday calendar HTTP requests
type HolidayHandler struct {
	BaseHandler
	holidayService *timekeeping.HolidayService
}

// NewHolidayHandler creates a new holiday handler
func NewHolidayHandler(holidayService *timekeeping.HolidayService) *HolidayHandler {
	return &HolidayHandler{
		holidayService: holidayService,
	}
}

// Create godoc
// @Summary      Create holiday
// @Description  Branch-scoped holidays apply only to that branch; recurring
// @Description  holidays repeat every year on the same month and day.
// @Tags         holidays
// @Accept       json
// @Produce      json
// @Param        request body timekeeping.CreateHolidayRequest true "Holiday"
// @Success      201 {object} dto.Response{data=timekeeping.HolidayResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /holidays [post]
func (h *HolidayHandler) Create(c *gin.Context) {
	var req timekeeping.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	holiday, err := h.holidayService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Holiday created", holiday)
}

// Update godoc
// @Summary      Update holiday
// @Tags         holidays
// @Accept       json
// @Produce      json
// @Param        id path string true "Holiday ID"
// @Param        request body timekeeping.UpdateHolidayRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=timekeeping.HolidayResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /holidays/{id} [put]
func (h *HolidayHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req timekeeping.UpdateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	holiday, err := h.holidayService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Holiday updated", holiday)
}

// Get godoc
// @Summary      Get holiday
// @Tags         holidays
// @Produce      json
// @Param        id path string true "Holiday ID"
// @Success      200 {object} dto.Response{data=timekeeping.HolidayResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /holidays/{id} [get]
func (h *HolidayHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	holiday, err := h.holidayService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", holiday)
}

// List godoc
// @Summary      List holidays
// @Tags         holidays
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        year query int false "Filter by year"
// @Param        branch_id query string false "Filter by branch"
// @Success      200 {object} dto.Response{data=[]timekeeping.HolidayResponse}
// @Security     BearerAuth
// @Router       /holidays [get]
func (h *HolidayHandler) List(c *gin.Context) {
	var filter timekeeping.ListHolidaysFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.holidayService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, "OK", result.Items, result.Page, result.PageSize, result.Total)
}

// Calendar godoc
// @Summary      Holiday calendar for a year
// @Description  Expands recurring holidays into concrete dates for the year,
// @Description  merged with one-off holidays.
// @Tags         holidays
// @Produce      json
// @Param        year query int true "Year"
// @Param        branch_id query string false "Include branch-scoped holidays of this branch"
// @Success      200 {object} dto.Response{data=[]timekeeping.CalendarDayResponse}
// @Security     BearerAuth
// @Router       /holidays/calendar [get]
func (h *HolidayHandler) Calendar(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			h.BadRequest(c, "Invalid year parameter")
			return
		}
		year = parsed
	}

	var branchID *uuid.UUID
	if raw := c.Query("branch_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid branch_id parameter")
			return
		}
		branchID = &parsed
	}

	days, err := h.holidayService.Calendar(c.Request.Context(), year, branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", days)
}

// Delete godoc
// @Summary      Delete holiday
// @Tags         holidays
// @Produce      json
// @Param        id path string true "Holiday ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /holidays/{id} [delete]
func (h *HolidayHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.holidayService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
