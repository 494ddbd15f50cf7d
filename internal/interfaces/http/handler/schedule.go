package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/logistics-erp/hrm/internal/application/timekeeping"
)

// ScheduleHandler handles work schedule HTTP requests
type ScheduleHandler struct {
	BaseHandler
	scheduleService *timekeeping.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *timekeeping.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// Create godoc
// @Summary      Create work schedule
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        request body timekeeping.CreateScheduleRequest true "Schedule"
// @Success      201 {object} dto.Response{data=timekeeping.ScheduleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req timekeeping.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	schedule, err := h.scheduleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Schedule created", schedule)
}

// Update godoc
// @Summary      Update work schedule
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        id path string true "Schedule ID"
// @Param        request body timekeeping.UpdateScheduleRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=timekeeping.ScheduleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /schedules/{id} [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req timekeeping.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	schedule, err := h.scheduleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Schedule updated", schedule)
}

// Activate godoc
// @Summary      Activate schedule
// @Tags         schedules
// @Produce      json
// @Param        id path string true "Schedule ID"
// @Success      200 {object} dto.Response{data=timekeeping.ScheduleResponse}
// @Security     BearerAuth
// @Router       /schedules/{id}/activate [post]
func (h *ScheduleHandler) Activate(c *gin.Context) {
	h.mutateSchedule(c, "Schedule activated", h.scheduleService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate schedule
// @Tags         schedules
// @Produce      json
// @Param        id path string true "Schedule ID"
// @Success      200 {object} dto.Response{data=timekeeping.ScheduleResponse}
// @Security     BearerAuth
// @Router       /schedules/{id}/deactivate [post]
func (h *ScheduleHandler) Deactivate(c *gin.Context) {
	h.mutateSchedule(c, "Schedule deactivated", h.scheduleService.Deactivate)
}

// Get godoc
// @Summary      Get schedule
// @Tags         schedules
// @Produce      json
// @Param        id path string true "Schedule ID"
// @Success      200 {object} dto.Response{data=timekeeping.ScheduleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /schedules/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	schedule, err := h.scheduleService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", schedule)
}

// GetEffective godoc
// @Summary      Effective schedule for an employee
// @Description  Resolves the schedule in effect for the employee on the given
// @Description  date, honoring effective-from/to windows.
// @Tags         schedules
// @Produce      json
// @Param        employeeId path string true "Employee ID"
// @Param        date query string false "Date (YYYY-MM-DD, defaults to today)"
// @Success      200 {object} dto.Response{data=timekeeping.ScheduleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /schedules/effective/{employeeId} [get]
func (h *ScheduleHandler) GetEffective(c *gin.Context) {
	employeeID, ok := h.parseIDParam(c, "employeeId")
	if !ok {
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid date parameter, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	schedule, err := h.scheduleService.GetEffective(c.Request.Context(), employeeID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", schedule)
}

// List godoc
// @Summary      List schedules
// @Tags         schedules
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        employee_id query string false "Filter by employee"
// @Param        active query bool false "Filter by active flag"
// @Success      200 {object} dto.Response{data=[]timekeeping.ScheduleResponse}
// @Security     BearerAuth
// @Router       /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	var filter timekeeping.ListSchedulesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.scheduleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, "OK", result.Items, result.Page, result.PageSize, result.Total)
}

// Delete godoc
// @Summary      Delete schedule
// @Tags         schedules
// @Produce      json
// @Param        id path string true "Schedule ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.scheduleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

type scheduleMutation func(ctx context.Context, id uuid.UUID) (*timekeeping.ScheduleResponse, error)

func (h *ScheduleHandler) mutateSchedule(c *gin.Context, message string, fn scheduleMutation) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	schedule, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, message, schedule)
}
