package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/logistics-erp/hrm/internal/application/timekeeping"
)

// LeaveHandler handles leave request and balance HTTP requests
type LeaveHandler struct {
	BaseHandler
	leaveService *timekeeping.LeaveService
}

// NewLeaveHandler creates a new leave handler
func NewLeaveHandler(leaveService *timekeeping.LeaveService) *LeaveHandler {
	return &LeaveHandler{
		leaveService: leaveService,
	}
}

// CreateRequest godoc
// @Summary      Submit leave request
// @Description  Creates a pending leave request and reserves the working days
// @Description  against the employee's balance.
// @Tags         leave
// @Accept       json
// @Produce      json
// @Param        request body timekeeping.CreateLeaveRequestRequest true "Leave request"
// @Success      201 {object} dto.Response{data=timekeeping.LeaveRequestResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /leave/requests [post]
func (h *LeaveHandler) CreateRequest(c *gin.Context) {
	var req timekeeping.CreateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	request, err := h.leaveService.CreateRequest(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Leave request submitted", request)
}

// Approve godoc
// @Summary      Approve leave request
// @Description  Converts the balance reservation into used days
// @Tags         leave
// @Produce      json
// @Param        id path string true "Leave request ID"
// @Success      200 {object} dto.Response{data=timekeeping.LeaveRequestResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /leave/requests/{id}/approve [post]
func (h *LeaveHandler) Approve(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	approverID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	request, err := h.leaveService.ApproveRequest(c.Request.Context(), id, approverID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Leave request approved", request)
}

// Reject godoc
// @Summary      Reject leave request
// @Description  Releases the balance reservation
// @Tags         leave
// @Accept       json
// @Produce      json
// @Param        id path string true "Leave request ID"
// @Param        request body timekeeping.RejectLeaveRequest true "Rejection reason"
// @Success      200 {object} dto.Response{data=timekeeping.LeaveRequestResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /leave/requests/{id}/reject [post]
func (h *LeaveHandler) Reject(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req timekeeping.RejectLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	request, err := h.leaveService.RejectRequest(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Leave request rejected", request)
}

// Cancel godoc
// @Summary      Cancel leave request
// @Description  Pending requests release the reservation; approved requests
// @Description  return the used days to the balance.
// @Tags         leave
// @Produce      json
// @Param        id path string true "Leave request ID"
// @Success      200 {object} dto.Response{data=timekeeping.LeaveRequestResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /leave/requests/{id}/cancel [post]
func (h *LeaveHandler) Cancel(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, _ := getUserID(c)

	request, err := h.leaveService.CancelRequest(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Leave request cancelled", request)
}

// GetRequest godoc
// @Summary      Get leave request
// @Tags         leave
// @Produce      json
// @Param        id path string true "Leave request ID"
// @Success      200 {object} dto.Response{data=timekeeping.LeaveRequestResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /leave/requests/{id} [get]
func (h *LeaveHandler) GetRequest(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	request, err := h.leaveService.GetRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", request)
}

// ListRequests godoc
// @Summary      List leave requests
// @Tags         leave
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        employee_id query string false "Filter by employee"
// @Param        status query string false "Filter by status"
// @Param        type query string false "Filter by leave type"
// @Success      200 {object} dto.Response{data=[]timekeeping.LeaveRequestResponse}
// @Security     BearerAuth
// @Router       /leave/requests [get]
func (h *LeaveHandler) ListRequests(c *gin.Context) {
	var filter timekeeping.ListLeaveRequestsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.leaveService.ListRequests(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, "OK", result.Items, result.Page, result.PageSize, result.Total)
}

// AllocateBalance godoc
// @Summary      Allocate leave balance
// @Description  Creates or replaces the employee's balance for a leave type
// @Description  and year.
// @Tags         leave
// @Accept       json
// @Produce      json
// @Param        request body timekeeping.AllocateBalanceRequest true "Allocation"
// @Success      201 {object} dto.Response{data=timekeeping.LeaveBalanceResponse}
// @Security     BearerAuth
// @Router       /leave/balances [post]
func (h *LeaveHandler) AllocateBalance(c *gin.Context) {
	var req timekeeping.AllocateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	balance, err := h.leaveService.AllocateBalance(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Balance allocated", balance)
}

// AdjustBalance godoc
// @Summary      Adjust leave balance
// @Description  Manual correction with an audit trail entry
// @Tags         leave
// @Accept       json
// @Produce      json
// @Param        id path string true "Balance ID"
// @Param        request body timekeeping.AdjustBalanceRequest true "Adjustment"
// @Success      200 {object} dto.Response{data=timekeeping.LeaveBalanceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /leave/balances/{id}/adjust [post]
func (h *LeaveHandler) AdjustBalance(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req timekeeping.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.ActorID, _ = getUserID(c)

	balance, err := h.leaveService.AdjustBalance(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Balance adjusted", balance)
}

// GetBalances godoc
// @Summary      Employee leave balances
// @Tags         leave
// @Produce      json
// @Param        employeeId path string true "Employee ID"
// @Param        year query int false "Year (defaults to current year)"
// @Success      200 {object} dto.Response{data=[]timekeeping.LeaveBalanceResponse}
// @Security     BearerAuth
// @Router       /leave/balances/employee/{employeeId} [get]
func (h *LeaveHandler) GetBalances(c *gin.Context) {
	employeeID, ok := h.parseIDParam(c, "employeeId")
	if !ok {
		return
	}

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			h.BadRequest(c, "Invalid year parameter")
			return
		}
		year = parsed
	}

	balances, err := h.leaveService.GetBalances(c.Request.Context(), employeeID, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", balances)
}
