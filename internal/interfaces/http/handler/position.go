package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/logistics-erp/hrm/internal/application/org"
)

// PositionHandler handles position hierarchy HTTP requests
type PositionHandler struct {
	BaseHandler
	positionService *org.PositionService
}

// NewPositionHandler creates a new position handler
func NewPositionHandler(positionService *org.PositionService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
	}
}

// Create godoc
// @Summary      Create position
// @Tags         positions
// @Accept       json
// @Produce      json
// @Param        request body org.CreatePositionRequest true "Position"
// @Success      201 {object} dto.Response{data=org.PositionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /positions [post]
func (h *PositionHandler) Create(c *gin.Context) {
	var req org.CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	position, err := h.positionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Position created", position)
}

// GetByID godoc
// @Summary      Get position
// @Tags         positions
// @Produce      json
// @Param        id path string true "Position ID"
// @Success      200 {object} dto.Response{data=org.PositionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /positions/{id} [get]
func (h *PositionHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	position, err := h.positionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", position)
}

// GetByCode godoc
// @Summary      Get position by code
// @Tags         positions
// @Produce      json
// @Param        code path string true "Position code"
// @Success      200 {object} dto.Response{data=org.PositionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /positions/code/{code} [get]
func (h *PositionHandler) GetByCode(c *gin.Context) {
	position, err := h.positionService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", position)
}

// List godoc
// @Summary      List positions
// @Tags         positions
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        status query string false "Filter by status" Enums(open, frozen, closed)
// @Param        division_id query string false "Filter by division"
// @Param        grade query int false "Filter by grade"
// @Success      200 {object} dto.Response{data=[]org.PositionResponse}
// @Security     BearerAuth
// @Router       /positions [get]
func (h *PositionHandler) List(c *gin.Context) {
	var filter org.ListPositionsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.positionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, "OK", result.Items, result.Page, result.PageSize, result.Total)
}

// Update godoc
// @Summary      Update position
// @Tags         positions
// @Accept       json
// @Produce      json
// @Param        id path string true "Position ID"
// @Param        request body org.UpdatePositionRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=org.PositionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /positions/{id} [put]
func (h *PositionHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req org.UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	position, err := h.positionService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Position updated", position)
}

// ChangeStatus godoc
// @Summary      Change position status
// @Description  Transitions between open, frozen and closed. Closing requires
// @Description  zero current headcount.
// @Tags         positions
// @Accept       json
// @Produce      json
// @Param        id path string true "Position ID"
// @Param        request body org.ChangePositionStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=org.PositionResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /positions/{id}/status [put]
func (h *PositionHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req org.ChangePositionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	position, err := h.positionService.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Status changed", position)
}

// GetDirectReports godoc
// @Summary      List positions reporting to this one
// @Tags         positions
// @Produce      json
// @Param        id path string true "Position ID"
// @Success      200 {object} dto.Response{data=[]org.PositionResponse}
// @Security     BearerAuth
// @Router       /positions/{id}/reports [get]
func (h *PositionHandler) GetDirectReports(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	reports, err := h.positionService.GetDirectReports(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", reports)
}

// GetDescendants godoc
// @Summary      List the full reporting subtree
// @Tags         positions
// @Produce      json
// @Param        id path string true "Position ID"
// @Success      200 {object} dto.Response{data=[]org.PositionResponse}
// @Security     BearerAuth
// @Router       /positions/{id}/descendants [get]
func (h *PositionHandler) GetDescendants(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	descendants, err := h.positionService.GetDescendants(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", descendants)
}

// GetReportingChain godoc
// @Summary      Reporting chain up to the root
// @Description  Returns the chain of positions from this one up to the top of
// @Description  the hierarchy, nearest manager first.
// @Tags         positions
// @Produce      json
// @Param        id path string true "Position ID"
// @Success      200 {object} dto.Response{data=[]org.PositionResponse}
// @Security     BearerAuth
// @Router       /positions/{id}/reporting-chain [get]
func (h *PositionHandler) GetReportingChain(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	chain, err := h.positionService.GetReportingChain(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", chain)
}

// Transfer godoc
// @Summary      Move position under a new manager position
// @Tags         positions
// @Accept       json
// @Produce      json
// @Param        id path string true "Position ID"
// @Param        request body org.TransferRequest true "New parent position"
// @Success      200 {object} dto.Response{data=org.PositionResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /positions/{id}/transfer [post]
func (h *PositionHandler) Transfer(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req org.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	position, err := h.positionService.Transfer(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Position transferred", position)
}

// Delete godoc
// @Summary      Delete position
// @Description  Positions with current occupants or direct reports cannot be deleted
// @Tags         positions
// @Produce      json
// @Param        id path string true "Position ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /positions/{id} [delete]
func (h *PositionHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.positionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
