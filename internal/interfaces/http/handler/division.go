package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/logistics-erp/hrm/internal/application/org"
)

// DivisionHandler handles division hierarchy HTTP requests
type DivisionHandler struct {
	BaseHandler
	divisionService *org.DivisionService
}

// NewDivisionHandler creates a new division handler
func NewDivisionHandler(divisionService *org.DivisionService) *DivisionHandler {
	return &DivisionHandler{
		divisionService: divisionService,
	}
}

// Create godoc
// @Summary      Create division
// @Tags         divisions
// @Accept       json
// @Produce      json
// @Param        request body org.CreateDivisionRequest true "Division"
// @Success      201 {object} dto.Response{data=org.DivisionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /divisions [post]
func (h *DivisionHandler) Create(c *gin.Context) {
	var req org.CreateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	division, err := h.divisionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Division created", division)
}

// GetByID godoc
// @Summary      Get division
// @Tags         divisions
// @Produce      json
// @Param        id path string true "Division ID"
// @Success      200 {object} dto.Response{data=org.DivisionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /divisions/{id} [get]
func (h *DivisionHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	division, err := h.divisionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", division)
}

// GetByCode godoc
// @Summary      Get division by code
// @Tags         divisions
// @Produce      json
// @Param        code path string true "Division code"
// @Success      200 {object} dto.Response{data=org.DivisionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /divisions/code/{code} [get]
func (h *DivisionHandler) GetByCode(c *gin.Context) {
	division, err := h.divisionService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", division)
}

// List godoc
// @Summary      List divisions
// @Tags         divisions
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        status query string false "Filter by status" Enums(active, inactive)
// @Param        branch_id query string false "Filter by branch"
// @Param        parent_id query string false "Filter by parent division"
// @Success      200 {object} dto.Response{data=[]org.DivisionResponse}
// @Security     BearerAuth
// @Router       /divisions [get]
func (h *DivisionHandler) List(c *gin.Context) {
	var filter org.ListDivisionsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.divisionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, "OK", result.Items, result.Page, result.PageSize, result.Total)
}

// Update godoc
// @Summary      Update division
// @Tags         divisions
// @Accept       json
// @Produce      json
// @Param        id path string true "Division ID"
// @Param        request body org.UpdateDivisionRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=org.DivisionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /divisions/{id} [put]
func (h *DivisionHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req org.UpdateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	division, err := h.divisionService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Division updated", division)
}

// Activate godoc
// @Summary      Activate division
// @Tags         divisions
// @Produce      json
// @Param        id path string true "Division ID"
// @Success      200 {object} dto.Response{data=org.DivisionResponse}
// @Security     BearerAuth
// @Router       /divisions/{id}/activate [post]
func (h *DivisionHandler) Activate(c *gin.Context) {
	h.mutateDivision(c, "Division activated", h.divisionService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate division
// @Tags         divisions
// @Produce      json
// @Param        id path string true "Division ID"
// @Success      200 {object} dto.Response{data=org.DivisionResponse}
// @Security     BearerAuth
// @Router       /divisions/{id}/deactivate [post]
func (h *DivisionHandler) Deactivate(c *gin.Context) {
	h.mutateDivision(c, "Division deactivated", h.divisionService.Deactivate)
}

// GetChildren godoc
// @Summary      List direct child divisions
// @Tags         divisions
// @Produce      json
// @Param        id path string true "Division ID"
// @Success      200 {object} dto.Response{data=[]org.DivisionResponse}
// @Security     BearerAuth
// @Router       /divisions/{id}/children [get]
func (h *DivisionHandler) GetChildren(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	children, err := h.divisionService.GetChildren(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", children)
}

// GetDescendants godoc
// @Summary      List full division subtree
// @Tags         divisions
// @Produce      json
// @Param        id path string true "Division ID"
// @Success      200 {object} dto.Response{data=[]org.DivisionResponse}
// @Security     BearerAuth
// @Router       /divisions/{id}/descendants [get]
func (h *DivisionHandler) GetDescendants(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	descendants, err := h.divisionService.GetDescendants(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", descendants)
}

// Transfer godoc
// @Summary      Move division to a new parent
// @Tags         divisions
// @Accept       json
// @Produce      json
// @Param        id path string true "Division ID"
// @Param        request body org.TransferRequest true "New parent"
// @Success      200 {object} dto.Response{data=org.DivisionResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /divisions/{id}/transfer [post]
func (h *DivisionHandler) Transfer(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req org.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	division, err := h.divisionService.Transfer(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Division transferred", division)
}

// Delete godoc
// @Summary      Delete division
// @Description  Divisions with children, positions or employees cannot be deleted
// @Tags         divisions
// @Produce      json
// @Param        id path string true "Division ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /divisions/{id} [delete]
func (h *DivisionHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.divisionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

type divisionMutation func(ctx context.Context, id uuid.UUID) (*org.DivisionResponse, error)

func (h *DivisionHandler) mutateDivision(c *gin.Context, message string, fn divisionMutation) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	division, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, message, division)
}
