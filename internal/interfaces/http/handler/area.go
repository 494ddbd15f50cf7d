package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/logistics-erp/hrm/internal/application/coverage"
)

// AreaHandler handles service area HTTP requests
type AreaHandler struct {
	BaseHandler
	areaService *coverage.AreaService
}

// NewAreaHandler creates a new service area handler
func NewAreaHandler(areaService *coverage.AreaService) *AreaHandler {
	return &AreaHandler{
		areaService: areaService,
	}
}

// Create godoc
// @Summary      Create service area
// @Description  The boundary polygon must be closed; the first and last
// @Description  coordinates must match.
// @Tags         service-areas
// @Accept       json
// @Produce      json
// @Param        request body coverage.CreateServiceAreaRequest true "Service area"
// @Success      201 {object} dto.Response{data=coverage.ServiceAreaResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /service-areas [post]
func (h *AreaHandler) Create(c *gin.Context) {
	var req coverage.CreateServiceAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	area, err := h.areaService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Service area created", area)
}

// Update godoc
// @Summary      Update service area
// @Tags         service-areas
// @Accept       json
// @Produce      json
// @Param        id path string true "Service area ID"
// @Param        request body coverage.UpdateServiceAreaRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=coverage.ServiceAreaResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /service-areas/{id} [put]
func (h *AreaHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req coverage.UpdateServiceAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	area, err := h.areaService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Service area updated", area)
}

// UpdatePolygon godoc
// @Summary      Replace area boundary polygon
// @Tags         service-areas
// @Accept       json
// @Produce      json
// @Param        id path string true "Service area ID"
// @Param        request body coverage.UpdatePolygonRequest true "New boundary"
// @Success      200 {object} dto.Response{data=coverage.ServiceAreaResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /service-areas/{id}/polygon [put]
func (h *AreaHandler) UpdatePolygon(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req coverage.UpdatePolygonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	area, err := h.areaService.UpdatePolygon(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Polygon updated", area)
}

// Activate godoc
// @Summary      Activate service area
// @Tags         service-areas
// @Produce      json
// @Param        id path string true "Service area ID"
// @Success      200 {object} dto.Response{data=coverage.ServiceAreaResponse}
// @Security     BearerAuth
// @Router       /service-areas/{id}/activate [post]
func (h *AreaHandler) Activate(c *gin.Context) {
	h.mutateArea(c, "Service area activated", h.areaService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate service area
// @Tags         service-areas
// @Produce      json
// @Param        id path string true "Service area ID"
// @Success      200 {object} dto.Response{data=coverage.ServiceAreaResponse}
// @Security     BearerAuth
// @Router       /service-areas/{id}/deactivate [post]
func (h *AreaHandler) Deactivate(c *gin.Context) {
	h.mutateArea(c, "Service area deactivated", h.areaService.Deactivate)
}

// Get godoc
// @Summary      Get service area
// @Tags         service-areas
// @Produce      json
// @Param        id path string true "Service area ID"
// @Success      200 {object} dto.Response{data=coverage.ServiceAreaResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /service-areas/{id} [get]
func (h *AreaHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	area, err := h.areaService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", area)
}

// List godoc
// @Summary      List service areas
// @Tags         service-areas
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        search query string false "Search by code or name"
// @Param        status query string false "Filter by status"
// @Param        service_type query string false "Filter by service type"
// @Success      200 {object} dto.Response{data=[]coverage.ServiceAreaResponse}
// @Security     BearerAuth
// @Router       /service-areas [get]
func (h *AreaHandler) List(c *gin.Context) {
	var filter coverage.ListServiceAreasFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.areaService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, "OK", result.Items, result.Page, result.PageSize, result.Total)
}

// Locate godoc
// @Summary      Areas covering a point
// @Description  Returns the active service areas whose polygon contains the
// @Description  given coordinates.
// @Tags         service-areas
// @Produce      json
// @Param        lat query number true "Latitude"
// @Param        lng query number true "Longitude"
// @Success      200 {object} dto.Response{data=[]coverage.ServiceAreaResponse}
// @Security     BearerAuth
// @Router       /service-areas/locate [get]
func (h *AreaHandler) Locate(c *gin.Context) {
	var req coverage.LocateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	areas, err := h.areaService.Locate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", areas)
}

// Near godoc
// @Summary      Areas near a point
// @Description  Returns active service areas within the given distance of the
// @Description  coordinates, nearest first.
// @Tags         service-areas
// @Produce      json
// @Param        lat query number true "Latitude"
// @Param        lng query number true "Longitude"
// @Param        max_distance_m query number false "Maximum distance in meters"
// @Param        limit query int false "Maximum results"
// @Success      200 {object} dto.Response{data=[]coverage.ServiceAreaResponse}
// @Security     BearerAuth
// @Router       /service-areas/near [get]
func (h *AreaHandler) Near(c *gin.Context) {
	var req coverage.NearRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	areas, err := h.areaService.Near(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", areas)
}

// Delete godoc
// @Summary      Delete service area
// @Description  Areas with active assignments or pricing cannot be deleted
// @Tags         service-areas
// @Produce      json
// @Param        id path string true "Service area ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /service-areas/{id} [delete]
func (h *AreaHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.areaService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

type areaMutation func(ctx context.Context, id uuid.UUID) (*coverage.ServiceAreaResponse, error)

func (h *AreaHandler) mutateArea(c *gin.Context, message string, fn areaMutation) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	area, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, message, area)
}
