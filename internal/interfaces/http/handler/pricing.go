package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/logistics-erp/hrm/internal/application/coverage"
)

// PricingHandler handles service area pricing HTTP requests
type PricingHandler struct {
	BaseHandler
	pricingService *coverage.PricingService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingService *coverage.PricingService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
	}
}

// Create godoc
// @Summary      Create pricing for a service area
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request body coverage.CreatePricingRequest true "Pricing"
// @Success      201 {object} dto.Response{data=coverage.PricingResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing [post]
func (h *PricingHandler) Create(c *gin.Context) {
	var req coverage.CreatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	pricing, err := h.pricingService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Pricing created", pricing)
}

// UpdateRates godoc
// @Summary      Update pricing rates
// @Description  Invalidates cached quotes for the pricing's service area
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        id path string true "Pricing ID"
// @Param        request body coverage.UpdatePricingRequest true "New rates"
// @Success      200 {object} dto.Response{data=coverage.PricingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/{id}/rates [put]
func (h *PricingHandler) UpdateRates(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req coverage.UpdatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	pricing, err := h.pricingService.UpdateRates(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Rates updated", pricing)
}

// Activate godoc
// @Summary      Activate pricing
// @Tags         pricing
// @Produce      json
// @Param        id path string true "Pricing ID"
// @Success      200 {object} dto.Response{data=coverage.PricingResponse}
// @Security     BearerAuth
// @Router       /pricing/{id}/activate [post]
func (h *PricingHandler) Activate(c *gin.Context) {
	h.mutatePricing(c, "Pricing activated", h.pricingService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate pricing
// @Tags         pricing
// @Produce      json
// @Param        id path string true "Pricing ID"
// @Success      200 {object} dto.Response{data=coverage.PricingResponse}
// @Security     BearerAuth
// @Router       /pricing/{id}/deactivate [post]
func (h *PricingHandler) Deactivate(c *gin.Context) {
	h.mutatePricing(c, "Pricing deactivated", h.pricingService.Deactivate)
}

// Get godoc
// @Summary      Get pricing
// @Tags         pricing
// @Produce      json
// @Param        id path string true "Pricing ID"
// @Success      200 {object} dto.Response{data=coverage.PricingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/{id} [get]
func (h *PricingHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	pricing, err := h.pricingService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", pricing)
}

// ListByArea godoc
// @Summary      Pricing entries for a service area
// @Tags         pricing
// @Produce      json
// @Param        areaId path string true "Service area ID"
// @Success      200 {object} dto.Response{data=[]coverage.PricingResponse}
// @Security     BearerAuth
// @Router       /pricing/area/{areaId} [get]
func (h *PricingHandler) ListByArea(c *gin.Context) {
	areaID, ok := h.parseIDParam(c, "areaId")
	if !ok {
		return
	}

	pricings, err := h.pricingService.ListByArea(c.Request.Context(), areaID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", pricings)
}

// Quote godoc
// @Summary      Compute a delivery quote
// @Description  Locates the service area covering the destination, applies the
// @Description  active pricing for the service type and returns the price
// @Description  breakdown. Quotes are cached briefly.
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request body coverage.QuoteRequest true "Quote parameters"
// @Success      200 {object} dto.Response{data=coverage.QuoteResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/quote [post]
func (h *PricingHandler) Quote(c *gin.Context) {
	var req coverage.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	quote, err := h.pricingService.Quote(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", quote)
}

// Delete godoc
// @Summary      Delete pricing
// @Tags         pricing
// @Produce      json
// @Param        id path string true "Pricing ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/{id} [delete]
func (h *PricingHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.pricingService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

type pricingMutation func(ctx context.Context, id uuid.UUID) (*coverage.PricingResponse, error)

func (h *PricingHandler) mutatePricing(c *gin.Context, message string, fn pricingMutation) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	pricing, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, message, pricing)
}
