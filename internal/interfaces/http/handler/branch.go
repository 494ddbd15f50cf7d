package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/logistics-erp/hrm/internal/application/org"
)

// BranchHandler handles branch hierarchy HTTP requests
type BranchHandler struct {
	BaseHandler
	branchService *org.BranchService
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *org.BranchService) *BranchHandler {
	return &BranchHandler{
		branchService: branchService,
	}
}

// Create godoc
// @Summary      Create branch
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        request body org.CreateBranchRequest true "Branch"
// @Success      201 {object} dto.Response{data=org.BranchResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	var req org.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	branch, err := h.branchService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Branch created", branch)
}

// GetByID godoc
// @Summary      Get branch
// @Tags         branches
// @Produce      json
// @Param        id path string true "Branch ID"
// @Success      200 {object} dto.Response{data=org.BranchResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /branches/{id} [get]
func (h *BranchHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	branch, err := h.branchService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", branch)
}

// GetByCode godoc
// @Summary      Get branch by code
// @Tags         branches
// @Produce      json
// @Param        code path string true "Branch code"
// @Success      200 {object} dto.Response{data=org.BranchResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /branches/code/{code} [get]
func (h *BranchHandler) GetByCode(c *gin.Context) {
	branch, err := h.branchService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", branch)
}

// List godoc
// @Summary      List branches
// @Tags         branches
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        status query string false "Filter by status" Enums(active, inactive, closed)
// @Param        type query string false "Filter by type" Enums(hub, depot, station, office)
// @Param        parent_id query string false "Filter by parent branch"
// @Success      200 {object} dto.Response{data=[]org.BranchResponse}
// @Security     BearerAuth
// @Router       /branches [get]
func (h *BranchHandler) List(c *gin.Context) {
	var filter org.ListBranchesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.branchService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, "OK", result.Items, result.Page, result.PageSize, result.Total)
}

// Update godoc
// @Summary      Update branch
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        id path string true "Branch ID"
// @Param        request body org.UpdateBranchRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=org.BranchResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /branches/{id} [put]
func (h *BranchHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req org.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	branch, err := h.branchService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Branch updated", branch)
}

// ChangeStatus godoc
// @Summary      Change branch status
// @Description  Transitions between active, inactive and closed. Closing
// @Description  requires the branch to have no active children.
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        id path string true "Branch ID"
// @Param        request body org.ChangeStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=org.BranchResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /branches/{id}/status [put]
func (h *BranchHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req org.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	branch, err := h.branchService.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Status changed", branch)
}

// UpdateMetrics godoc
// @Summary      Update branch metrics
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        id path string true "Branch ID"
// @Param        request body org.MetricsInput true "Operational metrics"
// @Success      200 {object} dto.Response{data=org.BranchResponse}
// @Security     BearerAuth
// @Router       /branches/{id}/metrics [put]
func (h *BranchHandler) UpdateMetrics(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req org.MetricsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	branch, err := h.branchService.UpdateMetrics(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Metrics updated", branch)
}

// UpdateResources godoc
// @Summary      Update branch resources
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        id path string true "Branch ID"
// @Param        request body org.ResourcesInput true "Resource counts"
// @Success      200 {object} dto.Response{data=org.BranchResponse}
// @Security     BearerAuth
// @Router       /branches/{id}/resources [put]
func (h *BranchHandler) UpdateResources(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req org.ResourcesInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	branch, err := h.branchService.UpdateResources(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Resources updated", branch)
}

// GetChildren godoc
// @Summary      List direct children
// @Tags         branches
// @Produce      json
// @Param        id path string true "Branch ID"
// @Success      200 {object} dto.Response{data=[]org.BranchResponse}
// @Security     BearerAuth
// @Router       /branches/{id}/children [get]
func (h *BranchHandler) GetChildren(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	children, err := h.branchService.GetChildren(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", children)
}

// GetDescendants godoc
// @Summary      List full subtree
// @Tags         branches
// @Produce      json
// @Param        id path string true "Branch ID"
// @Success      200 {object} dto.Response{data=[]org.BranchResponse}
// @Security     BearerAuth
// @Router       /branches/{id}/descendants [get]
func (h *BranchHandler) GetDescendants(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	descendants, err := h.branchService.GetDescendants(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", descendants)
}

// Transfer godoc
// @Summary      Move branch to a new parent
// @Description  Rewrites the materialized path of the branch and its entire
// @Description  subtree. Moving under a descendant is rejected.
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        id path string true "Branch ID"
// @Param        request body org.TransferRequest true "New parent"
// @Success      200 {object} dto.Response{data=org.BranchResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /branches/{id}/transfer [post]
func (h *BranchHandler) Transfer(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req org.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	branch, err := h.branchService.Transfer(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Branch transferred", branch)
}

// FindNearest godoc
// @Summary      Find nearest branches
// @Description  Geospatial lookup ordered by distance from the given point
// @Tags         branches
// @Produce      json
// @Param        lat query number true "Latitude"
// @Param        lng query number true "Longitude"
// @Param        limit query int false "Maximum results (default 5)"
// @Success      200 {object} dto.Response{data=[]org.BranchResponse}
// @Security     BearerAuth
// @Router       /branches/nearest [get]
func (h *BranchHandler) FindNearest(c *gin.Context) {
	var query org.NearestBranchesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	branches, err := h.branchService.FindNearest(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", branches)
}

// Delete godoc
// @Summary      Delete branch
// @Description  Branches with children or assigned employees cannot be deleted
// @Tags         branches
// @Produce      json
// @Param        id path string true "Branch ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /branches/{id} [delete]
func (h *BranchHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.branchService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
