package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/logistics-erp/hrm/internal/application/coverage"
)

// AssignmentHandler handles service area to branch assignment HTTP requests
type AssignmentHandler struct {
	BaseHandler
	assignmentService *coverage.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *coverage.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

// Create godoc
// @Summary      Assign service area to branch
// @Description  Lower priority wins when several branches serve the same area
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        request body coverage.CreateAssignmentRequest true "Assignment"
// @Success      201 {object} dto.Response{data=coverage.AssignmentResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req coverage.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Assignment created", assignment)
}

// SetPriority godoc
// @Summary      Change assignment priority
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        id path string true "Assignment ID"
// @Param        request body coverage.SetPriorityRequest true "New priority"
// @Success      200 {object} dto.Response{data=coverage.AssignmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assignments/{id}/priority [put]
func (h *AssignmentHandler) SetPriority(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req coverage.SetPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	assignment, err := h.assignmentService.SetPriority(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Priority updated", assignment)
}

// Activate godoc
// @Summary      Activate assignment
// @Tags         assignments
// @Produce      json
// @Param        id path string true "Assignment ID"
// @Success      200 {object} dto.Response{data=coverage.AssignmentResponse}
// @Security     BearerAuth
// @Router       /assignments/{id}/activate [post]
func (h *AssignmentHandler) Activate(c *gin.Context) {
	h.mutateAssignment(c, "Assignment activated", h.assignmentService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate assignment
// @Tags         assignments
// @Produce      json
// @Param        id path string true "Assignment ID"
// @Success      200 {object} dto.Response{data=coverage.AssignmentResponse}
// @Security     BearerAuth
// @Router       /assignments/{id}/deactivate [post]
func (h *AssignmentHandler) Deactivate(c *gin.Context) {
	h.mutateAssignment(c, "Assignment deactivated", h.assignmentService.Deactivate)
}

// BranchesForArea godoc
// @Summary      Branches serving an area
// @Description  Active assignments for the area ordered by priority
// @Tags         assignments
// @Produce      json
// @Param        areaId path string true "Service area ID"
// @Success      200 {object} dto.Response{data=[]coverage.AssignmentResponse}
// @Security     BearerAuth
// @Router       /assignments/area/{areaId} [get]
func (h *AssignmentHandler) BranchesForArea(c *gin.Context) {
	areaID, ok := h.parseIDParam(c, "areaId")
	if !ok {
		return
	}

	assignments, err := h.assignmentService.BranchesForArea(c.Request.Context(), areaID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", assignments)
}

// BranchForPoint godoc
// @Summary      Responsible branch for a point
// @Description  Resolves the covering service area for the coordinates and
// @Description  returns the highest-priority branch assigned to it.
// @Tags         assignments
// @Produce      json
// @Param        lat query number true "Latitude"
// @Param        lng query number true "Longitude"
// @Success      200 {object} dto.Response{data=coverage.BranchForPointResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assignments/branch-for-point [get]
func (h *AssignmentHandler) BranchForPoint(c *gin.Context) {
	var req coverage.LocateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.assignmentService.BranchForPoint(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", result)
}

// Delete godoc
// @Summary      Delete assignment
// @Tags         assignments
// @Produce      json
// @Param        id path string true "Assignment ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

type assignmentMutation func(ctx context.Context, id uuid.UUID) (*coverage.AssignmentResponse, error)

func (h *AssignmentHandler) mutateAssignment(c *gin.Context, message string, fn assignmentMutation) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	assignment, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, message, assignment)
}
