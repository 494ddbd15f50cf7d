package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/logistics-erp/hrm/internal/application/document"
)

// DocumentHandler handles HR document generation HTTP requests
type DocumentHandler struct {
	BaseHandler
	documentService *document.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *document.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// Render godoc
// @Summary      Render HR document
// @Description  Renders the requested document (employment certificate, leave
// @Description  request form or attendance sheet) to PDF using the default
// @Description  template for the type and returns the file bytes.
// @Tags         documents
// @Accept       json
// @Produce      application/pdf
// @Param        request body document.RenderDocumentRequest true "Document to render"
// @Success      200 {file} binary "PDF document"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents/render [post]
func (h *DocumentHandler) Render(c *gin.Context) {
	var req document.RenderDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	rendered, err := h.documentService.Render(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+rendered.FileName+`"`)
	c.Data(http.StatusOK, rendered.ContentType, rendered.Data)
}

// CreateTemplate godoc
// @Summary      Create document template
// @Description  Templates are HTML with Go template placeholders. The first
// @Description  template for a document type becomes the default.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        request body document.CreateTemplateRequest true "Template"
// @Success      201 {object} dto.Response{data=document.TemplateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents/templates [post]
func (h *DocumentHandler) CreateTemplate(c *gin.Context) {
	var req document.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	template, err := h.documentService.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Template created", template)
}

// UpdateTemplate godoc
// @Summary      Update template metadata
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Template ID"
// @Param        request body document.UpdateTemplateRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=document.TemplateResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents/templates/{id} [put]
func (h *DocumentHandler) UpdateTemplate(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req document.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	template, err := h.documentService.UpdateTemplate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Template updated", template)
}

// UpdateTemplateContent godoc
// @Summary      Replace template content
// @Description  The new content must parse as a valid template
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Template ID"
// @Param        request body document.UpdateTemplateContentRequest true "New content"
// @Success      200 {object} dto.Response{data=document.TemplateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents/templates/{id}/content [put]
func (h *DocumentHandler) UpdateTemplateContent(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req document.UpdateTemplateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	template, err := h.documentService.UpdateTemplateContent(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Template content updated", template)
}

// SetDefaultTemplate godoc
// @Summary      Make template the default for its document type
// @Tags         documents
// @Produce      json
// @Param        id path string true "Template ID"
// @Success      200 {object} dto.Response{data=document.TemplateResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents/templates/{id}/default [post]
func (h *DocumentHandler) SetDefaultTemplate(c *gin.Context) {
	h.mutateTemplate(c, "Default template set", h.documentService.SetDefaultTemplate)
}

// ActivateTemplate godoc
// @Summary      Activate template
// @Tags         documents
// @Produce      json
// @Param        id path string true "Template ID"
// @Success      200 {object} dto.Response{data=document.TemplateResponse}
// @Security     BearerAuth
// @Router       /documents/templates/{id}/activate [post]
func (h *DocumentHandler) ActivateTemplate(c *gin.Context) {
	h.mutateTemplate(c, "Template activated", h.documentService.ActivateTemplate)
}

// DeactivateTemplate godoc
// @Summary      Deactivate template
// @Description  The default template for a type cannot be deactivated
// @Tags         documents
// @Produce      json
// @Param        id path string true "Template ID"
// @Success      200 {object} dto.Response{data=document.TemplateResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents/templates/{id}/deactivate [post]
func (h *DocumentHandler) DeactivateTemplate(c *gin.Context) {
	h.mutateTemplate(c, "Template deactivated", h.documentService.DeactivateTemplate)
}

// GetTemplate godoc
// @Summary      Get template
// @Tags         documents
// @Produce      json
// @Param        id path string true "Template ID"
// @Success      200 {object} dto.Response{data=document.TemplateResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents/templates/{id} [get]
func (h *DocumentHandler) GetTemplate(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	template, err := h.documentService.GetTemplate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "OK", template)
}

// ListTemplates godoc
// @Summary      List templates
// @Tags         documents
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        document_type query string false "Filter by document type"
// @Success      200 {object} dto.Response{data=[]document.TemplateResponse}
// @Security     BearerAuth
// @Router       /documents/templates [get]
func (h *DocumentHandler) ListTemplates(c *gin.Context) {
	var filter document.ListTemplatesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.documentService.ListTemplates(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, "OK", result.Items, result.Page, result.PageSize, result.Total)
}

// DeleteTemplate godoc
// @Summary      Delete template
// @Description  The default template for a type cannot be deleted
// @Tags         documents
// @Produce      json
// @Param        id path string true "Template ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents/templates/{id} [delete]
func (h *DocumentHandler) DeleteTemplate(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.DeleteTemplate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

type templateMutation func(ctx context.Context, id uuid.UUID) (*document.TemplateResponse, error)

func (h *DocumentHandler) mutateTemplate(c *gin.Context, message string, fn templateMutation) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	template, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, message, template)
}
