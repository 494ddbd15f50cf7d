package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/logistics-erp/hrm/internal/domain/document"
)

// RenderDocumentRequest renders one document to PDF
type RenderDocumentRequest struct {
	Type       string            `json:"type" binding:"required,oneof=employment_certificate leave_request_form attendance_sheet"`
	EmployeeID uuid.UUID         `json:"employee_id"`
	Params     map[string]string `json:"params"`
}

// RenderedDocument is the produced PDF
type RenderedDocument struct {
	FileName    string
	ContentType string
	Data        []byte
}

// MarginsInput carries page margins in millimeters
type MarginsInput struct {
	Top    float64 `json:"top" binding:"min=0"`
	Right  float64 `json:"right" binding:"min=0"`
	Bottom float64 `json:"bottom" binding:"min=0"`
	Left   float64 `json:"left" binding:"min=0"`
}

// CreateTemplateRequest stores a custom template
type CreateTemplateRequest struct {
	DocumentType string        `json:"document_type" binding:"required,oneof=employment_certificate leave_request_form attendance_sheet"`
	Name         string        `json:"name" binding:"required,max=100"`
	Description  string        `json:"description" binding:"max=500"`
	Content      string        `json:"content" binding:"required"`
	PaperSize    string        `json:"paper_size" binding:"omitempty,oneof=A4 A5 letter"`
	Orientation  string        `json:"orientation" binding:"omitempty,oneof=portrait landscape"`
	Margins      *MarginsInput `json:"margins"`
}

// UpdateTemplateRequest changes a template's name and description
type UpdateTemplateRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateTemplateContentRequest replaces the template HTML
type UpdateTemplateContentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListTemplatesFilter narrows template listings
type ListTemplatesFilter struct {
	DocumentType string `form:"document_type" binding:"omitempty,oneof=employment_certificate leave_request_form attendance_sheet"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// MarginsResponse is page margins in responses
type MarginsResponse struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// TemplateResponse represents a template in responses
type TemplateResponse struct {
	ID           uuid.UUID       `json:"id"`
	DocumentType string          `json:"document_type"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Content      string          `json:"content,omitempty"`
	PaperSize    string          `json:"paper_size"`
	Orientation  string          `json:"orientation"`
	Margins      MarginsResponse `json:"margins"`
	IsDefault    bool            `json:"is_default"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToTemplateResponse maps a template to its response shape. Content is
// included only when withContent is set; listings stay lean.
func ToTemplateResponse(tpl *document.Template, withContent bool) *TemplateResponse {
	resp := &TemplateResponse{
		ID:           tpl.ID,
		DocumentType: string(tpl.DocumentType),
		Name:         tpl.Name,
		Description:  tpl.Description,
		PaperSize:    string(tpl.PaperSize),
		Orientation:  string(tpl.Orientation),
		Margins: MarginsResponse{
			Top:    tpl.Margins.Top,
			Right:  tpl.Margins.Right,
			Bottom: tpl.Margins.Bottom,
			Left:   tpl.Margins.Left,
		},
		IsDefault: tpl.IsDefault,
		Active:    tpl.Active,
		CreatedAt: tpl.CreatedAt,
		UpdatedAt: tpl.UpdatedAt,
	}
	if withContent {
		resp.Content = tpl.Content
	}
	return resp
}
