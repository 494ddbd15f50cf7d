package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/logistics-erp/hrm/internal/domain/document"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/infrastructure/docgen"
)

// DataSource assembles template data per document type. Implemented by
// the provider registry in infrastructure/docgen/providers.
type DataSource interface {
	LoadData(ctx context.Context, docType document.DocumentType, params docgen.RenderParams) (*docgen.DocumentData, error)
}

// DocumentService renders HR documents and manages their templates
type DocumentService struct {
	templateRepo document.TemplateRepository
	dataSource   DataSource
	engine       *docgen.TemplateEngine
	renderer     docgen.Renderer
	logger       *zap.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	templateRepo document.TemplateRepository,
	dataSource DataSource,
	engine *docgen.TemplateEngine,
	renderer docgen.Renderer,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		templateRepo: templateRepo,
		dataSource:   dataSource,
		engine:       engine,
		renderer:     renderer,
		logger:       logger,
	}
}

// Render produces the PDF for one document. The stored default template
// for the type drives the rendering, falling back to the built-in one.
func (s *DocumentService) Render(ctx context.Context, req RenderDocumentRequest) (*RenderedDocument, error) {
	docType := document.DocumentType(req.Type)
	if !docType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown document type")
	}

	data, err := s.dataSource.LoadData(ctx, docType, docgen.RenderParams{
		EmployeeID: req.EmployeeID,
		Params:     req.Params,
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Referenced record not found")
		}
		s.logger.Warn("Failed to assemble document data",
			zap.String("type", req.Type), zap.Error(err))
		return nil, shared.NewDomainError("INVALID_INPUT", "Could not assemble document data")
	}

	tpl, err := s.resolveTemplate(ctx, docType)
	if err != nil {
		return nil, err
	}

	html, err := s.engine.Render(tpl, data)
	if err != nil {
		s.logger.Error("Template rendering failed",
			zap.String("type", req.Type), zap.Error(err))
		return nil, shared.NewDomainError("RENDER_FAILED", "Document rendering failed")
	}

	result, err := s.renderer.Render(ctx, &docgen.RenderRequest{
		HTML:        html,
		PaperSize:   tpl.PaperSize,
		Orientation: tpl.Orientation,
		Margins:     tpl.Margins,
		Title:       data.Title,
	})
	if err != nil {
		s.logger.Error("PDF rendering failed",
			zap.String("type", req.Type), zap.Error(err))
		return nil, shared.NewDomainError("RENDER_FAILED", "Document rendering failed")
	}

	return &RenderedDocument{
		FileName:    documentFileName(docType, data),
		ContentType: "application/pdf",
		Data:        result.PDFData,
	}, nil
}

// resolveTemplate picks the stored default or the built-in template
func (s *DocumentService) resolveTemplate(ctx context.Context, docType document.DocumentType) (*document.Template, error) {
	tpl, err := s.templateRepo.FindDefault(ctx, docType)
	if err == nil && tpl.CanRender() {
		return tpl, nil
	}
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to load default template", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load template")
	}

	builtin, err := docgen.BuiltinTemplate(docType)
	if err != nil {
		s.logger.Error("No built-in template", zap.String("type", string(docType)), zap.Error(err))
		return nil, shared.NewDomainError("RENDER_FAILED", "No template available for this document type")
	}
	return builtin, nil
}

func documentFileName(docType document.DocumentType, data *docgen.DocumentData) string {
	stamp := time.Now().Format("20060102")
	if data.Employee.EmployeeNo != "" {
		return fmt.Sprintf("%s-%s-%s.pdf", docType, data.Employee.EmployeeNo, stamp)
	}
	return fmt.Sprintf("%s-%s.pdf", docType, stamp)
}

// CreateTemplate stores a custom template
func (s *DocumentService) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*TemplateResponse, error) {
	tpl, err := document.NewTemplate(document.DocumentType(req.DocumentType), req.Name, req.Content)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := tpl.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	paperSize := tpl.PaperSize
	if req.PaperSize != "" {
		paperSize = document.PaperSize(req.PaperSize)
	}
	orientation := tpl.Orientation
	if req.Orientation != "" {
		orientation = document.Orientation(req.Orientation)
	}
	margins := tpl.Margins
	if req.Margins != nil {
		margins = document.Margins{
			Top:    req.Margins.Top,
			Right:  req.Margins.Right,
			Bottom: req.Margins.Bottom,
			Left:   req.Margins.Left,
		}
	}
	if err := tpl.SetLayout(paperSize, orientation, margins); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		s.logger.Error("Failed to save template", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create template")
	}

	s.logger.Info("Document template created",
		zap.String("id", tpl.ID.String()),
		zap.String("type", string(tpl.DocumentType)),
		zap.String("name", tpl.Name))
	return ToTemplateResponse(tpl, true), nil
}

// UpdateTemplate changes a template's name and description
func (s *DocumentService) UpdateTemplate(ctx context.Context, id uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	tpl, err := s.findTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tpl.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		s.logger.Error("Failed to save template", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update template")
	}
	return ToTemplateResponse(tpl, true), nil
}

// UpdateTemplateContent replaces the template HTML after a parse check
func (s *DocumentService) UpdateTemplateContent(ctx context.Context, id uuid.UUID, req UpdateTemplateContentRequest) (*TemplateResponse, error) {
	tpl, err := s.findTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	// Reject templates that cannot even parse; execution errors against
	// real data still surface at render time.
	if _, err := s.engine.RenderString("check", req.Content, docgen.NewDocumentData(tpl.DocumentType, "")); err != nil {
		var renderErr *docgen.RenderError
		if errors.As(err, &renderErr) && renderErr.Code == docgen.ErrCodeInvalidHTML {
			return nil, shared.NewDomainError("INVALID_INPUT", "Template does not parse")
		}
	}

	if err := tpl.UpdateContent(req.Content); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		s.logger.Error("Failed to save template", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update template")
	}
	return ToTemplateResponse(tpl, true), nil
}

// SetDefaultTemplate makes the template the default for its type,
// clearing the flag on the previous default.
func (s *DocumentService) SetDefaultTemplate(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	tpl, err := s.findTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if tpl.IsDefault {
		return ToTemplateResponse(tpl, true), nil
	}

	current, err := s.templateRepo.FindDefault(ctx, tpl.DocumentType)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to load current default", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to set default template")
	}
	if current != nil {
		current.UnsetDefault()
		if err := s.templateRepo.Save(ctx, current); err != nil {
			s.logger.Error("Failed to clear previous default", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to set default template")
		}
	}

	if err := tpl.SetAsDefault(); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		s.logger.Error("Failed to save template", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to set default template")
	}

	s.logger.Info("Default document template changed",
		zap.String("type", string(tpl.DocumentType)),
		zap.String("id", tpl.ID.String()))
	return ToTemplateResponse(tpl, true), nil
}

// ActivateTemplate puts a template back into use
func (s *DocumentService) ActivateTemplate(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	tpl, err := s.findTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	tpl.Activate()
	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		s.logger.Error("Failed to save template", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to activate template")
	}
	return ToTemplateResponse(tpl, true), nil
}

// DeactivateTemplate withdraws a non-default template
func (s *DocumentService) DeactivateTemplate(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	tpl, err := s.findTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tpl.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		s.logger.Error("Failed to save template", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate template")
	}
	return ToTemplateResponse(tpl, true), nil
}

// GetTemplate returns one template with its content
func (s *DocumentService) GetTemplate(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	tpl, err := s.findTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTemplateResponse(tpl, true), nil
}

// ListTemplates returns templates, optionally narrowed to a type
func (s *DocumentService) ListTemplates(ctx context.Context, req ListTemplatesFilter) (*shared.Paginated[*TemplateResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.DocumentType != "" {
		filter.Filters["document_type"] = req.DocumentType
	}

	templates, err := s.templateRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list templates", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list templates")
	}
	total, err := s.templateRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count templates", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list templates")
	}

	items := make([]*TemplateResponse, len(templates))
	for i, tpl := range templates {
		items[i] = ToTemplateResponse(tpl, false)
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// DeleteTemplate removes a template. The default for a type cannot be
// deleted while the flag is on it.
func (s *DocumentService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	tpl, err := s.findTemplate(ctx, id)
	if err != nil {
		return err
	}
	if tpl.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "Set another template as default before deleting this one")
	}
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete template", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete template")
	}
	return nil
}

func (s *DocumentService) findTemplate(ctx context.Context, id uuid.UUID) (*document.Template, error) {
	tpl, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		s.logger.Error("Failed to load template", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load template")
	}
	return tpl, nil
}
