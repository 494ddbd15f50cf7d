package document

import (
	"context"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// TemplateRepository persists document templates
type TemplateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Template, error)
	// FindDefault returns the default template for the type, or
	// shared.ErrNotFound when none is stored.
	FindDefault(ctx context.Context, docType DocumentType) (*Template, error)
	FindByType(ctx context.Context, docType DocumentType) ([]*Template, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Template, error)
	Save(ctx context.Context, template *Template) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
