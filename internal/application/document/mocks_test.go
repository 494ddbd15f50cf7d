package document

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/logistics-erp/hrm/internal/domain/document"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/infrastructure/docgen"
)

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindDefault(ctx context.Context, docType document.DocumentType) (*document.Template, error) {
	args := m.Called(ctx, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindByType(ctx context.Context, docType document.DocumentType) ([]*document.Template, error) {
	args := m.Called(ctx, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*document.Template, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.Template), args.Error(1)
}

func (m *MockTemplateRepository) Save(ctx context.Context, template *document.Template) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTemplateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockDataSource struct {
	mock.Mock
}

func (m *MockDataSource) LoadData(ctx context.Context, docType document.DocumentType, params docgen.RenderParams) (*docgen.DocumentData, error) {
	args := m.Called(ctx, docType, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docgen.DocumentData), args.Error(1)
}
