// Package providers implements docgen.DataProvider for each generated
// document type, assembling template data from the domain repositories.
package providers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/logistics-erp/hrm/internal/domain/document"
	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
	"github.com/logistics-erp/hrm/internal/infrastructure/docgen"
)

// Registry looks up the DataProvider for a document type
type Registry struct {
	mu        sync.RWMutex
	providers map[document.DocumentType]docgen.DataProvider
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{providers: make(map[document.DocumentType]docgen.DataProvider)}
}

// Register adds a provider, replacing any existing one for its type
func (r *Registry) Register(provider docgen.DataProvider) {
	if provider == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.DocumentType()] = provider
}

// Provider returns the provider for the type
func (r *Registry) Provider(docType document.DocumentType) (docgen.DataProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[docType]
	return provider, ok
}

// LoadData assembles data through the registered provider
func (r *Registry) LoadData(ctx context.Context, docType document.DocumentType, params docgen.RenderParams) (*docgen.DocumentData, error) {
	provider, ok := r.Provider(docType)
	if !ok {
		return nil, fmt.Errorf("no data provider registered for document type %s", docType)
	}
	return provider.GetData(ctx, params)
}

// RegisteredTypes lists the types with a provider
func (r *Registry) RegisteredTypes() []document.DocumentType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]document.DocumentType, 0, len(r.providers))
	for docType := range r.providers {
		types = append(types, docType)
	}
	return types
}

// directory resolves the employee header shared by all documents
type directory struct {
	employeeRepo workforce.EmployeeRepository
	branchRepo   org.BranchRepository
	divisionRepo org.DivisionRepository
	positionRepo org.PositionRepository
}

func (d directory) employeeInfo(ctx context.Context, employee *workforce.Employee) docgen.EmployeeInfo {
	info := docgen.EmployeeInfo{
		ID:             employee.ID,
		EmployeeNo:     employee.EmployeeNo,
		FullName:       employee.FullName(),
		NationalID:     employee.NationalID,
		HireDate:       employee.HireDate,
		EmploymentType: string(employee.EmploymentType),
		Status:         string(employee.Status),
	}

	// Org lookups are best effort: a renamed or removed unit leaves
	// the field blank rather than failing the document.
	if branch, err := d.branchRepo.FindByID(ctx, employee.BranchID); err == nil {
		info.BranchName = branch.Name
		info.BranchAddress = formatAddress(branch.Address)
	}
	if division, err := d.divisionRepo.FindByID(ctx, employee.DivisionID); err == nil {
		info.DivisionName = division.Name
	}
	if position, err := d.positionRepo.FindByID(ctx, employee.PositionID); err == nil {
		info.PositionTitle = position.Title
	}
	return info
}

func formatAddress(a org.Address) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.State, a.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
