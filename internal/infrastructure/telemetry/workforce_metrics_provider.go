// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"

	"github.com/logistics-erp/hrm/internal/domain/workforce"
)

// RepositoryWorkforceMetricsProvider implements WorkforceMetricsProvider on top
// of the employee repository's aggregation queries.
type RepositoryWorkforceMetricsProvider struct {
	employees workforce.EmployeeRepository
}

// NewRepositoryWorkforceMetricsProvider creates a new RepositoryWorkforceMetricsProvider.
func NewRepositoryWorkforceMetricsProvider(employees workforce.EmployeeRepository) *RepositoryWorkforceMetricsProvider {
	return &RepositoryWorkforceMetricsProvider{employees: employees}
}

// HeadcountByStatus returns the number of employees per employment status.
func (p *RepositoryWorkforceMetricsProvider) HeadcountByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := p.employees.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	m := make(map[string]int64, len(counts))
	for _, c := range counts {
		m[string(c.Status)] = c.Count
	}

	return m, nil
}

// HeadcountByBranch returns the number of active employees per branch.
func (p *RepositoryWorkforceMetricsProvider) HeadcountByBranch(ctx context.Context) (map[uuid.UUID]int64, error) {
	counts, err := p.employees.CountByBranch(ctx)
	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		m[c.BranchID] = c.Count
	}

	return m, nil
}
