package org

import (
	"context"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// PositionRepository defines the persistence operations for positions
type PositionRepository interface {
	// FindByID finds a position by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Position, error)

	// FindByCode finds a position by its unique code
	FindByCode(ctx context.Context, code string) (*Position, error)

	// FindAll finds all positions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Position, error)

	// FindByDivision finds all positions belonging to a division
	FindByDivision(ctx context.Context, divisionID uuid.UUID) ([]Position, error)

	// FindDirectReports finds positions reporting directly to the given one
	FindDirectReports(ctx context.Context, positionID uuid.UUID) ([]Position, error)

	// FindDescendants finds the whole reporting subtree below a position
	FindDescendants(ctx context.Context, positionID uuid.UUID) ([]Position, error)

	// Save creates or updates a position
	Save(ctx context.Context, position *Position) error

	// UpdateSubtreePaths rewrites the path prefix and shifts the level of
	// every node under oldPath (excluding the node itself)
	UpdateSubtreePaths(ctx context.Context, oldPath, newPath string, levelDelta int) error

	// Delete removes a position
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts positions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountDirectReports counts positions reporting directly to the given one
	CountDirectReports(ctx context.Context, positionID uuid.UUID) (int64, error)

	// ExistsByCode checks whether a position with the code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
