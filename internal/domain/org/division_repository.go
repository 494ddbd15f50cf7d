package org

import (
	"context"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// DivisionRepository defines the persistence operations for divisions
type DivisionRepository interface {
	// FindByID finds a division by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Division, error)

	// FindByCode finds a division by its unique code
	FindByCode(ctx context.Context, code string) (*Division, error)

	// FindAll finds all divisions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Division, error)

	// FindChildren finds all direct children of a division
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Division, error)

	// FindRoots finds all root divisions
	FindRoots(ctx context.Context) ([]Division, error)

	// FindDescendants finds the whole subtree below a division (path prefix)
	FindDescendants(ctx context.Context, divisionID uuid.UUID) ([]Division, error)

	// Save creates or updates a division
	Save(ctx context.Context, division *Division) error

	// UpdateSubtreePaths rewrites the path prefix and shifts the level of
	// every node under oldPath (excluding the node itself)
	UpdateSubtreePaths(ctx context.Context, oldPath, newPath string, levelDelta int) error

	// Delete removes a division
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts divisions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountChildren counts direct children of a division
	CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error)

	// ExistsByCode checks whether a division with the code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
