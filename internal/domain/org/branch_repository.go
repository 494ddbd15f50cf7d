package org

import (
	"context"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BranchRepository defines the persistence operations for branches
type BranchRepository interface {
	// FindByID finds a branch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)

	// FindByCode finds a branch by its unique code
	FindByCode(ctx context.Context, code string) (*Branch, error)

	// FindAll finds all branches matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Branch, error)

	// FindChildren finds all direct children of a branch
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Branch, error)

	// FindRoots finds all root branches
	FindRoots(ctx context.Context) ([]Branch, error)

	// FindDescendants finds the whole subtree below a branch (path prefix)
	FindDescendants(ctx context.Context, branchID uuid.UUID) ([]Branch, error)

	// FindNearest finds active branches ordered by distance from a point
	FindNearest(ctx context.Context, point valueobject.GeoPoint, limit int) ([]Branch, error)

	// Save creates or updates a branch
	Save(ctx context.Context, branch *Branch) error

	// UpdateSubtreePaths rewrites the path prefix and shifts the level of
	// every node under oldPath (excluding the node itself)
	UpdateSubtreePaths(ctx context.Context, oldPath, newPath string, levelDelta int) error

	// Delete removes a branch
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts branches matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountChildren counts direct children of a branch
	CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error)

	// ExistsByCode checks whether a branch with the code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
