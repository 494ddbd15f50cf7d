package org

import (
	"fmt"
	"strings"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxHierarchyDepth is the maximum depth of any organizational tree
// (branches, divisions, position reporting lines).
const MaxHierarchyDepth = 8

// childPath builds a materialized path for a node under the given parent path.
// Root nodes use their own ID as path.
func childPath(parentPath string, id uuid.UUID) string {
	if parentPath == "" {
		return id.String()
	}
	return parentPath + "/" + id.String()
}

// ancestorIDs extracts the ancestor chain from a materialized path,
// excluding the node itself, ordered root first.
func ancestorIDs(path string) []uuid.UUID {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	if len(parts) <= 1 {
		return nil
	}
	ancestors := make([]uuid.UUID, 0, len(parts)-1)
	for i := 0; i < len(parts)-1; i++ {
		if id, err := uuid.Parse(parts[i]); err == nil {
			ancestors = append(ancestors, id)
		}
	}
	return ancestors
}

// isAncestorPath reports whether a node with path ancestor is an ancestor of
// a node with path other.
func isAncestorPath(ancestor, other string) bool {
	if ancestor == "" || other == "" {
		return false
	}
	return strings.HasPrefix(other, ancestor+"/")
}

// checkDepth validates that placing a node under a parent at parentLevel does
// not exceed the maximum hierarchy depth.
func checkDepth(parentLevel int) error {
	if parentLevel >= MaxHierarchyDepth-1 {
		return shared.NewDomainError("MAX_DEPTH_EXCEEDED",
			fmt.Sprintf("Hierarchy depth cannot exceed %d levels", MaxHierarchyDepth))
	}
	return nil
}

// validateCode validates an organizational unit code
func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateName validates an organizational unit display name
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}
