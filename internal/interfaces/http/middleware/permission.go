package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/logistics-erp/hrm/internal/domain/identity"
	"github.com/logistics-erp/hrm/internal/interfaces/http/dto"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	// RoleStore resolves role-based permissions for tokens that carry
	// role IDs but no inline permission list (remote-issued tokens do
	// this). Optional; without it such tokens are denied.
	RoleStore identity.RoleRepository
	Logger    *zap.Logger
}

// RequirePermission creates middleware that requires a specific permission
func RequirePermission(permission string) gin.HandlerFunc {
	return RequireAnyPermissionWithConfig(PermissionConfig{}, permission)
}

// RequirePermissionWithConfig creates middleware that requires a specific
// permission, with role-store fallback
func RequirePermissionWithConfig(permission string, cfg PermissionConfig) gin.HandlerFunc {
	return RequireAnyPermissionWithConfig(cfg, permission)
}

// RequireAnyPermission creates middleware that passes when the caller holds
// at least one of the listed permissions
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return RequireAnyPermissionWithConfig(PermissionConfig{}, permissions...)
}

// RequireAnyPermissionWithConfig creates middleware that passes when the
// caller holds at least one of the listed permissions. Wildcard grants
// ("*", "hr.employee:*") are honored both on the token and on roles.
func RequireAnyPermissionWithConfig(cfg PermissionConfig, permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			denyPermission(c, cfg, permissions, "no authentication claims in context")
			return
		}

		if claims.HasAnyPermission(permissions...) {
			c.Next()
			return
		}

		// Tokens from the central identity service may carry roles only;
		// resolve them before denying.
		if len(claims.Permissions) == 0 && len(claims.RoleIDs) > 0 && cfg.RoleStore != nil {
			if roleAllowsAny(c, cfg, claims.RoleIDs, permissions) {
				c.Next()
				return
			}
		}

		denyPermission(c, cfg, permissions, "caller lacks required permission")
	}
}

// RequireAllPermissions creates middleware that passes only when the caller
// holds every listed permission
func RequireAllPermissions(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil || !claims.HasAllPermissions(permissions...) {
			denyPermission(c, PermissionConfig{}, permissions, "caller lacks required permissions")
			return
		}
		c.Next()
	}
}

// RequireResource creates middleware that checks a resource permission with
// the action derived from the HTTP method (GET read, POST create,
// PUT/PATCH update, DELETE delete)
func RequireResource(resource string) gin.HandlerFunc {
	return RequireResourceWithConfig(resource, PermissionConfig{})
}

// RequireResourceWithConfig creates resource middleware with a role-store
// fallback
func RequireResourceWithConfig(resource string, cfg PermissionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		permission := resource + ":" + methodToAction(c.Request.Method)
		RequireAnyPermissionWithConfig(cfg, permission)(c)
	}
}

func roleAllowsAny(c *gin.Context, cfg PermissionConfig, roleIDs []string, permissions []string) bool {
	ids := make([]uuid.UUID, 0, len(roleIDs))
	for _, raw := range roleIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return false
		}
		ids = append(ids, id)
	}
	roles, err := cfg.RoleStore.FindByIDs(c.Request.Context(), ids)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Error("role permission lookup failed", zap.Error(err))
		}
		return false
	}
	for _, role := range roles {
		if !role.IsEnabled {
			continue
		}
		for _, required := range permissions {
			if role.Allows(required) {
				return true
			}
		}
	}
	return false
}

// methodToAction converts an HTTP method to a permission action
func methodToAction(method string) string {
	switch strings.ToUpper(method) {
	case http.MethodGet:
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

func denyPermission(c *gin.Context, cfg PermissionConfig, required []string, reason string) {
	if cfg.Logger != nil {
		claims := GetJWTClaims(c)
		userID := ""
		if claims != nil {
			userID = claims.UserID
		}
		cfg.Logger.Warn("permission denied",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.Strings("required", required),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method))
	}
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient permissions"))
}
