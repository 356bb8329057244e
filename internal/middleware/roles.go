package middleware

import (
	"net/http"

	"github.com/KrishKoria/odoo-final/internal/profile"
	"github.com/gin-gonic/gin"
)

// RequireRole allows the request through only when the authenticated caller
// holds one of the given roles. Must run after AuthMiddleware.
func RequireRole(requiredRoles ...profile.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetRoleFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "You don't have permission to access this resource",
		})
	}
}

// AdminOnly is a convenience middleware for admin-only access
func AdminOnly() gin.HandlerFunc {
	return RequireRole(profile.RoleAdmin)
}

// OwnerOrAdmin is a convenience middleware for facility-owner or admin access
func OwnerOrAdmin() gin.HandlerFunc {
	return RequireRole(profile.RoleFacilityOwner, profile.RoleAdmin)
}
