package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/KrishKoria/odoo-final/internal/profile"
	"github.com/KrishKoria/odoo-final/pkg/token"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	AuthUserIDKey = "userID"
	AuthRoleKey   = "userRole"
)

// AuthMiddleware validates the bearer token and loads the caller's profile.
// On success the user id and role are stored in the gin context.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	repo := profile.NewProfileRepository(db)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		// The JWT role claim is only a hint; the profile row is the source of truth.
		p, err := repo.GetByUserID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
			return
		}

		if !p.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
			return
		}

		if p.Banned(time.Now()) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is banned"})
			return
		}

		c.Set(AuthUserIDKey, p.UserID)
		c.Set(AuthRoleKey, p.Role)
		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the context
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}

	uid, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("user ID has unexpected type: %T", userID)
	}

	return uid, nil
}

// GetRoleFromContext extracts the caller's role from the context
func GetRoleFromContext(c *gin.Context) (profile.Role, error) {
	role, exists := c.Get(AuthRoleKey)
	if !exists {
		return "", errors.New("role not found in context")
	}

	r, ok := role.(profile.Role)
	if !ok {
		return "", fmt.Errorf("role has unexpected type: %T", role)
	}

	return r, nil
}
