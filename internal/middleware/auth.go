// Package middleware provides HTTP middleware for authentication, CORS,
// logging, and rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/auth"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
)

// IdentityContextKey is the key for the authenticated identity in the
// request context.
const IdentityContextKey = "identity"

// Identity is the request-scoped authenticated caller, derived purely
// from the bearer token. No database round-trip happens per request.
type Identity struct {
	UserID string
	Role   models.Role
}

// Authenticate extracts and verifies the bearer token on every request.
// A missing or invalid token leaves the request anonymous; rejection is
// the job of the role gates, not this layer.
func Authenticate(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.Next()
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil || claims.TokenType != auth.TokenTypeAccess {
			c.Next()
			return
		}

		c.Set(IdentityContextKey, &Identity{
			UserID: claims.Subject,
			Role:   models.ParseRole(claims.Role),
		})
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity, if any.
func IdentityFrom(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(IdentityContextKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*Identity)
	return identity, ok
}

// RequireAuthority rejects anonymous callers with 401 and callers below
// the given authority level with 403.
func RequireAuthority(level int) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "UNAUTHENTICATED", "message": "authentication required"},
			})
			c.Abort()
			return
		}
		if identity.Role.Level() < level {
			c.JSON(http.StatusForbidden, gin.H{
				"error": gin.H{"code": "FORBIDDEN", "message": "insufficient role"},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission gates a route on a named permission string.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "UNAUTHENTICATED", "message": "authentication required"},
			})
			c.Abort()
			return
		}
		if !identity.Role.HasPermission(permission) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": gin.H{"code": "FORBIDDEN", "message": "insufficient role"},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
