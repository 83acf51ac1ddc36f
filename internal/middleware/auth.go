package middleware

import (
	"strings"

	"github.com/arturkh/blogstack/internal/token"
	"github.com/arturkh/blogstack/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthRequired verifies the Bearer access token and stores the verified
// identity in the request context. No database access happens here; access
// tokens are self-contained.
func AuthRequired(tm *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, response.NewUnauthorized("authorization header required"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, response.NewUnauthorized("invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := tm.ParseAccessToken(parts[1])
		if err != nil {
			response.Error(c, response.NewUnauthorized("invalid or expired token"))
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.Error(c, response.NewUnauthorized("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// OptionalAuth populates the context from a Bearer token when one is
// present and valid, and lets the request through either way. Read-only
// routes use it to widen what authenticated callers can see.
func OptionalAuth(tm *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := tm.ParseAccessToken(parts[1]); err == nil {
				if userID, err := claims.UserID(); err == nil {
					c.Set(ContextUserID, userID)
					c.Set(ContextEmail, claims.Email)
					c.Set(ContextRole, claims.Role)
				}
			}
		}
		c.Next()
	}
}

// AdminRequired gates a route to admin users. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, exists := c.Get(ContextRole); !exists || role != "admin" {
			response.Error(c, response.NewForbidden("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's id, or uuid.Nil when the
// request is unauthenticated.
func GetUserID(c *gin.Context) uuid.UUID {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uuid.UUID)
	}
	return uuid.Nil
}

// GetRole returns the authenticated user's role.
func GetRole(c *gin.Context) string {
	if role, exists := c.Get(ContextRole); exists {
		return role.(string)
	}
	return ""
}
