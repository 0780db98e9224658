package middleware

import (
	"context"
	"net/http"

	"github.com/a7med3yad/Cartify-Frontend/auth"
	"github.com/gin-gonic/gin"
)

// SessionSource yields the stored session, or nil.
type SessionSource interface {
	Session(ctx context.Context) *auth.Session
}

// RequireRole lets the request through only when the stored session holds
// role. The check is local: the API still has the final word on every call.
func RequireRole(sessions SessionSource, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Session(c.Request.Context())
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please log in."})
			return
		}
		if !session.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Set("userID", session.UserID)
		c.Next()
	}
}
