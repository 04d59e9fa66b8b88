// Package middleware holds the gin middleware for the HTTP server.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authservice "github.com/Toronto-Scrum-Team/registration-backend/internal/auth/service"
)

const (
	ctxUserKey    = "auth_user"
	ctxSessionKey = "auth_session"
)

// RequireAuth extracts the bearer token, runs it through the auth gate, and
// stores the resolved user and session on the gin context. Every failure mode
// aborts with 401 and the same body; callers learn nothing about why.
func RequireAuth(auth *authservice.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortUnauthorized(c)
			return
		}

		user, session, err := auth.Authorize(c.Request.Context(), parts[1])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ctxUserKey, user)
		if session != nil {
			c.Set(ctxSessionKey, session)
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
