package middleware

import (
	"github.com/gin-gonic/gin"

	sessiondomain "github.com/Toronto-Scrum-Team/registration-backend/internal/session/domain"
	userdomain "github.com/Toronto-Scrum-Team/registration-backend/internal/user/domain"
)

// CurrentUser returns the authenticated user placed on the context by
// RequireAuth. ok is false on routes that skipped the auth gate.
func CurrentUser(c *gin.Context) (*userdomain.User, bool) {
	v, exists := c.Get(ctxUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*userdomain.User)
	return user, ok && user != nil
}

// CurrentSession returns the session bound to the request's token, if any.
// Requests authenticated with a session-less token have no current session.
func CurrentSession(c *gin.Context) (*sessiondomain.Session, bool) {
	v, exists := c.Get(ctxSessionKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*sessiondomain.Session)
	return session, ok && session != nil
}
