package middleware

import (
	"context"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// sessionCtxKey is the key used to store the resolved session in the request context.
const sessionCtxKey = contextKey("session")

// WithSession returns a copy of ctx carrying the session.
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, session)
}

// GetSessionFromContext retrieves the authenticated session from the request.
// It returns false for anonymous requests.
func GetSessionFromContext(c *gin.Context) (*domain.Session, bool) {
	session, ok := c.Request.Context().Value(sessionCtxKey).(*domain.Session)
	if !ok || session == nil || !session.LoggedIn {
		return nil, false
	}
	return session, true
}

// GetUsernameFromContext returns the logged-in username, used as draft owner key.
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	session, ok := GetSessionFromContext(c)
	if !ok {
		return "", false
	}
	return session.Username, true
}

// IsAuthenticated reports whether the request carries a valid session.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := GetSessionFromContext(c)
	return ok
}
