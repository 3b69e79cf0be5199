package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/peakform/storefront/internal/models"
	"github.com/peakform/storefront/internal/session"
	"github.com/peakform/storefront/internal/utils"
)

// SessionMiddleware guards routes that need an authenticated session. An
// anonymous or expired session answers 401 LOGIN_REQUIRED, which the view
// layer turns into a redirect to the login page; nothing is retried silently.
type SessionMiddleware struct {
	sessions *session.Manager
}

// NewSessionMiddleware constructs a SessionMiddleware.
func NewSessionMiddleware(sessions *session.Manager) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Handle returns a Gin middleware function that enforces an active session.
func (m *SessionMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := m.sessions.User()
		if !ok {
			utils.Error(c, 401, "LOGIN_REQUIRED", "Please log in to continue")
			c.Abort()
			return
		}
		c.Set("user", user)
		c.Next()
	}
}

// GetUser returns the session user placed in context by Handle.
func GetUser(c *gin.Context) models.User {
	user, _ := c.Get("user")
	if user == nil {
		return models.User{}
	}
	return user.(models.User)
}
