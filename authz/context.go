package authz

import (
	"github.com/getguardrail/guardrail/identity"
	"github.com/labstack/echo/v4"
)

const sessionContextKey = "session"

// WithSession stores the resolved session in the echo context for
// downstream handlers and assertion helpers.
func WithSession(c echo.Context, s *identity.Session) {
	c.Set(sessionContextKey, s)
}

// SessionFromContext returns the session stored by the authentication
// filter, or nil if none was resolved.
func SessionFromContext(c echo.Context) *identity.Session {
	s, _ := c.Get(sessionContextKey).(*identity.Session)
	return s
}
