package authz

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// AssertAuthorized runs the full permission decision against the
// request's current session, for programmatic checks inside handler
// bodies. It returns ErrUnauthenticated if no active session is attached
// to the request, ErrForbidden if the session lacks a required
// permission, and a wrapped fault if the identity repository fails.
func (m *Middleware) AssertAuthorized(c echo.Context, permissions ...string) error {
	if m.evaluator.SecretBypass(c.Request()) {
		return nil
	}

	sess := SessionFromContext(c)
	if !sess.Authenticated() {
		return ErrUnauthenticated
	}

	ok, err := m.engine.HasAllPermissions(c.Request().Context(), sess, permissions)
	if err != nil {
		return fmt.Errorf("authz: assert authorized: %w", err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
