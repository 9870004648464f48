package authz

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RedirectPolicy may issue a redirect instead of a forbidden response.
// TryRedirect returns true if it wrote a redirect.
type RedirectPolicy interface {
	TryRedirect(c echo.Context) bool
}

// HTMLRedirect sends browser clients to a configured page on denial.
// Non-HTML clients (APIs) fall through to the forbidden response.
type HTMLRedirect struct {
	URL string
}

func (p *HTMLRedirect) TryRedirect(c echo.Context) bool {
	if p == nil || p.URL == "" {
		return false
	}
	if !strings.Contains(c.Request().Header.Get("Accept"), "text/html") {
		return false
	}
	if err := c.Redirect(http.StatusSeeOther, p.URL); err != nil {
		return false
	}
	return true
}
