package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getguardrail/guardrail/authz"
	"github.com/getguardrail/guardrail/flow"
	"github.com/getguardrail/guardrail/session"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	login    *flow.LoginManager
	sessions *session.Manager
	guard    *authz.Middleware
}

func NewHandler(login *flow.LoginManager, sessions *session.Manager, guard *authz.Middleware) *Handler {
	return &Handler{login: login, sessions: sessions, guard: guard}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/login", h.HandleLogin)

	// Protected routes. Each group declares the permissions its
	// operations require; the guard handles authentication, caching,
	// refresh, and denial shaping.
	g.GET("/whoami", h.HandleWhoAmI, h.guard.RequirePermissions())

	users := g.Group("/users", h.guard.RequirePermissions("CanManageUsers"))
	users.GET("", h.HandleListUsers)

	reports := g.Group("/reports")
	reports.GET("", h.HandleReports, h.guard.Require(
		authz.NewRequirement(authz.MethodGet|authz.MethodHead, "CanViewReports"),
	))
}

func (h *Handler) HandleLogin(c echo.Context) error {
	var body struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}

	if err := c.Bind(&body); err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid request body", err)
	}

	ident, err := h.login.Authenticate(c.Request().Context(), body.Identifier, body.Password)
	if err != nil {
		return h.Error(c, http.StatusUnauthorized, "Unauthorized", err)
	}

	s, token, err := h.sessions.Create(c.Request().Context(), ident)
	if err != nil {
		return h.Error(c, http.StatusInternalServerError, "Internal server error", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session": s,
		"token":   token,
	})
}

func (h *Handler) HandleWhoAmI(c echo.Context) error {
	sess := authz.SessionFromContext(c)
	if sess == nil {
		return h.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"identity_id": sess.IdentityID,
		"roles":       sess.CachedRoles(),
		"permissions": sess.CachedPermissions(),
	})
}

func (h *Handler) HandleListUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"users": []string{}})
}

func (h *Handler) HandleReports(c echo.Context) error {
	// Programmatic assertion inside a handler body: exporting requires
	// an extra permission on top of the route-level one.
	if c.QueryParam("export") != "" {
		if err := h.guard.AssertAuthorized(c, "CanExportReports"); err != nil {
			switch {
			case errors.Is(err, authz.ErrUnauthenticated):
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			case errors.Is(err, authz.ErrForbidden):
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			default:
				return err
			}
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"reports": []string{}})
}

func (h *Handler) Error(c echo.Context, code int, msg string, err error) error {
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return echo.NewHTTPError(code, msg)
}
