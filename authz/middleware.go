package authz

import (
	"net/http"

	"github.com/getguardrail/guardrail/identity"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Authenticator is the external "must be authenticated" filter. On
// failure it returns an error carrying its own response (typically an
// *echo.HTTPError with status 401); that response is authoritative and
// passed through untouched.
type Authenticator interface {
	Authenticate(c echo.Context) (*identity.Session, error)
}

// ErrorHandler is invoked on final denial, before the forbidden response
// is written.
type ErrorHandler interface {
	Handle(c echo.Context, err error)
}

// Middleware gates protected routes behind a required permission set.
// The check order is fixed: deployment bypass secret, delegated
// authentication, permission decision, redirect policy, forbidden
// response.
type Middleware struct {
	engine    *Engine
	evaluator *Evaluator
	authn     Authenticator
	redirect  RedirectPolicy
	localizer Localizer
	onDeny    ErrorHandler
	log       *zap.Logger
}

func NewMiddleware(engine *Engine, evaluator *Evaluator, authn Authenticator) *Middleware {
	return &Middleware{
		engine:    engine,
		evaluator: evaluator,
		authn:     authn,
		log:       zap.NewNop(),
	}
}

func (m *Middleware) SetRedirectPolicy(p RedirectPolicy) { m.redirect = p }
func (m *Middleware) SetLocalizer(l Localizer)           { m.localizer = l }
func (m *Middleware) SetErrorHandler(h ErrorHandler)     { m.onDeny = h }

func (m *Middleware) SetLogger(log *zap.Logger) {
	if log != nil {
		m.log = log
	}
}

// RequirePermissions returns an echo middleware requiring every named
// permission for all HTTP methods.
func (m *Middleware) RequirePermissions(permissions ...string) echo.MiddlewareFunc {
	return m.Require(NewRequirement(MethodAll, permissions...))
}

// Require returns an echo middleware enforcing the given requirement.
// Methods outside the requirement's filter pass through unchecked. A
// zero method filter (a Requirement literal that skipped NewRequirement)
// guards every method rather than none.
func (m *Middleware) Require(req Requirement) echo.MiddlewareFunc {
	methods := req.Methods
	if methods == 0 {
		methods = MethodAll
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !methods.Matches(c.Request().Method) {
				return next(c)
			}

			// 1. Deployment bypass secret: full bypass, checked before
			// authentication.
			if m.evaluator.SecretBypass(c.Request()) {
				return next(c)
			}

			// 2. Delegate authentication. Its failure response is
			// authoritative.
			sess, err := m.authn.Authenticate(c)
			if err != nil {
				return err
			}
			WithSession(c, sess)

			// 3. Permission decision. A repository fault surfaces as-is,
			// never as a forbidden response.
			ok, err := m.engine.HasAllPermissions(c.Request().Context(), sess, req.Permissions)
			if err != nil {
				m.log.Error("permission decision failed",
					zap.Error(err),
					zap.String("path", c.Path()),
				)
				return err
			}
			if ok {
				return next(c)
			}

			// 4. Redirect HTML clients if configured.
			if m.redirect != nil && m.redirect.TryRedirect(c) {
				return nil
			}

			// 5. Forbidden, with a generic localized message.
			m.log.Info("request forbidden",
				zap.String("path", c.Path()),
				zap.String("identity_id", sess.IdentityID),
			)
			if m.onDeny != nil {
				m.onDeny.Handle(c, ErrForbidden)
			}
			return echo.NewHTTPError(http.StatusForbidden, m.localize(MessageInvalidPermission, c))
		}
	}
}

func (m *Middleware) localize(key string, c echo.Context) string {
	if m.localizer != nil {
		return m.localizer.Localize(key, c)
	}
	return defaultInvalidPermission
}
