package guardrail

import (
	"github.com/getguardrail/guardrail/authz"
	"github.com/getguardrail/guardrail/flow"
	"github.com/getguardrail/guardrail/persistence"
	"github.com/getguardrail/guardrail/session"
	"gorm.io/gorm"
)

// NewDefaultEngine creates a permission decision engine backed by the
// given database.
func NewDefaultEngine(db *gorm.DB) *authz.Engine {
	repo := persistence.NewRepository(db)
	return authz.NewEngine(repo, repo)
}

// NewDefaultSessionManager creates a session manager with an HS256 token
// codec over the same database.
func NewDefaultSessionManager(db *gorm.DB, tokenSecret string) *session.Manager {
	repo := persistence.NewRepository(db)
	return session.NewManager(repo, session.NewHS256Codec(tokenSecret))
}

// NewDefaultLoginManager creates a password login manager with a bcrypt
// hasher at the default cost.
func NewDefaultLoginManager(db *gorm.DB) *flow.LoginManager {
	repo := persistence.NewRepository(db)
	return flow.NewLoginManager(repo, flow.NewBcryptHasher(flow.DefaultBcryptCost))
}

// NewDefaultMiddleware wires the full authorization filter: bypass
// evaluator, decision engine, and session-backed authentication.
func NewDefaultMiddleware(db *gorm.DB, tokenSecret, bypassSecret string) *authz.Middleware {
	engine := NewDefaultEngine(db)
	evaluator := authz.NewEvaluator(authz.NewHeaderSecret(bypassSecret))
	sessions := NewDefaultSessionManager(db, tokenSecret)
	return authz.NewMiddleware(engine, evaluator, sessions)
}
