package authz

import (
	"context"
	"fmt"

	"github.com/getguardrail/guardrail/domain"
	"github.com/getguardrail/guardrail/identity"
	"go.uber.org/zap"
)

// AdminRole is the reserved role name that satisfies every permission
// check.
const AdminRole = "Admin"

// Engine decides whether a session satisfies a required permission set.
// It checks the session's grant caches first and falls back to a single
// repository-backed refresh per miss. A successful refresh is written
// back to the session store; a failed recheck is reported without
// mutating the stored session.
type Engine struct {
	sessions  domain.SessionStorage
	repos     domain.RepositoryFactory
	adminRole string
	log       *zap.Logger
}

func NewEngine(sessions domain.SessionStorage, repos domain.RepositoryFactory) *Engine {
	return &Engine{
		sessions:  sessions,
		repos:     repos,
		adminRole: AdminRole,
		log:       zap.NewNop(),
	}
}

// SetAdminRole overrides the reserved role name that bypasses permission
// checks. Empty disables the fast path.
func (e *Engine) SetAdminRole(role string) { e.adminRole = role }

func (e *Engine) SetLogger(log *zap.Logger) {
	if log != nil {
		e.log = log
	}
}

func (e *Engine) satisfied(sess *identity.Session, required []string) bool {
	if e.adminRole != "" && sess.HasRole(e.adminRole) {
		return true
	}
	return sess.HasAllPermissions(required)
}

// HasAllPermissions reports whether the session holds every permission in
// required. An empty required set is trivially satisfied. A repository
// fault is returned as an error, never folded into a false decision.
func (e *Engine) HasAllPermissions(ctx context.Context, sess *identity.Session, required []string) (bool, error) {
	// 1. Trivial satisfaction: nothing required.
	if len(required) == 0 {
		return true, nil
	}
	if sess == nil {
		return false, nil
	}

	// 2+3. Cached admin role or cached permission superset.
	if e.satisfied(sess, required) {
		return true, nil
	}

	// 4. Refresh the grant caches from the identity store and recheck.
	repo, err := e.repos.Open(ctx)
	if err != nil {
		return false, fmt.Errorf("authz: open identity repository: %w", err)
	}
	defer func() {
		if cerr := repo.Close(); cerr != nil {
			e.log.Warn("closing identity repository handle", zap.Error(cerr))
		}
	}()

	roles, permissions, err := repo.Grants(ctx, sess.IdentityID)
	if err != nil {
		return false, fmt.Errorf("authz: refresh grants: %w", err)
	}
	sess.ApplyGrants(roles, permissions)

	if !e.satisfied(sess, required) {
		// Nothing to persist: the stored cache is no more wrong than
		// before, and the decision would not change.
		return false, nil
	}

	if err := e.sessions.SaveSession(ctx, sess); err != nil {
		return false, fmt.Errorf("authz: persist refreshed session: %w", err)
	}

	e.log.Debug("session grant caches refreshed",
		zap.String("session_id", sess.ID),
		zap.String("identity_id", sess.IdentityID),
	)
	return true, nil
}
