package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/getguardrail/guardrail/domain"
	"github.com/getguardrail/guardrail/identity"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const DefaultTTL = 24 * time.Hour

// Manager creates, resolves, and persists sessions. It also serves as
// the authentication filter for the authorization middleware: Resolve
// failures become the standard unauthorized response.
type Manager struct {
	repo  domain.SessionStorage
	codec *TokenCodec
	ttl   time.Duration
}

func NewManager(repo domain.SessionStorage, codec *TokenCodec) *Manager {
	return &Manager{repo: repo, codec: codec, ttl: DefaultTTL}
}

func (m *Manager) SetTTL(ttl time.Duration) {
	if ttl > 0 {
		m.ttl = ttl
	}
}

// Create opens a new session for the identity, seeding the grant caches
// from the identity's current roles and permissions, and returns the
// session together with its bearer token.
func (m *Manager) Create(ctx context.Context, ident *identity.Identity) (*identity.Session, string, error) {
	now := time.Now()
	sess := &identity.Session{
		ID:         uuid.New().String(),
		IdentityID: ident.ID,
		IssuedAt:   now,
		ExpiresAt:  now.Add(m.ttl),
		Active:     true,
	}
	sess.ApplyGrants(ident.Roles.StringSet(), ident.Permissions.StringSet())

	if err := m.repo.CreateSession(ctx, sess); err != nil {
		return nil, "", err
	}

	token, err := m.codec.Issue(sess.ID, sess.IdentityID, sess.ExpiresAt)
	if err != nil {
		return nil, "", err
	}
	return sess, token, nil
}

// Resolve validates a bearer token and loads its session.
func (m *Manager) Resolve(ctx context.Context, token string) (*identity.Session, error) {
	sessionID, err := m.codec.Parse(token)
	if err != nil {
		return nil, errors.New("invalid session token")
	}

	sess, err := m.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, errors.New("invalid session")
	}

	if !sess.Active || sess.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("session expired or inactive")
	}
	return sess, nil
}

// Save writes the session back to the store.
func (m *Manager) Save(ctx context.Context, sess *identity.Session) error {
	return m.repo.SaveSession(ctx, sess)
}

// Delete revokes the session.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.repo.DeleteSession(ctx, sessionID)
}

// Authenticate implements the authz.Authenticator contract: it resolves
// the session from the Authorization header and returns the standard
// unauthorized response on failure.
func (m *Manager) Authenticate(c echo.Context) (*identity.Session, error) {
	token := bearerToken(c.Request())
	if token == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authorization header required")
	}

	sess, err := m.Resolve(c.Request().Context(), token)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return sess, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
