package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/getguardrail/guardrail/identity"
)

type mockSessionStore struct {
	sessions map[string]*identity.Session
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]*identity.Session)}
}

func (m *mockSessionStore) CreateSession(ctx context.Context, s *identity.Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionStore) GetSession(ctx context.Context, id string) (*identity.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (m *mockSessionStore) SaveSession(ctx context.Context, s *identity.Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionStore) DeleteSession(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func TestCreateAndResolve(t *testing.T) {
	store := newMockSessionStore()
	mgr := NewManager(store, NewHS256Codec("test-secret"))

	ident := &identity.Identity{
		ID:          "u1",
		Roles:       identity.EncodeStringSet([]string{"editor"}),
		Permissions: identity.EncodeStringSet([]string{"CanEdit"}),
	}

	sess, token, err := mgr.Create(context.Background(), ident)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token == "" {
		t.Fatal("expected a bearer token")
	}
	if !sess.HasRole("editor") || !sess.HasAllPermissions([]string{"CanEdit"}) {
		t.Error("session caches should be seeded from the identity")
	}

	resolved, err := mgr.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != sess.ID || resolved.IdentityID != "u1" {
		t.Errorf("resolved wrong session: %+v", resolved)
	}
}

func TestResolveRejectsBadToken(t *testing.T) {
	mgr := NewManager(newMockSessionStore(), NewHS256Codec("test-secret"))

	if _, err := mgr.Resolve(context.Background(), "garbage"); err == nil {
		t.Error("garbage token should fail")
	}

	// Token signed with a different secret
	other := NewManager(newMockSessionStore(), NewHS256Codec("other-secret"))
	ident := &identity.Identity{ID: "u1"}
	_, token, err := other.Create(context.Background(), ident)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := mgr.Resolve(context.Background(), token); err == nil {
		t.Error("token signed with a different secret should fail")
	}
}

func TestResolveRejectsExpiredSession(t *testing.T) {
	store := newMockSessionStore()
	mgr := NewManager(store, NewHS256Codec("test-secret"))

	ident := &identity.Identity{ID: "u1"}
	sess, token, err := mgr.Create(context.Background(), ident)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sess.ExpiresAt = time.Now().Add(-time.Minute)
	if _, err := mgr.Resolve(context.Background(), token); err == nil {
		t.Error("expired session should fail")
	}

	sess.ExpiresAt = time.Now().Add(time.Hour)
	sess.Active = false
	if _, err := mgr.Resolve(context.Background(), token); err == nil {
		t.Error("inactive session should fail")
	}
}

func TestDeleteRevokesSession(t *testing.T) {
	store := newMockSessionStore()
	mgr := NewManager(store, NewHS256Codec("test-secret"))

	sess, token, err := mgr.Create(context.Background(), &identity.Identity{ID: "u1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mgr.Delete(context.Background(), sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := mgr.Resolve(context.Background(), token); err == nil {
		t.Error("deleted session should fail to resolve")
	}
}
