package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/getguardrail/guardrail/identity"
)

type mockIdentityStore struct {
	identities map[string]*identity.Identity
	creds      map[string]*identity.Credential
}

func newMockIdentityStore() *mockIdentityStore {
	return &mockIdentityStore{
		identities: make(map[string]*identity.Identity),
		creds:      make(map[string]*identity.Credential),
	}
}

func (m *mockIdentityStore) CreateIdentity(ctx context.Context, id *identity.Identity) error {
	m.identities[id.ID] = id
	return nil
}

func (m *mockIdentityStore) GetIdentity(ctx context.Context, id string) (*identity.Identity, error) {
	ident, ok := m.identities[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return ident, nil
}

func (m *mockIdentityStore) GetCredentialByIdentifier(ctx context.Context, identifier string, method string) (*identity.Credential, error) {
	cred, ok := m.creds[method+":"+identifier]
	if !ok {
		return nil, errors.New("not found")
	}
	return cred, nil
}

func TestLogin(t *testing.T) {
	store := newMockIdentityStore()
	hasher := NewBcryptHasher(4) // low cost for test speed
	mgr := NewLoginManager(store, hasher)

	hash, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	store.identities["u1"] = &identity.Identity{ID: "u1"}
	store.creds["password:test@example.com"] = &identity.Credential{
		ID:         "c1",
		IdentityID: "u1",
		Type:       PasswordMethod,
		Identifier: "test@example.com",
		Secret:     hash,
	}

	// Successful login
	ident, err := mgr.Authenticate(context.Background(), "test@example.com", "password123")
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	if ident == nil || ident.ID != "u1" {
		t.Fatalf("expected identity u1, got %+v", ident)
	}

	// Failed login (wrong password)
	if _, err := mgr.Authenticate(context.Background(), "test@example.com", "wrongpassword"); err == nil {
		t.Error("expected error for wrong password, got nil")
	}

	// Failed login (non-existent user)
	if _, err := mgr.Authenticate(context.Background(), "nonexistent@example.com", "password123"); err == nil {
		t.Error("expected error for non-existent user, got nil")
	}
}
