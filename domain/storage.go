package domain

import (
	"context"

	"github.com/getguardrail/guardrail/identity"
)

// Storage defines the interface for all persistence operations.
type Storage interface {
	IdentityStorage
	SessionStorage
	RepositoryFactory
}

type IdentityStorage interface {
	CredentialStorage
	CreateIdentity(ctx context.Context, id *identity.Identity) error
	GetIdentity(ctx context.Context, id string) (*identity.Identity, error)
}

type SessionStorage interface {
	CreateSession(ctx context.Context, s *identity.Session) error
	GetSession(ctx context.Context, id string) (*identity.Session, error)
	SaveSession(ctx context.Context, s *identity.Session) error
	DeleteSession(ctx context.Context, id string) error
}

type CredentialStorage interface {
	GetCredentialByIdentifier(ctx context.Context, identifier string, method string) (*identity.Credential, error)
}

// Repository is a short-lived, per-request handle onto the identity
// store, used only to refresh a session's grant caches. It must be
// closed exactly once per acquisition, on every exit path.
type Repository interface {
	// Grants returns the authoritative role and permission names for
	// the given identity.
	Grants(ctx context.Context, identityID string) (roles []string, permissions []string, err error)
	Close() error
}

// RepositoryFactory opens a fresh Repository handle for one request
// evaluation. Handles are never shared across requests.
type RepositoryFactory interface {
	Open(ctx context.Context) (Repository, error)
}

// Hasher defines the interface for password hashing and verification.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) bool
}
