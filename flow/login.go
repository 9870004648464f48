package flow

import (
	"context"
	"fmt"

	"github.com/getguardrail/guardrail/domain"
	"github.com/getguardrail/guardrail/identity"
)

// PasswordMethod is the credential type used by the password login flow.
const PasswordMethod = "password"

// LoginManager authenticates principals against stored credentials so the
// demo server can mint sessions. It is deliberately small: one method,
// password, verified with the configured hasher.
type LoginManager struct {
	storage domain.IdentityStorage
	hasher  domain.Hasher
}

func NewLoginManager(storage domain.IdentityStorage, hasher domain.Hasher) *LoginManager {
	return &LoginManager{storage: storage, hasher: hasher}
}

// Authenticate verifies the identifier/password pair and returns the
// matching identity.
func (m *LoginManager) Authenticate(ctx context.Context, identifier, password string) (*identity.Identity, error) {
	cred, err := m.storage.GetCredentialByIdentifier(ctx, identifier, PasswordMethod)
	if err != nil {
		return nil, fmt.Errorf("login: unknown identifier")
	}

	if !m.hasher.Compare(password, cred.Secret) {
		return nil, fmt.Errorf("login: invalid credentials")
	}

	ident, err := m.storage.GetIdentity(ctx, cred.IdentityID)
	if err != nil {
		return nil, fmt.Errorf("login: load identity: %w", err)
	}
	return ident, nil
}
