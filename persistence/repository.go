package persistence

import (
	"context"
	"fmt"
	"sync"

	"github.com/getguardrail/guardrail/domain"
	"github.com/getguardrail/guardrail/identity"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func init() {
	Register("sqlite", sqlite.Open)
	Register("postgres", postgres.Open)
	Register("mysql", mysql.Open)
}

// DB exposes the underlying gorm handle for callers that need to wire
// additional managers onto the same connection.
func (r *Repository) DB() *gorm.DB { return r.db }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&identity.Identity{},
		&identity.Credential{},
		&identity.Session{},
	)
}

func (r *Repository) CreateIdentity(ctx context.Context, id *identity.Identity) error {
	return r.db.WithContext(ctx).Create(id).Error
}

func (r *Repository) GetIdentity(ctx context.Context, id string) (*identity.Identity, error) {
	var ident identity.Identity
	if err := r.db.WithContext(ctx).Preload("Credentials").First(&ident, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ident, nil
}

func (r *Repository) GetCredentialByIdentifier(ctx context.Context, identifier string, method string) (*identity.Credential, error) {
	var cred identity.Credential
	if err := r.db.WithContext(ctx).Where("identifier = ? AND type = ?", identifier, method).First(&cred).Error; err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *Repository) CreateSession(ctx context.Context, s *identity.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repository) GetSession(ctx context.Context, id string) (*identity.Session, error) {
	var s identity.Session
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) SaveSession(ctx context.Context, s *identity.Session) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&identity.Session{}, "id = ?", id).Error
}

// Open starts a read-only transaction scoped to one request evaluation.
// The returned handle must be closed exactly once; Close releases the
// transaction back to the pool.
func (r *Repository) Open(ctx context.Context) (domain.Repository, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("persistence: open repository handle: %w", tx.Error)
	}
	return &grantHandle{tx: tx}, nil
}

type grantHandle struct {
	tx *gorm.DB

	mu     sync.Mutex
	closed bool
}

func (h *grantHandle) Grants(ctx context.Context, identityID string) ([]string, []string, error) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return nil, nil, fmt.Errorf("persistence: repository handle already closed")
	}

	var ident identity.Identity
	if err := h.tx.WithContext(ctx).First(&ident, "id = ?", identityID).Error; err != nil {
		return nil, nil, fmt.Errorf("persistence: load grants for %s: %w", identityID, err)
	}
	return ident.Roles.StringSet(), ident.Permissions.StringSet(), nil
}

func (h *grantHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	return h.tx.Rollback().Error
}
