package identity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// JSON is a custom type for handling JSON data in GORM.
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = []byte(v)
	default:
		return errors.New("invalid type for JSON")
	}
	return nil
}

// StringSet decodes a JSON column holding an array of strings.
// A nil or empty column decodes to an empty slice.
func (j JSON) StringSet() []string {
	if len(j) == 0 {
		return []string{}
	}
	var set []string
	if err := json.Unmarshal(j, &set); err != nil {
		return []string{}
	}
	return set
}

// EncodeStringSet marshals a slice of strings into a JSON column value.
func EncodeStringSet(set []string) JSON {
	if set == nil {
		set = []string{}
	}
	b, _ := json.Marshal(set)
	return JSON(b)
}

// Identity is the store-of-truth record for a principal: its traits plus
// the authoritative role and permission grants.
type Identity struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Traits      JSON           `gorm:"type:json" json:"traits"`
	Roles       JSON           `gorm:"type:json" json:"roles"`
	Permissions JSON           `gorm:"type:json" json:"permissions"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Credentials []Credential `gorm:"foreignKey:IdentityID" json:"-"`
}

func (Identity) TableName() string { return "identities" }

// Credential represents an authentication credential.
type Credential struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	IdentityID string    `gorm:"index" json:"identity_id"`
	Type       string    `gorm:"index" json:"type"`
	Identifier string    `gorm:"index" json:"identifier"`
	Secret     string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Credential) TableName() string { return "credentials" }

// Session represents an authenticated session. RoleCache and
// PermissionCache hold the grants known at last refresh; the identity
// store remains the source of truth and the caches may go stale.
type Session struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	IdentityID      string    `gorm:"index" json:"identity_id"`
	ExpiresAt       time.Time `json:"expires_at"`
	IssuedAt        time.Time `json:"issued_at"`
	Active          bool      `json:"active"`
	RoleCache       JSON      `gorm:"type:json" json:"-"`
	PermissionCache JSON      `gorm:"type:json" json:"-"`
}

func (Session) TableName() string { return "sessions" }

// Authenticated reports whether the session represents a live
// authenticated principal.
func (s *Session) Authenticated() bool {
	return s != nil && s.Active
}

// CachedRoles returns the role names known at last refresh.
func (s *Session) CachedRoles() []string {
	return s.RoleCache.StringSet()
}

// CachedPermissions returns the permission names known at last refresh.
func (s *Session) CachedPermissions() []string {
	return s.PermissionCache.StringSet()
}

// HasRole checks the cached role set for the given role name.
func (s *Session) HasRole(role string) bool {
	for _, r := range s.CachedRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every required permission name is
// present in the cached permission set.
func (s *Session) HasAllPermissions(required []string) bool {
	cached := s.CachedPermissions()
	have := make(map[string]struct{}, len(cached))
	for _, p := range cached {
		have[p] = struct{}{}
	}
	for _, p := range required {
		if _, ok := have[p]; !ok {
			return false
		}
	}
	return true
}

// ApplyGrants overwrites both caches with the given grants. It is a full
// replacement, not a merge, so revoked grants disappear on refresh.
func (s *Session) ApplyGrants(roles, permissions []string) {
	s.RoleCache = EncodeStringSet(roles)
	s.PermissionCache = EncodeStringSet(permissions)
}
