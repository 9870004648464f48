package flow

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when no explicit cost is
// configured.
const DefaultBcryptCost = 14

// BcryptHasher verifies login passwords for the password flow.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher creates a hasher with the given work factor. A cost of
// zero or less selects DefaultBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	return string(bytes), err
}

func (h *BcryptHasher) Compare(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
