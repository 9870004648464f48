package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec signs and verifies the bearer tokens that carry a session
// ID. The session state itself stays server-side; the token is only a
// tamper-proof pointer to it.
type TokenCodec struct {
	signingMethod jwt.SigningMethod
	signingKey    any
	verifyingKey  any
}

// NewHS256Codec is a convenience constructor for an HMAC-SHA256 codec.
func NewHS256Codec(secret string) *TokenCodec {
	return &TokenCodec{
		signingMethod: jwt.SigningMethodHS256,
		signingKey:    []byte(secret),
		verifyingKey:  []byte(secret),
	}
}

// TokenClaims represents the data stored in the token.
type TokenClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (c *TokenCodec) Issue(sessionID, identityID string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(c.signingMethod, claims)
	return token.SignedString(c.signingKey)
}

// Parse verifies the token and returns the session ID it points at.
func (c *TokenCodec) Parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != c.signingMethod.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.verifyingKey, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims.SessionID, nil
	}
	return "", fmt.Errorf("invalid token")
}
