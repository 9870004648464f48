package authz

import (
	"crypto/subtle"
	"net/http"
)

// DefaultBypassHeader is the header checked by HeaderSecret when no
// header name is configured.
const DefaultBypassHeader = "X-Bypass-Secret"

// SecretChecker reports whether a request carries a valid deployment-wide
// bypass credential.
type SecretChecker interface {
	HasValidBypassSecret(r *http.Request) bool
}

// HeaderSecret checks the bypass credential against a request header
// using a constant-time comparison. An empty configured secret disables
// the bypass entirely.
type HeaderSecret struct {
	Header string
	Secret string
}

func NewHeaderSecret(secret string) *HeaderSecret {
	return &HeaderSecret{Header: DefaultBypassHeader, Secret: secret}
}

func (h *HeaderSecret) HasValidBypassSecret(r *http.Request) bool {
	if h.Secret == "" {
		return false
	}
	header := h.Header
	if header == "" {
		header = DefaultBypassHeader
	}
	presented := r.Header.Get(header)
	if presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(h.Secret)) == 1
}

// Evaluator decides whether a request may skip the permission check
// entirely. It is a pure predicate over request and configuration; it
// never inspects the session.
type Evaluator struct {
	secrets SecretChecker
}

func NewEvaluator(secrets SecretChecker) *Evaluator {
	return &Evaluator{secrets: secrets}
}

// SecretBypass reports whether the request presents a valid deployment
// bypass secret. This is checked before authentication and overrides
// everything else.
func (e *Evaluator) SecretBypass(r *http.Request) bool {
	return e != nil && e.secrets != nil && e.secrets.HasValidBypassSecret(r)
}

// ShouldBypass reports whether the decision is trivially satisfied: a
// valid bypass secret, or an empty required-permission set. An empty set
// is vacuously satisfied, but callers still owe the authentication check
// before admitting the request.
func (e *Evaluator) ShouldBypass(r *http.Request, required []string) bool {
	if e.SecretBypass(r) {
		return true
	}
	return len(required) == 0
}
