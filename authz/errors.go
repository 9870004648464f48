package authz

import "errors"

var (
	// ErrUnauthenticated signals a missing or inactive session.
	ErrUnauthenticated = errors.New("authz: unauthenticated")

	// ErrForbidden signals an authenticated session that lacks a required
	// permission even after a repository refresh. The error text never
	// names the missing permissions.
	ErrForbidden = errors.New("authz: missing required permission")
)
