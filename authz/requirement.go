package authz

import (
	"net/http"
	"sort"
)

// Filter pipeline tiers. Lower runs earlier. RequirePermissions filters
// register at PriorityRequiredPermission, after generic authentication
// filters.
const (
	PriorityAuthentication     = 100
	PriorityRequiredPermission = 200
)

// MethodFilter selects which HTTP methods a requirement applies to.
type MethodFilter uint16

const (
	MethodGet MethodFilter = 1 << iota
	MethodHead
	MethodPost
	MethodPut
	MethodPatch
	MethodDelete
	MethodConnect
	MethodOptions
	MethodTrace

	MethodAll = MethodGet | MethodHead | MethodPost | MethodPut |
		MethodPatch | MethodDelete | MethodConnect | MethodOptions | MethodTrace
)

var methodBits = map[string]MethodFilter{
	http.MethodGet:     MethodGet,
	http.MethodHead:    MethodHead,
	http.MethodPost:    MethodPost,
	http.MethodPut:     MethodPut,
	http.MethodPatch:   MethodPatch,
	http.MethodDelete:  MethodDelete,
	http.MethodConnect: MethodConnect,
	http.MethodOptions: MethodOptions,
	http.MethodTrace:   MethodTrace,
}

// Matches reports whether the filter covers the given HTTP method.
// Unknown methods never match.
func (f MethodFilter) Matches(method string) bool {
	bit, ok := methodBits[method]
	if !ok {
		return false
	}
	return f&bit != 0
}

// Requirement is the immutable registration-time configuration of a
// protected operation: the permission names the caller must hold and the
// HTTP methods the check applies to. Build values with NewRequirement so
// the permission set is normalized. A zero Methods filter is treated by
// Middleware.Require as MethodAll, never as "no methods".
type Requirement struct {
	Permissions []string
	Methods     MethodFilter
	Priority    int
}

// NewRequirement normalizes the permission set (sorted, deduplicated) and
// fixes the pipeline priority at the required-permission tier.
func NewRequirement(methods MethodFilter, permissions ...string) Requirement {
	seen := make(map[string]struct{}, len(permissions))
	set := make([]string, 0, len(permissions))
	for _, p := range permissions {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		set = append(set, p)
	}
	sort.Strings(set)
	return Requirement{
		Permissions: set,
		Methods:     methods,
		Priority:    PriorityRequiredPermission,
	}
}

// Equal compares two requirements by value over (method filter,
// permission set). Both sides are expected to be normalized.
func (r Requirement) Equal(other Requirement) bool {
	if r.Methods != other.Methods || len(r.Permissions) != len(other.Permissions) {
		return false
	}
	for i, p := range r.Permissions {
		if other.Permissions[i] != p {
			return false
		}
	}
	return true
}
