package authz

import (
	"net/http"
	"testing"
)

func TestMethodFilterMatches(t *testing.T) {
	f := MethodGet | MethodHead
	if !f.Matches(http.MethodGet) || !f.Matches(http.MethodHead) {
		t.Error("filter should match its own methods")
	}
	if f.Matches(http.MethodPost) {
		t.Error("filter should not match excluded methods")
	}
	if MethodAll.Matches("BREW") {
		t.Error("unknown methods never match")
	}
	if !MethodAll.Matches(http.MethodDelete) {
		t.Error("MethodAll should match every standard method")
	}
}

func TestRequirementNormalization(t *testing.T) {
	a := NewRequirement(MethodAll, "B", "A", "B")
	if len(a.Permissions) != 2 || a.Permissions[0] != "A" || a.Permissions[1] != "B" {
		t.Errorf("expected sorted deduplicated set, got %v", a.Permissions)
	}
	if a.Priority != PriorityRequiredPermission {
		t.Errorf("expected required-permission tier, got %d", a.Priority)
	}
}

func TestRequirementEqual(t *testing.T) {
	a := NewRequirement(MethodAll, "A", "B")
	b := NewRequirement(MethodAll, "B", "A", "A")
	if !a.Equal(b) {
		t.Error("order and duplicates must not affect equality")
	}

	c := NewRequirement(MethodGet, "A", "B")
	if a.Equal(c) {
		t.Error("different method filters must not be equal")
	}

	d := NewRequirement(MethodAll, "A")
	if a.Equal(d) {
		t.Error("different permission sets must not be equal")
	}
}
