package identity

import (
	"testing"
)

func TestSessionCacheChecks(t *testing.T) {
	s := &Session{ID: "s1", IdentityID: "u1", Active: true}
	s.ApplyGrants([]string{"editor"}, []string{"CanEdit", "CanView"})

	if !s.HasRole("editor") {
		t.Error("expected cached role hit")
	}
	if s.HasRole("admin") {
		t.Error("unexpected role hit")
	}
	if !s.HasAllPermissions([]string{"CanEdit"}) {
		t.Error("expected single-permission hit")
	}
	if !s.HasAllPermissions([]string{"CanEdit", "CanView"}) {
		t.Error("expected full-set hit")
	}
	if s.HasAllPermissions([]string{"CanEdit", "CanDelete"}) {
		t.Error("partial coverage must not satisfy")
	}
	if !s.HasAllPermissions(nil) {
		t.Error("empty requirement is vacuously satisfied")
	}
}

func TestApplyGrantsOverwritesNotMerges(t *testing.T) {
	s := &Session{ID: "s1", Active: true}
	s.ApplyGrants([]string{"admin"}, []string{"CanEverything"})
	s.ApplyGrants([]string{"viewer"}, []string{"CanView"})

	if s.HasRole("admin") {
		t.Error("revoked role must disappear on refresh")
	}
	if s.HasAllPermissions([]string{"CanEverything"}) {
		t.Error("revoked permission must disappear on refresh")
	}
	if !s.HasRole("viewer") || !s.HasAllPermissions([]string{"CanView"}) {
		t.Error("new grants should be present after refresh")
	}
}

func TestEmptyCacheDecodes(t *testing.T) {
	s := &Session{ID: "s1", Active: true}
	if len(s.CachedRoles()) != 0 || len(s.CachedPermissions()) != 0 {
		t.Error("nil cache columns should decode to empty sets")
	}
	if s.HasAllPermissions([]string{"X"}) {
		t.Error("empty cache must not satisfy a requirement")
	}
}

func TestJSONScanValue(t *testing.T) {
	var j JSON
	if err := j.Scan([]byte(`["a","b"]`)); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if set := j.StringSet(); len(set) != 2 || set[0] != "a" {
		t.Errorf("unexpected decode: %v", set)
	}

	if err := j.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if v, _ := j.Value(); v != nil {
		t.Errorf("empty JSON should store NULL, got %v", v)
	}
}
