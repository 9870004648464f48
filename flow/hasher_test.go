package flow

import (
	"testing"
)

func TestBcryptHasherDefaultCost(t *testing.T) {
	if h := NewBcryptHasher(0); h.Cost != DefaultBcryptCost {
		t.Errorf("expected default cost %d, got %d", DefaultBcryptCost, h.Cost)
	}
	if h := NewBcryptHasher(-1); h.Cost != DefaultBcryptCost {
		t.Errorf("expected default cost for negative input, got %d", h.Cost)
	}
	if h := NewBcryptHasher(6); h.Cost != 6 {
		t.Errorf("expected explicit cost 6, got %d", h.Cost)
	}
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher(4) // low cost for test speed

	hash, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !h.Compare("password123", hash) {
		t.Error("hash should verify against its own password")
	}
	if h.Compare("wrongpassword", hash) {
		t.Error("wrong password must not verify")
	}
}
