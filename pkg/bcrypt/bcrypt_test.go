package bcrypt

import (
	"strings"
	"testing"
)

func TestHashAndCompare(t *testing.T) {
	h := NewHasher(4)

	hash, err := h.HashPassword("pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pass" {
		t.Fatal("hash must not equal plaintext")
	}
	if !VerifyHash(hash) {
		t.Errorf("expected bcrypt hash, got %q", hash)
	}
	if !h.ComparePassword(hash, "pass") {
		t.Error("expected password to match")
	}
	if h.ComparePassword(hash, "wrong") {
		t.Error("expected mismatch for wrong password")
	}
}

func TestHashTooLong(t *testing.T) {
	h := NewHasher(4)

	// bcrypt rejects inputs longer than 72 bytes
	if _, err := h.HashPassword(strings.Repeat("a", 100)); err == nil {
		t.Fatal("expected error for oversized password")
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	if h := NewHasher(99); h.cost != DefaultCost {
		t.Errorf("expected default cost, got %d", h.cost)
	}
	if h := NewHasher(0); h.cost != DefaultCost {
		t.Errorf("expected default cost, got %d", h.cost)
	}
}
