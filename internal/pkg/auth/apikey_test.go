package auth

import "testing"

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("admin-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "admin-key" {
		t.Fatal("hash must not equal the key")
	}

	if err := h.Compare(hash, "admin-key"); err != nil {
		t.Fatalf("expected key to match hash: %v", err)
	}
	if err := h.Compare(hash, "wrong-key"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestBcryptHasherDefaultCost(t *testing.T) {
	h := NewBcryptHasher(0)
	if h.cost == 0 {
		t.Fatal("expected default cost to be applied")
	}
}
