package auth

import (
	"errors"
	"testing"
)

func TestSignatureSignAndVerify(t *testing.T) {
	s := NewSignatureStrategy("secret")
	body := []byte(`{"order_id":"a1","total":"500.00"}`)

	sig := s.Sign(body)
	if sig == "" {
		t.Fatal("expected non-empty signature")
	}
	if err := s.Verify(body, sig); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSignatureVerifyRejectsTamperedBody(t *testing.T) {
	s := NewSignatureStrategy("secret")
	sig := s.Sign([]byte("original"))

	if err := s.Verify([]byte("tampered"), sig); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestSignatureVerifyRejectsWrongSecret(t *testing.T) {
	body := []byte("payload")
	sig := NewSignatureStrategy("one").Sign(body)

	if err := NewSignatureStrategy("two").Verify(body, sig); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestSignatureVerifyRejectsMalformedSignature(t *testing.T) {
	s := NewSignatureStrategy("secret")
	if err := s.Verify([]byte("payload"), "%%%not-base64%%%"); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestSignatureName(t *testing.T) {
	if got := NewSignatureStrategy("secret").Name(); got != "hmac-sha256" {
		t.Fatalf("unexpected strategy name %q", got)
	}
}
