package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

var ErrInvalidSignature = errors.New("invalid request signature")

// SignatureStrategy authenticates platform hook requests with an HMAC
// signature over the raw request body.
type SignatureStrategy struct {
	secret []byte
}

// NewSignatureStrategy builds SignatureStrategy with the shared hook secret.
func NewSignatureStrategy(secret string) *SignatureStrategy {
	return &SignatureStrategy{secret: []byte(secret)}
}

// Sign computes the signature for a request body.
func (s *SignatureStrategy) Sign(body []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks a presented signature against the request body.
func (s *SignatureStrategy) Verify(body []byte, signature string) error {
	presented, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	if !hmac.Equal(mac.Sum(nil), presented) {
		return ErrInvalidSignature
	}
	return nil
}

func (s *SignatureStrategy) Name() string {
	return "hmac-sha256"
}
