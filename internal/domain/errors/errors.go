package errors

import "errors"

var (
	ErrAlreadyExists          = errors.New("already exists")
	ErrNotFound               = errors.New("not found")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrMissingCheckoutSession = errors.New("checkout session totals missing")
	ErrImmutableTotals        = errors.New("order totals already persisted")
	ErrInvalidSignature       = errors.New("invalid hook signature")
)
