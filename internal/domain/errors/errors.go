package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidReference    = errors.New("invalid purchase reference")
	ErrNotConfigured       = errors.New("missing required configuration")
	ErrSignatureMismatch   = errors.New("signature mismatch")
	ErrProviderAuth        = errors.New("provider authentication failed")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrAuthenticity        = errors.New("correlation reference mismatch")
)

// ProviderUnavailableError signals a transient provider failure such as a
// network error or timeout. Callers may retry; definitive rejections never
// use this type.
type ProviderUnavailableError struct {
	Err error
}

func (e ProviderUnavailableError) Error() string {
	return fmt.Sprintf("payment provider unavailable: %v", e.Err)
}

func (e ProviderUnavailableError) Unwrap() error {
	return e.Err
}
