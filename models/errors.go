package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidSession      = errors.New("invalid session")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrInvalidPayment      = errors.New("invalid payment method")
	ErrCheckoutInProgress  = errors.New("checkout already in progress")
	ErrCheckoutConflict    = errors.New("client order id belongs to another checkout")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed by provider")
	ErrProviderUnavailable = errors.New("payment provider not configured")
	ErrInvalidCredentials  = errors.New("invalid email or password")
)

// FieldErrors maps a form field to its inline error message.
type FieldErrors map[string]string

type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// ProviderError carries the message an external payment or chat provider
// returned so it can be surfaced to the customer as-is.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (%d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// CardStatusError is returned when a card intent exists but has not succeeded.
type CardStatusError struct {
	IntentStatus string
}

func (e *CardStatusError) Error() string {
	return fmt.Sprintf("payment intent status is %q", e.IntentStatus)
}

func (e *CardStatusError) Unwrap() error {
	return ErrPaymentNotConfirmed
}
