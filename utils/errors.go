package utils

import (
	"fmt"
	"net/http"
)

// ErrorKind is the typed reason a domain operation failed. Callers branch
// on the kind, not on message text.
type ErrorKind string

const (
	ErrUnauthorized        ErrorKind = "Unauthorized"
	ErrNotFound            ErrorKind = "NotFound"
	ErrInvalidStatus       ErrorKind = "InvalidStatus"
	ErrAlreadyPaidOnline   ErrorKind = "AlreadyPaidOnline"
	ErrInsufficientStock   ErrorKind = "InsufficientStock"
	ErrBelowMinimumOrder   ErrorKind = "BelowMinimumOrder"
	ErrExhaustedUses       ErrorKind = "ExhaustedUses"
	ErrExpired             ErrorKind = "Expired"
	ErrNotYetActive        ErrorKind = "NotYetActive"
	ErrNoEffectiveDiscount ErrorKind = "NoEffectiveDiscount"
	ErrValidationFailed    ErrorKind = "ValidationFailed"
	ErrUnknown             ErrorKind = "Unknown"
)

// DomainError is an expected domain-rule violation or a wrapped
// collaborator failure. Meta carries structured detail for the caller
// (e.g. the shortfall amount, or the offending variants).
type DomainError struct {
	Kind    ErrorKind              `json:"kind"`
	Message string                 `json:"message"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
	Err     error                  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap implements the unwrap interface
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(kind ErrorKind, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

// WithMeta attaches a structured detail field to the error.
func (e *DomainError) WithMeta(key string, value interface{}) *DomainError {
	if e.Meta == nil {
		e.Meta = map[string]interface{}{}
	}
	e.Meta[key] = value
	return e
}

// WrapUnknown wraps an unexpected collaborator failure, keeping the
// underlying cause for logs but not for end users.
func WrapUnknown(message string, err error) *DomainError {
	return &DomainError{Kind: ErrUnknown, Message: message, Err: err}
}

// AsDomainError returns the DomainError if err is one, else nil.
func AsDomainError(err error) *DomainError {
	if de, ok := err.(*DomainError); ok {
		return de
	}
	return nil
}

// HTTPStatus maps the error kind to an HTTP status code.
func (e *DomainError) HTTPStatus() int {
	switch e.Kind {
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrNotFound:
		return http.StatusNotFound
	case ErrInvalidStatus, ErrAlreadyPaidOnline:
		return http.StatusConflict
	case ErrInsufficientStock, ErrBelowMinimumOrder, ErrExhaustedUses,
		ErrExpired, ErrNotYetActive, ErrNoEffectiveDiscount:
		return http.StatusBadRequest
	case ErrValidationFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
