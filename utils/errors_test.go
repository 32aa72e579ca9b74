package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorHTTPStatus(t *testing.T) {
	cases := map[ErrorKind]int{
		ErrUnauthorized:        http.StatusUnauthorized,
		ErrNotFound:            http.StatusNotFound,
		ErrInvalidStatus:       http.StatusConflict,
		ErrAlreadyPaidOnline:   http.StatusConflict,
		ErrInsufficientStock:   http.StatusBadRequest,
		ErrBelowMinimumOrder:   http.StatusBadRequest,
		ErrExhaustedUses:       http.StatusBadRequest,
		ErrExpired:             http.StatusBadRequest,
		ErrNotYetActive:        http.StatusBadRequest,
		ErrNoEffectiveDiscount: http.StatusBadRequest,
		ErrValidationFailed:    http.StatusUnprocessableEntity,
		ErrUnknown:             http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, NewDomainError(kind, "x").HTTPStatus(), string(kind))
	}
}

func TestWrapUnknownKeepsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := WrapUnknown("Failed to look up discount", cause)

	assert.Equal(t, ErrUnknown, err.Kind)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsDomainError(t *testing.T) {
	de := NewDomainError(ErrNotFound, "missing")
	assert.Equal(t, de, AsDomainError(de))
	assert.Nil(t, AsDomainError(fmt.Errorf("plain")))
	assert.Nil(t, AsDomainError(nil))
}

func TestWithMeta(t *testing.T) {
	de := NewDomainError(ErrBelowMinimumOrder, "too small").
		WithMeta("shortfall", 20000.0)
	assert.Equal(t, 20000.0, de.Meta["shortfall"])
}
