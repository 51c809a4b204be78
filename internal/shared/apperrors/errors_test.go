package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(Validation("bad input")))
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("missing")))
	assert.Equal(t, http.StatusConflict, StatusOf(Conflict("taken")))
	assert.Equal(t, http.StatusForbidden, StatusOf(Forbidden("not yours")))
	assert.Equal(t, http.StatusBadRequest, StatusOf(PolicyViolation("too late")))
	assert.Equal(t, http.StatusBadGateway, StatusOf(PaymentProcessing("provider down", nil)))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(Internal("boom", nil)))

	// Untyped errors stay opaque
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}

func TestWrappedErrorsKeepTheirCode(t *testing.T) {
	inner := Conflict("seats already reserved: A1")
	wrapped := fmt.Errorf("while reconciling webhook: %w", inner)

	assert.True(t, Is(wrapped, CodeConflict))
	assert.Equal(t, http.StatusConflict, StatusOf(wrapped))
	assert.Equal(t, "seats already reserved: A1", MessageOf(wrapped))
}

func TestMessageOf_OpaqueForUntyped(t *testing.T) {
	msg := MessageOf(errors.New("pq: connection reset"))
	assert.NotContains(t, msg, "pq:")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Internal("failed to reach broker", cause)

	assert.True(t, errors.Is(err, cause))
}
