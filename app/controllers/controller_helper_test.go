package controllers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gradfolio/storefront/internal/pkg/backend"
)

func TestBackendErrorMessage(t *testing.T) {
	assert.Equal(t, "Not found.",
		backendErrorMessage(&backend.APIError{StatusCode: 404, Detail: "Not found."}))
	assert.Equal(t, "order amount below minimum",
		backendErrorMessage(&backend.APIError{StatusCode: 502, CashfreeError: "order amount below minimum"}))
	assert.Equal(t, "Something went wrong. Please try again.",
		backendErrorMessage(errors.New("dial tcp: connection refused")))
	assert.Equal(t, "Something went wrong. Please try again.",
		backendErrorMessage(&backend.APIError{StatusCode: 500}))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&backend.APIError{StatusCode: 404}))
	assert.False(t, isNotFound(&backend.APIError{StatusCode: 502}))
	assert.False(t, isNotFound(errors.New("nope")))
}
