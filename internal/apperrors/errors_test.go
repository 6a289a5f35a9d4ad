package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation(nil).StatusCode)
	assert.Equal(t, http.StatusUnprocessableEntity, Duplicate("name", "x", "taken").StatusCode)
	assert.Equal(t, http.StatusNotFound, NotFound("Product", 7).StatusCode)
	assert.Equal(t, http.StatusBadRequest, BadRequest("nope").StatusCode)
	assert.Equal(t, http.StatusInternalServerError, Internal(errors.New("boom")).StatusCode)
	assert.Equal(t, http.StatusServiceUnavailable, New(ErrCodeUnavailable, "down").StatusCode)
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("Product", 7)
	assert.Equal(t, "Product with ID 7 not found", err.Message)
	assert.Equal(t, "NOT_FOUND: Product with ID 7 not found", err.Error())
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	err := Internal(cause)

	assert.Equal(t, "An unexpected error occurred", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Extensions(), "details")
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NotFound("User", 1))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeNotFound, appErr.Code)
	assert.True(t, IsCode(wrapped, ErrCodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), ErrCodeNotFound))
}

func TestNormalize(t *testing.T) {
	assert.Nil(t, Normalize(nil))

	typed := Validation([]FieldError{{Field: "name", Constraint: "required"}})
	assert.Same(t, typed, Normalize(typed))

	plain := Normalize(errors.New("db down"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
}

func TestDuplicateDetails(t *testing.T) {
	err := Duplicate("name", "Widget", "Product name already exists").WithHint("Choose another name")

	details, ok := err.Details.([]FieldError)
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, "unique", details[0].Constraint)
	assert.Equal(t, "Widget", details[0].Value)

	ext := err.Extensions()
	assert.Equal(t, "DUPLICATE_RESOURCE", ext["code"])
	assert.Equal(t, "Choose another name", ext["hint"])
}
