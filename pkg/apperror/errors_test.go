package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	notFound := NewNotFoundError("Customer")
	wrapped := fmt.Errorf("loading month: %w", notFound)

	assert.Same(t, notFound, GetAppError(wrapped))
	assert.Equal(t, "Customer not found", GetAppError(wrapped).Error())

	internal := GetAppError(errors.New("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, internal.Code)
	assert.Equal(t, "Internal server error", internal.Message)
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("milk_price", "must not be negative")

	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, []FieldError{{Field: "milk_price", Message: "must not be negative"}}, err.Errors)
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusConflict, NewConflictError("phone taken").Code)
	assert.Equal(t, http.StatusBadRequest, NewBadRequestError("bad").Code)
}
