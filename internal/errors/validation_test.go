package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("title", "is required", "")

	assert.Equal(t, "title", err.Field)
	assert.Equal(t, "validation error on field 'title': is required", err.Error())
}

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())
	assert.NoError(t, errs.OrNil())

	errs.Add("title", "is required", "required", nil)
	assert.Equal(t, "validation failed: title is required", errs.Error())

	errs.Add("questions[0].options", "must contain at least 2 options", "min", nil)
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
	assert.True(t, errs.HasField("questions[0].options"))
	assert.False(t, errs.HasField("questions[1].options"))

	var target ValidationErrors
	require.Error(t, errs.OrNil())
	assert.True(t, stderrors.As(fmt.Errorf("wrapped: %w", errs.OrNil()), &target))
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("access_code", "must be 6 characters", "access_code", "abc")

	assert.Equal(t, "access_code", err.Rule)
	assert.Equal(t, "abc", err.Value)
}

func TestToValidationErrors(t *testing.T) {
	type payload struct {
		Title   string   `validate:"required"`
		Options []string `validate:"min=2"`
		Email   string   `validate:"omitempty,email"`
	}

	v := validator.New()
	err := v.Struct(payload{Options: []string{"only"}, Email: "nope"})
	require.Error(t, err)

	errs := ToValidationErrors(err)
	require.Len(t, errs, 3)
	assert.Equal(t, "Title", errs[0].Field)
	assert.Equal(t, "is required", errs[0].Message)
	assert.Equal(t, "must contain at least 2 items", errs[1].Message)
	assert.Equal(t, "email", errs[2].Rule)

	assert.Empty(t, ToValidationErrors(stderrors.New("plain")))
}
