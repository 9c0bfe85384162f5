package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingInput struct {
	Title         string  `json:"title" validate:"required,min=3,max=100"`
	Price         float64 `json:"price" validate:"gt=0"`
	ContactNumber string  `json:"contact_number" validate:"required,phone10"`
	Category      string  `json:"category" validate:"required,oneof=livestock feed"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

func TestPhone10(t *testing.T) {
	assert.True(t, IsPhone("9876543210"))
	assert.False(t, IsPhone("987654321"))
	assert.False(t, IsPhone("98765432100"))
	assert.False(t, IsPhone("98765abcde"))
}

func TestFirstValidationMessage(t *testing.T) {
	v := newValidate()

	err := v.Struct(listingInput{Title: "Jersey cow", Price: 45000, ContactNumber: "987654321", Category: "livestock"})
	require.Error(t, err)
	assert.Equal(t, "contact_number must be exactly 10 digits", FirstValidationMessage(err))

	err = v.Struct(listingInput{})
	require.Error(t, err)
	assert.Equal(t, "title is required", FirstValidationMessage(err))
	assert.Contains(t, FormatValidationError(err), "; ")
}

func TestOneOfMessage(t *testing.T) {
	v := newValidate()
	err := v.Struct(listingInput{Title: "Hay", Price: 10, ContactNumber: "9876543210", Category: "boats"})
	require.Error(t, err)
	assert.Equal(t, "category must be one of: livestock, feed", FirstValidationMessage(err))
}

func TestValidInputPasses(t *testing.T) {
	v := newValidate()
	assert.NoError(t, v.Struct(listingInput{Title: "Hay bales", Price: 250, ContactNumber: "9876543210", Category: "feed"}))
}
