package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Title string  `validate:"required"`
	Price float64 `validate:"gte=0"`
	Score float64 `validate:"gte=0,lte=5"`
}

func TestValidate_OK(t *testing.T) {
	err := Validate(sampleInput{Title: "Kumkumadi Serum", Price: 29.99, Score: 4.5})
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(sampleInput{Price: 10})

	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "is required", valErr.Fields()["Title"])
}

func TestValidate_OutOfRange(t *testing.T) {
	err := Validate(sampleInput{Title: "x", Price: -1, Score: 6})

	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Equal(t, "must be greater than or equal to 0", fields["Price"])
	assert.Equal(t, "must be less than or equal to 5", fields["Score"])
	assert.Contains(t, valErr.Error(), "field 'Price'")
}
