package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email  string `validate:"required,email"`
	Rating int    `validate:"min=1,max=5"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Email: "a@b.co", Rating: 3}))

	errs := Validate(sample{Email: "nope", Rating: 9})
	assert.Equal(t, "email", errs["email"])
	assert.Equal(t, "max=5", errs["rating"])
}
