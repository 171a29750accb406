package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string `json:"name" validate:"required,min=2,max=5"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Confirm  string `json:"confirm_password" validate:"eqfield=Password"`
	Qty      *int   `json:"quantity" validate:"required,gte=0"`
}

func TestStruct(t *testing.T) {
	qty := 1

	t.Run("Valid", func(t *testing.T) {
		errs := Struct(sample{Name: "Ana", Email: "a@b.co", Password: "secret", Confirm: "secret", Qty: &qty})
		assert.Empty(t, errs)
		assert.NoError(t, errs.OrNil())
	})

	t.Run("Reports json field names", func(t *testing.T) {
		errs := Struct(sample{Name: "A", Email: "nope", Password: "123", Confirm: "x"})

		assert.Equal(t, "must be at least 2 characters", errs["name"])
		assert.Equal(t, "must be a valid email", errs["email"])
		assert.Equal(t, "must be at least 6 characters", errs["password"])
		assert.Equal(t, "must match Password", errs["confirm_password"])
		assert.Equal(t, "is required", errs["quantity"])
	})

	t.Run("Usable as error", func(t *testing.T) {
		err := Struct(sample{}).OrNil()
		require.Error(t, err)

		var verrs Errors
		assert.True(t, errors.As(err, &verrs))
		assert.Contains(t, err.Error(), "email is required")
	})
}

func TestErrorsAdd(t *testing.T) {
	errs := Errors{}
	errs.Add("price", "first")
	errs.Add("price", "second")
	assert.Equal(t, "first", errs["price"])
	assert.Equal(t, "validation failed: price first", errs.Error())
}
