package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/campsite/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when all rules pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("title", "Mountain View"),
			validator.MinFloat64("price", 25, 0),
			validator.IntBetween("rating", 4, 1, 5),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every violation, not just the first", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("title", "  "),
			validator.RequiredString("location", ""),
			validator.MinFloat64("price", -1, 0),
		)
		require.Error(t, err)

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 3)
		assert.Equal(t, []string{"title", "location", "price"}, ve.Fields())
	})

	t.Run("error message lists all fields", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("body", ""),
			validator.IntBetween("rating", 9, 1, 5),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "body: is required")
		assert.Contains(t, err.Error(), "rating: must be between 1 and 5")
	})
}

func TestRules(t *testing.T) {
	t.Parallel()

	t.Run("required string", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.RequiredString("f", "x"))
		assert.NotNil(t, validator.RequiredString("f", ""))
		assert.NotNil(t, validator.RequiredString("f", " \t "))
	})

	t.Run("min length counts runes", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.MinLenString("f", "пароль", 6))
		assert.NotNil(t, validator.MinLenString("f", "short", 8))
		assert.Nil(t, validator.MinLenString("f", "", 8), "empty passes, RequiredString owns presence")
	})

	t.Run("max length", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.MaxLenString("f", "ok", 2))
		assert.NotNil(t, validator.MaxLenString("f", "too long", 3))
	})

	t.Run("min float", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.MinFloat64("f", 0, 0))
		assert.NotNil(t, validator.MinFloat64("f", -0.01, 0))
	})

	t.Run("int between is inclusive", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.IntBetween("f", 1, 1, 5))
		assert.Nil(t, validator.IntBetween("f", 5, 1, 5))
		assert.NotNil(t, validator.IntBetween("f", 0, 1, 5))
		assert.NotNil(t, validator.IntBetween("f", 6, 1, 5))
	})

	t.Run("email", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.ValidEmail("f", "camper@example.com"))
		assert.NotNil(t, validator.ValidEmail("f", "not-an-email"))
		assert.NotNil(t, validator.ValidEmail("f", "Name <a@b.com>"))
	})
}

func TestExtractValidationErrors(t *testing.T) {
	t.Parallel()

	t.Run("returns nil for unrelated errors", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.ExtractValidationErrors(assert.AnError))
	})

	t.Run("Has reports violated fields", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(validator.RequiredString("email", ""))
		ve := validator.ExtractValidationErrors(err)
		assert.True(t, ve.Has("email"))
		assert.False(t, ve.Has("password"))
	})
}
