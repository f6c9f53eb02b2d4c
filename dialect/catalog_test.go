package dialect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{backend: "sql", want: SQL},
		{backend: "SQL", want: SQL},
		{backend: " mongodb ", want: MongoDB},
		{backend: "cassandra", want: Cassandra},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			c, err := Open(tt.backend)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Name())
		})
	}

	t.Run("unknown backend", func(t *testing.T) {
		c, err := Open("oracle")
		require.Error(t, err)
		assert.Nil(t, c)
		assert.True(t, errors.Is(err, ErrUnknownBackend))
		assert.Contains(t, err.Error(), `"oracle"`)
	})
}

func TestCatalogTypes(t *testing.T) {
	sql, mongo, cassandra := Relational(), Document(), Columnar()

	assert.True(t, sql.SupportsType("LocalDate"))
	assert.True(t, sql.SupportsType(EnumType))
	assert.False(t, sql.SupportsType("UUID"))
	assert.False(t, sql.SupportsType("string"), "type names are case sensitive")

	assert.True(t, mongo.SupportsType("ZonedDateTime"))
	assert.False(t, mongo.SupportsType("Date"))

	assert.True(t, cassandra.SupportsType("UUID"))
	assert.True(t, cassandra.SupportsType("Date"))
	assert.False(t, cassandra.SupportsType(EnumType))
	assert.False(t, cassandra.SupportsType("LocalDate"))

	assert.True(t, ContainsType(sql, "String"))
	assert.False(t, ContainsType(nil, "String"))
}

func TestCatalogValidations(t *testing.T) {
	for _, c := range []Catalog{Relational(), Document(), Columnar()} {
		t.Run(c.Name(), func(t *testing.T) {
			assert.Equal(t, []string{MaxLength, MinLength, Pattern, Required}, c.ValidationsFor("String"))
			assert.Equal(t, []string{Max, Min, Required}, c.ValidationsFor("Long"))
			assert.Equal(t, []string{Required}, c.ValidationsFor("Boolean"))
			assert.Nil(t, c.ValidationsFor("Money"))

			assert.True(t, c.IsValidationSupported("String", Pattern))
			assert.True(t, c.IsValidationSupported("Blob", MaxBytes))
			assert.False(t, c.IsValidationSupported("Boolean", Min))
			assert.False(t, c.IsValidationSupported("Integer", MaxLength))
			assert.False(t, c.IsValidationSupported("Money", Required))
		})
	}
}

func TestValidationsForReturnsCopy(t *testing.T) {
	c := Relational()
	rules := c.ValidationsFor("String")
	rules[0] = "tampered"
	assert.NotContains(t, c.ValidationsFor("String"), "tampered")
}
