package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCpfValid(t *testing.T) {
	cases := map[string]bool{
		"529.982.247-25": true,
		"52998224725":    true,
		"529.982.247-26": false,
		"111.111.111-11": false,
		"1234567890":     false,
		"":               false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsCpfValid(in), in)
	}
}

func TestIsCnpjValid(t *testing.T) {
	cases := map[string]bool{
		"11.222.333/0001-81": true,
		"11222333000181":     true,
		"11.222.333/0001-80": false,
		"00000000000000":     false,
		"1122233300018":      false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsCnpjValid(in), in)
	}
}

func TestPlaca(t *testing.T) {
	assert.Equal(t, "ABC1234", NormalizePlaca(" abc-1234 "))
	assert.True(t, IsPlacaValid("abc-1234"))
	assert.True(t, IsPlacaValid("BRA2E19"))
	assert.False(t, IsPlacaValid("AB12345"))
	assert.False(t, IsPlacaValid("ABCD123"))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("fulano@policia.gov.br"))
	assert.False(t, ValidateEmail("fulano@"))
	assert.False(t, ValidateEmail("sem arroba.com"))
}

func TestCheckPassword(t *testing.T) {
	assert.NotEmpty(t, CheckPassword("123"))
	assert.NotEmpty(t, CheckPassword("      "))
	assert.Empty(t, CheckPassword("segredo"))
}

func TestUFAndDate(t *testing.T) {
	assert.True(t, IsUFValid("sp"))
	assert.False(t, IsUFValid("XX"))
	assert.True(t, IsDateValid("1990-02-28"))
	assert.False(t, IsDateValid("28/02/1990"))
}

func TestNormalizePhone(t *testing.T) {
	got, err := NormalizePhone("(011) 98765-4321")
	require.NoError(t, err)
	assert.Equal(t, "11987654321", got)

	got, err = NormalizePhone("+55 11 98765-4321")
	require.NoError(t, err)
	assert.Equal(t, "5511987654321", got)

	_, err = NormalizePhone("123")
	require.Error(t, err)

	_, err = NormalizePhone("   ")
	require.Error(t, err)
}

func TestOptionalHelpers(t *testing.T) {
	empty := " "
	null := "null"
	id := " abc "
	masked := "529.982.247-25"
	noDigits := "--"

	assert.Nil(t, OptionalID(nil))
	assert.Nil(t, OptionalID(&empty))
	assert.Nil(t, OptionalID(&null))
	assert.Equal(t, "abc", *OptionalID(&id))

	assert.Equal(t, "52998224725", *OptionalDigits(&masked))
	assert.Nil(t, OptionalDigits(&noDigits))

	assert.Equal(t, "Rua das Flores", CollapseSpaces("  Rua   das\tFlores "))
}
