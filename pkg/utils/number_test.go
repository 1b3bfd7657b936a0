package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"Valor simples", 500, "$500"},
		{"Separador de milhar", 1600, "$1,600"},
		{"Negativo com sinal antes do símbolo", -500, "-$500"},
		{"Negativo com milhar", -12500, "-$12,500"},
		{"Centavos são arredondados", 1599.60, "$1,600"},
		{"Zero", 0, "$0"},
		{"Milhões", 1234567, "$1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(tt.value))
		})
	}
}

func TestFormatInteger(t *testing.T) {
	assert.Equal(t, "8", FormatInteger(8))
	assert.Equal(t, "1,250", FormatInteger(1250))
	assert.Equal(t, "-42", FormatInteger(-42))
	assert.Equal(t, "0", FormatInteger(0))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2025-06-14")

	assert.NoError(t, err)
	assert.Equal(t, 2025, date.Year())
	assert.Equal(t, 14, date.Day())

	_, err = ParseDate("14/06/2025")
	assert.Error(t, err)
}

func TestGenerateID(t *testing.T) {
	first, err := GenerateID()
	assert.NoError(t, err)
	assert.Len(t, first, 6)

	second, err := GenerateID()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
