package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "inteiro", input: 42, expected: "42"},
		{name: "float truncado", input: 10.9, expected: "10"},
		{name: "nulo vira vazio", input: nil, expected: ""},
		{name: "ponteiro nulo vira vazio", input: (*int)(nil), expected: ""},
		{name: "texto numérico", input: " 7 ", expected: "7"},
		{name: "texto não numérico mantém o original", input: "n/d", expected: "n/d"},
		{name: "texto vazio", input: "", expected: ""},
		{name: "float32 truncado", input: float32(1.5), expected: "1"},
		{name: "sem sinal", input: uint64(12), expected: "12"},
		{name: "NaN mantém o texto", input: math.NaN(), expected: "NaN"},
		{name: "infinito mantém o texto", input: math.Inf(1), expected: "+Inf"},
		{name: "infinito negativo mantém o texto", input: math.Inf(-1), expected: "-Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCount(tt.input))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	share := 0.3333
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "fração com uma casa", input: 0.25, expected: "25.0%"},
		{name: "arredondamento", input: &share, expected: "33.3%"},
		{name: "ponteiro nulo fica em branco", input: (*float64)(nil), expected: ""},
		{name: "cem por cento", input: 1, expected: "100.0%"},
		{name: "valor inválido", input: "abc", expected: "abc"},
		{name: "NaN mantém o texto", input: math.NaN(), expected: "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPercent(tt.input))
		})
	}
}

func TestFormatVariation(t *testing.T) {
	assert.Equal(t, "+100.0%", FormatVariation(1.0))
	assert.Equal(t, "-50.0%", FormatVariation(-0.5))
	assert.Equal(t, "0.0%", FormatVariation(0.0))
	assert.Equal(t, "+Inf", FormatVariation(math.Inf(1)))
}

func TestPercentValue(t *testing.T) {
	assert.Equal(t, 25.7, PercentValue(0.2567))
	assert.Equal(t, 0.0, PercentValue(0))
	assert.True(t, math.IsNaN(PercentValue(math.NaN())))
	assert.True(t, math.IsInf(PercentValue(math.Inf(-1)), -1))
}
