package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Aguacate Hass", "aguacate-hass"},
		{"accents folded", "Maíz Peto Añejo", "maiz-peto-anejo"},
		{"punctuation collapsed", "Malla x5 (¡Oferta!)", "malla-x5-oferta"},
		{"leading and trailing noise", "  --Limón--  ", "limon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.in))
		})
	}
}

func TestFormatCOP(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want string
	}{
		{"small", 400, "$400"},
		{"thousands", 7400, "$7.400"},
		{"tens of thousands", 68900, "$68.900"},
		{"millions", 1250000, "$1.250.000"},
		{"zero", 0, "$0"},
		{"negative", -7400, "-$7.400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCOP(decimal.NewFromInt(tt.in)))
		})
	}
}

func TestFormatCOPRoundsFractions(t *testing.T) {
	assert.Equal(t, "$956", FormatCOP(decimal.NewFromFloat(955.5)))
}
