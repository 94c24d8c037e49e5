package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"dollars", "1234.5", "USD", "$1,234.50"},
		{"negative", "-70", "USD", "-$70.00"},
		{"zero fraction currency", "3600", "JPY", "¥3,600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestFormat_UnknownCurrency(t *testing.T) {
	got := Format(decimal.RequireFromString("10"), "ZZQ")
	assert.Contains(t, got, "10.00")
}

func TestRound(t *testing.T) {
	assert.True(t, decimal.RequireFromString("10.13").Equal(Round(decimal.RequireFromString("10.126"), "USD")))
	assert.True(t, decimal.RequireFromString("10").Equal(Round(decimal.RequireFromString("10.4"), "JPY")))
}
