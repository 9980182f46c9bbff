package consolidation

import (
	"math"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value    float64
		currency string
		want     string
	}{
		{1234.56, "BRL", "R$ 1.234,56"},
		{1234.56, "USD", "$ 1.234,56"},
		{0.5, "EUR", "€ 0,50"},
		{1000000, "GBP", "£ 1.000.000,00"},
		{99.9, "USDT", "₮ 99,90"},
		{-1234.56, "BRL", "-R$ 1.234,56"},
		{42, "ARS", "ARS 42,00"},
		{42, "ars", "ARS 42,00"},
		{0, "BRL", "R$ 0,00"},
		{math.NaN(), "BRL", "R$ NaN"},
		{math.Inf(1), "USD", "$ +Inf"},
		{math.Inf(-1), "USD", "$ -Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatCurrency(tt.value, tt.currency)
			if got != tt.want {
				t.Errorf("FormatCurrency(%v, %q) = %q, want %q", tt.value, tt.currency, got, tt.want)
			}
		})
	}
}
