package consolidation

import (
	"fmt"
	"math"
	"strings"
)

// currencySymbols covers the currencies the backoffice actually displays.
// Anything else falls back to the code itself as a pseudo-symbol.
var currencySymbols = map[string]string{
	"BRL":  "R$",
	"USD":  "$",
	"EUR":  "€",
	"GBP":  "£",
	"USDT": "₮",
	"USDC": "USDC",
}

// FormatCurrency renders a value with its currency symbol and pt-BR style
// grouping (1.234,56). Pure formatting, no rounding of stored values.
func FormatCurrency(value float64, currency string) string {
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency)
	}

	// Raw DB values can carry NaN/Inf; render them as-is instead of panicking
	// in the grouping split.
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprintf("%s %v", symbol, value)
	}

	sign := ""
	if math.Signbit(value) {
		sign = "-"
		value = math.Abs(value)
	}
	return fmt.Sprintf("%s%s %s", sign, symbol, groupDecimal(value))
}

// groupDecimal formats a non-negative value with two decimals, "." thousands
// grouping and "," decimal separator.
func groupDecimal(value float64) string {
	fixed := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}
	return grouped.String() + "," + fracPart
}
