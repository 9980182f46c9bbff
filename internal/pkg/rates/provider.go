package rates

import (
	"context"
	"fmt"
	"strings"

	"github.com/rafaelvm/surebetops/internal/consolidation"
)

// Provider resolves the BRL price of one unit of a currency. The engine
// stays pure: it receives lookups, never fetches them. Implementations own
// freshness (TTL, refresh) themselves.
type Provider interface {
	RateBRL(ctx context.Context, currency string) (float64, error)
}

// Static is a fixed in-memory rate table, used by tests and the CLI tools.
type Static map[string]float64

func (s Static) RateBRL(_ context.Context, currency string) (float64, error) {
	if currency == consolidation.PivotCurrency {
		return 1, nil
	}
	rate, ok := s[strings.ToUpper(currency)]
	if !ok {
		return 0, fmt.Errorf("no BRL rate for %s", currency)
	}
	return rate, nil
}

// AsRateFn adapts a Provider to the consolidation engine's lookup function.
func AsRateFn(ctx context.Context, provider Provider) consolidation.RateFn {
	return func(currency string) (float64, error) {
		return provider.RateBRL(ctx, currency)
	}
}

// Converter builds a ConvertFn into the target currency, pivoting through
// BRL. A missing rate yields ok=false, letting the fallback chain degrade
// instead of erroring on a render path.
func Converter(ctx context.Context, provider Provider, targetCurrency string) consolidation.ConvertFn {
	return func(value float64, fromCurrency string) (float64, bool) {
		rateFrom := 1.0
		if fromCurrency != consolidation.PivotCurrency {
			var err error
			rateFrom, err = provider.RateBRL(ctx, fromCurrency)
			if err != nil || rateFrom <= 0 {
				return 0, false
			}
		}
		rateTarget := 1.0
		if targetCurrency != consolidation.PivotCurrency {
			var err error
			rateTarget, err = provider.RateBRL(ctx, targetCurrency)
			if err != nil || rateTarget <= 0 {
				return 0, false
			}
		}
		return value * rateFrom / rateTarget, true
	}
}
