package consolidation

import (
	"fmt"
	"math"
	"sort"

	"github.com/rafaelvm/surebetops/internal/pkg/models"
)

// PivotCurrency is the intermediate currency all rates are quoted in. Any
// currency converts to any other through it with a single division, so only
// BRL rates need to be known.
const PivotCurrency = "BRL"

// dustThreshold drops negligible residues (sub-cent rounding leftovers)
// before aggregation.
const dustThreshold = 0.01

// RateFn returns the BRL price of one unit of the given currency.
type RateFn func(currency string) (float64, error)

// ErrMissingRate reports a rate the caller's provider failed to supply for a
// currency actually present in the data. Rate availability is the caller's
// contract; the engine does not paper over it.
type ErrMissingRate struct {
	Currency string
	Err      error
}

func (e *ErrMissingRate) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no usable rate for %s: %v", e.Currency, e.Err)
	}
	return fmt.Sprintf("no usable rate for %s", e.Currency)
}

func (e *ErrMissingRate) Unwrap() error { return e.Err }

// resolveRate fetches and validates the BRL rate for a currency. The pivot
// itself is hardcoded to 1 and never looked up.
func resolveRate(currency string, getRate RateFn) (float64, error) {
	if currency == PivotCurrency {
		return 1, nil
	}
	rate, err := getRate(currency)
	if err != nil {
		return 0, &ErrMissingRate{Currency: currency, Err: err}
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, &ErrMissingRate{Currency: currency, Err: fmt.Errorf("rate %v is not finite positive", rate)}
	}
	return rate, nil
}

// ConsolidateVolume converts per-currency aggregate volumes into a single
// total in consolidationCurrency, pivoting through BRL.
//
// Same-currency values are added to the total directly, without a conversion
// round trip. Each converted currency records its effective cross rate
// (rateBRL(currency) / rateBRL(consolidationCurrency)) in the result, so
// value * rate reproduces the conversion regardless of the target currency.
// Entries with |value| < 0.01 are dropped before aggregation.
func ConsolidateVolume(amounts map[string]float64, consolidationCurrency string, getRate RateFn) (models.ConsolidationResult, error) {
	result := models.ConsolidationResult{
		Currency:  consolidationCurrency,
		Breakdown: []models.BreakdownEntry{},
		Rates:     map[string]float64{},
	}
	if len(amounts) == 0 {
		return result, nil
	}

	targetRate, err := resolveRate(consolidationCurrency, getRate)
	if err != nil {
		return models.ConsolidationResult{}, err
	}

	currencies := make([]string, 0, len(amounts))
	for currency := range amounts {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	total := 0.0
	for _, currency := range currencies {
		value := amounts[currency]
		if math.Abs(value) < dustThreshold {
			continue
		}
		result.Breakdown = append(result.Breakdown, models.BreakdownEntry{
			Currency: currency,
			Value:    value,
		})
		if currency == consolidationCurrency {
			total += value
			continue
		}
		rateBRL, err := resolveRate(currency, getRate)
		if err != nil {
			return models.ConsolidationResult{}, err
		}
		crossRate := rateBRL / targetRate
		result.Rates[currency] = crossRate
		total += value * crossRate
	}
	result.Total = total

	// Consolidation currency first, the rest already alphabetical.
	sort.SliceStable(result.Breakdown, func(i, j int) bool {
		if result.Breakdown[i].Currency == consolidationCurrency {
			return result.Breakdown[j].Currency != consolidationCurrency
		}
		if result.Breakdown[j].Currency == consolidationCurrency {
			return false
		}
		return result.Breakdown[i].Currency < result.Breakdown[j].Currency
	})

	return result, nil
}
