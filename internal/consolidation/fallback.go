package consolidation

import (
	"github.com/rafaelvm/surebetops/internal/pkg/models"
)

// ConvertFn converts a raw value from its original currency into the
// consolidation currency at current rates. ok=false means no usable rate;
// the fallback chain then degrades to the raw value instead of failing.
type ConvertFn func(value float64, fromCurrency string) (converted float64, ok bool)

// Tier identifies which fallback source produced a consolidated value.
// Lower tiers are more trustworthy; TierRawFallback means the raw value was
// returned unconverted because nothing better was available.
type Tier int

const (
	TierPrecomputed Tier = iota + 1
	TierSameCurrency
	TierReferenceBRL
	TierRuntimeConvert
	TierRawFallback
)

func (t Tier) String() string {
	switch t {
	case TierPrecomputed:
		return "precomputed"
	case TierSameCurrency:
		return "same_currency"
	case TierReferenceBRL:
		return "reference_brl"
	case TierRuntimeConvert:
		return "runtime_convert"
	case TierRawFallback:
		return "raw_fallback"
	default:
		return "unknown"
	}
}

// ConsolidatedValue tags a consolidated figure with the tier that produced
// it, so callers can tell a trustworthy number from a degraded one.
type ConsolidatedValue struct {
	Value float64
	Tier  Tier
}

// Degraded reports whether the value is the raw amount returned unconverted
// despite a currency mismatch. Such figures are displayable but wrong for
// cross-currency aggregation and should be surfaced to operators.
func (v ConsolidatedValue) Degraded() bool {
	return v.Tier == TierRawFallback
}

// valueStrategy is one tier of the stake/profit fallback chain.
type valueStrategy func() (float64, bool)

// runStrategies evaluates tiers strictly in order; first match wins.
func runStrategies(strategies []valueStrategy, raw float64) ConsolidatedValue {
	for i, strategy := range strategies {
		if value, ok := strategy(); ok {
			return ConsolidatedValue{Value: value, Tier: Tier(i + 1)}
		}
	}
	return ConsolidatedValue{Value: raw, Tier: TierRawFallback}
}

// ConsolidatedStakeValue resolves the stake of a bet into the consolidation
// currency using a five-tier fallback, strictly in priority order:
//
//  1. the write-time consolidated snapshot, when present and non-zero;
//  2. the raw stake, when the bet currency already is the consolidation
//     currency (no conversion, no floating-point drift);
//  3. the BRL reference snapshot, when consolidating into BRL;
//  4. runtime conversion through convert, when supplied;
//  5. the raw stake unconverted.
//
// Tier 5 is deliberately wrong rather than fatal: these values sit directly
// on dashboard render paths, where a missing rate must degrade the number,
// not blank the screen. The returned tier lets callers flag the degradation.
//
// Multi-leg operations (StakeTotal set) consolidate the operation total, not
// the single-leg stake. An empty consolidationCurrency defaults to BRL.
func ConsolidatedStakeValue(bet models.BetRecord, convert ConvertFn, consolidationCurrency string) ConsolidatedValue {
	if consolidationCurrency == "" {
		consolidationCurrency = PivotCurrency
	}
	raw := bet.RawStake()

	strategies := []valueStrategy{
		func() (float64, bool) {
			if bet.StakeConsolidated != nil && *bet.StakeConsolidated != 0 {
				return *bet.StakeConsolidated, true
			}
			return 0, false
		},
		func() (float64, bool) {
			if bet.Currency == consolidationCurrency {
				return raw, true
			}
			return 0, false
		},
		func() (float64, bool) {
			if consolidationCurrency == PivotCurrency && bet.StakeBRL != nil {
				return *bet.StakeBRL, true
			}
			return 0, false
		},
		func() (float64, bool) {
			if convert != nil && bet.Currency != consolidationCurrency {
				return convert(raw, bet.Currency)
			}
			return 0, false
		},
	}
	return runStrategies(strategies, raw)
}

// ConsolidatedProfitValue resolves the profit of a bet into the consolidation
// currency. Same tier chain as ConsolidatedStakeValue, except the
// pre-computed snapshot wins on presence alone: a settled profit of exactly
// zero is a legitimate value, not a missing one.
func ConsolidatedProfitValue(bet models.BetRecord, convert ConvertFn, consolidationCurrency string) ConsolidatedValue {
	if consolidationCurrency == "" {
		consolidationCurrency = PivotCurrency
	}
	raw := bet.Profit

	strategies := []valueStrategy{
		func() (float64, bool) {
			if bet.ProfitConsolidated != nil {
				return *bet.ProfitConsolidated, true
			}
			return 0, false
		},
		func() (float64, bool) {
			if bet.Currency == consolidationCurrency {
				return raw, true
			}
			return 0, false
		},
		func() (float64, bool) {
			if consolidationCurrency == PivotCurrency && bet.ProfitBRL != nil {
				return *bet.ProfitBRL, true
			}
			return 0, false
		},
		func() (float64, bool) {
			if convert != nil && bet.Currency != consolidationCurrency {
				return convert(raw, bet.Currency)
			}
			return 0, false
		},
	}
	return runStrategies(strategies, raw)
}

// ConsolidatedStake is the plain-number convenience wrapper used on render
// paths that only need the figure.
func ConsolidatedStake(bet models.BetRecord, convert ConvertFn, consolidationCurrency string) float64 {
	return ConsolidatedStakeValue(bet, convert, consolidationCurrency).Value
}

// ConsolidatedProfit is the plain-number convenience wrapper for profit.
func ConsolidatedProfit(bet models.BetRecord, convert ConvertFn, consolidationCurrency string) float64 {
	return ConsolidatedProfitValue(bet, convert, consolidationCurrency).Value
}
