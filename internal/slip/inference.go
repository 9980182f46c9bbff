package slip

import (
	"math"

	"github.com/rafaelvm/surebetops/internal/pkg/models"
)

// hiddenDecimalTolerance separates genuine hidden decimals from rounding of
// a correctly-read 2-decimal price. Books truncate displayed odds to 2
// decimals while settling at full precision; a payout-derived price more
// than half a cent away from the OCR price means decimals were hidden.
const hiddenDecimalTolerance = 0.005

// InferMissingFields fills slip fields the OCR engine omitted or garbled,
// using settlement arithmetic. It returns an augmented copy; the input is
// never mutated. Rules:
//
//   - stake and payout known, odds missing or unusable: odds become
//     payout/stake, flagged OddsDerived;
//   - derived odds disagreeing with OCR odds beyond rounding additionally
//     set HasHiddenDecimal and replace the OCR value;
//   - payout missing with stake and odds known: stake*odds;
//   - profit missing with payout and stake known: payout-stake.
//
// Derivations mark the slip for review; they are inferences, not facts read
// off the image.
func InferMissingFields(parsed models.ParsedSlip) models.ParsedSlip {
	out := parsed

	if out.Stake != nil && *out.Stake > 0 && out.Payout != nil && *out.Payout > 0 {
		derived := *out.Payout / *out.Stake
		switch {
		case !usableOdds(out.Odds):
			out.Odds = &derived
			out.OddsDerived = true
			out.NeedsReview = true
		case math.Abs(derived-*out.Odds) > hiddenDecimalTolerance:
			out.Odds = &derived
			out.OddsDerived = true
			out.HasHiddenDecimal = true
			out.NeedsReview = true
		}
	}

	if out.Payout == nil && out.Stake != nil && usableOdds(out.Odds) {
		payout := *out.Stake * *out.Odds
		out.Payout = &payout
	}

	if out.Profit == nil && out.Payout != nil && out.Stake != nil {
		profit := *out.Payout - *out.Stake
		out.Profit = &profit
	}

	return out
}

// usableOdds rejects odds the OCR engine clearly garbled: decimal odds are
// strictly greater than 1 by definition.
func usableOdds(odds *float64) bool {
	return odds != nil && !math.IsNaN(*odds) && !math.IsInf(*odds, 0) && *odds > 1
}
