package slip

import (
	"math"
	"testing"

	"github.com/rafaelvm/surebetops/internal/pkg/models"
)

func ptr(v float64) *float64 { return &v }

func TestInferMissingFields_HiddenDecimal(t *testing.T) {
	// Slip shows 2.60 but settled at 264 for a 100 stake: the true price was
	// 2.64 and the book truncated the display.
	parsed := models.ParsedSlip{
		Stake:  ptr(100),
		Payout: ptr(264),
		Odds:   ptr(2.60),
	}

	out := InferMissingFields(parsed)

	if out.Odds == nil || math.Abs(*out.Odds-2.64) > 1e-9 {
		t.Fatalf("odds = %v, want derived 2.64", out.Odds)
	}
	if !out.OddsDerived {
		t.Error("OddsDerived must be set")
	}
	if !out.HasHiddenDecimal {
		t.Error("HasHiddenDecimal must be set for a 0.04 discrepancy")
	}
	if !out.NeedsReview {
		t.Error("derived odds must flag the slip for review")
	}
	// The input copy stays untouched.
	if *parsed.Odds != 2.60 || parsed.OddsDerived {
		t.Error("InferMissingFields must not mutate its input")
	}
}

func TestInferMissingFields_RoundingIsNotHiddenDecimal(t *testing.T) {
	parsed := models.ParsedSlip{
		Stake:  ptr(100),
		Payout: ptr(260.3),
		Odds:   ptr(2.60),
	}

	out := InferMissingFields(parsed)

	if out.HasHiddenDecimal {
		t.Error("a 0.003 difference is rounding, not a hidden decimal")
	}
	if out.OddsDerived {
		t.Error("odds within rounding tolerance must be kept as read")
	}
	if *out.Odds != 2.60 {
		t.Errorf("odds = %v, want OCR value kept", *out.Odds)
	}
}

func TestInferMissingFields_DerivesMissingOdds(t *testing.T) {
	tests := []struct {
		name string
		odds *float64
	}{
		{"absent", nil},
		{"garbled zero", ptr(0)},
		{"garbled below one", ptr(0.26)},
		{"garbled nan", ptr(math.NaN())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := InferMissingFields(models.ParsedSlip{
				Stake:  ptr(50),
				Payout: ptr(132),
				Odds:   tt.odds,
			})
			if out.Odds == nil || math.Abs(*out.Odds-2.64) > 1e-9 {
				t.Fatalf("odds = %v, want 2.64", out.Odds)
			}
			if !out.OddsDerived {
				t.Error("OddsDerived must be set")
			}
			if out.HasHiddenDecimal {
				t.Error("no OCR odds to disagree with, HasHiddenDecimal must stay false")
			}
		})
	}
}

func TestInferMissingFields_FillsPayoutAndProfit(t *testing.T) {
	out := InferMissingFields(models.ParsedSlip{
		Stake: ptr(100),
		Odds:  ptr(1.85),
	})

	if out.Payout == nil || math.Abs(*out.Payout-185) > 1e-9 {
		t.Fatalf("payout = %v, want 185", out.Payout)
	}
	if out.Profit == nil || math.Abs(*out.Profit-85) > 1e-9 {
		t.Fatalf("profit = %v, want 85", out.Profit)
	}
}

func TestInferMissingFields_NothingToInfer(t *testing.T) {
	tests := []struct {
		name   string
		parsed models.ParsedSlip
	}{
		{"empty slip", models.ParsedSlip{}},
		{"stake only", models.ParsedSlip{Stake: ptr(100)}},
		{"payout only", models.ParsedSlip{Payout: ptr(264)}},
		{"zero stake", models.ParsedSlip{Stake: ptr(0), Payout: ptr(264)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := InferMissingFields(tt.parsed)
			if out.OddsDerived || out.HasHiddenDecimal {
				t.Errorf("no inference expected, got %+v", out)
			}
		})
	}
}
