package models

import (
	"time"

	"github.com/rafaelvm/surebetops/internal/pkg/enums"
)

// MarketSide is the side of a totals or handicap market. Empty for selections
// that carry no side (a plain moneyline pick).
type MarketSide string

const (
	SideNone  MarketSide = ""
	SideOver  MarketSide = "over"
	SideUnder MarketSide = "under"
	SideHome  MarketSide = "home"
	SideAway  MarketSide = "away"
)

// CanonicalMarket is the normalized, sport-aware representation of a betting
// market parsed from OCR text.
//
// Invariant: a market with a non-empty Side or a non-nil Line always has a
// resolved Domain. DisplayName is synthesized from domain and side labels and
// never echoes the raw OCR text; RawLabel keeps the original for audit.
type CanonicalMarket struct {
	Domain      enums.MarketDomain `json:"domain"`
	Side        MarketSide         `json:"side,omitempty"`
	Line        *float64           `json:"line,omitempty"`
	RawLabel    string             `json:"raw_label"`
	DisplayName string             `json:"display_name"`
}

// SlipInput carries the raw OCR-extracted fields of one bet-slip image.
// Numeric fields are nil when the OCR engine omitted them or reported them
// with confidence too low to trust.
type SlipInput struct {
	SportLabel string   `json:"sport_label"`
	MarketText string   `json:"market_text"`
	Stake      *float64 `json:"stake,omitempty"`
	Odds       *float64 `json:"odds,omitempty"`
	Payout     *float64 `json:"payout,omitempty"`
	Currency   string   `json:"currency"`
}

// ParsedSlip is a bet slip after normalization and inference. Every field is
// best-effort: the pipeline degrades to defaults instead of rejecting input,
// so a human operator always sees something structured to correct.
type ParsedSlip struct {
	ID     string          `json:"id"`
	Sport  enums.Sport     `json:"sport"`
	Market CanonicalMarket `json:"market"`

	Stake    *float64 `json:"stake,omitempty"`
	Odds     *float64 `json:"odds,omitempty"`
	Payout   *float64 `json:"payout,omitempty"`
	Profit   *float64 `json:"profit,omitempty"`
	Currency string   `json:"currency"`

	// OddsDerived marks odds reconstructed as payout/stake rather than read
	// from the slip. HasHiddenDecimal marks derived odds that materially
	// disagree with the OCR-read odds: many books truncate displayed odds to
	// 2 decimals while settling at full precision.
	OddsDerived      bool `json:"odds_derived"`
	HasHiddenDecimal bool `json:"has_hidden_decimal"`

	// NeedsReview flags slips a human should look at before the record is
	// trusted: generic sport, domain resolved by default, or derived odds.
	NeedsReview bool `json:"needs_review"`

	RawSportLabel string    `json:"raw_sport_label"`
	RawMarketText string    `json:"raw_market_text"`
	ImportedAt    time.Time `json:"imported_at"`
}
