package models

import "time"

// BetRecord is a financial line item: one bet leg as recorded in the ledger.
//
// The consolidated and reference-currency fields are write-time snapshots
// computed once when the bet is persisted. They are immutable afterwards:
// readers only fall back across them, never recompute or overwrite them.
type BetRecord struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Bookmaker string `json:"bookmaker"`
	MatchName string `json:"match_name"`
	Market    string `json:"market"`

	Stake    float64 `json:"stake"`
	Profit   float64 `json:"profit"`
	Odds     float64 `json:"odds"`
	Currency string  `json:"currency"`

	// StakeTotal is set for multi-leg arbitrage operations: the combined
	// stake across all legs. When present it replaces Stake as the raw value.
	StakeTotal *float64 `json:"stake_total,omitempty"`

	// Snapshots in the project's consolidation currency, captured at write time.
	StakeConsolidated  *float64 `json:"stake_consolidated,omitempty"`
	ProfitConsolidated *float64 `json:"profit_consolidated,omitempty"`

	// Snapshots in BRL, the reference currency, captured at transaction time.
	StakeBRL  *float64 `json:"stake_brl,omitempty"`
	ProfitBRL *float64 `json:"profit_brl,omitempty"`

	PlacedAt  time.Time `json:"placed_at"`
	SettledAt time.Time `json:"settled_at"`
	CreatedAt time.Time `json:"created_at"`
}

// RawStake returns the raw stake value for consolidation: the multi-leg
// operation total when present, the single-leg stake otherwise.
func (b BetRecord) RawStake() float64 {
	if b.StakeTotal != nil {
		return *b.StakeTotal
	}
	return b.Stake
}

// BookmakerAccount is a tracked account at a bookmaker, with its last known
// cash balance.
type BookmakerAccount struct {
	ID        string    `json:"id"`
	Bookmaker string    `json:"bookmaker"`
	Label     string    `json:"label"`
	Currency  string    `json:"currency"`
	Balance   float64   `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}
