package models

// MonetaryAmount couples a raw value with the currency it was recorded in.
// Amounts in different currencies are never summed directly; they go through
// the consolidation engine.
type MonetaryAmount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// BreakdownEntry is the contribution of one original currency to a
// consolidated total, kept for audit/tooltip display.
type BreakdownEntry struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

// ConsolidationResult is the outcome of consolidating per-currency volumes
// into a single reporting currency.
//
// Total equals the sum of breakdown entries converted via Rates. Breakdown is
// ordered with the consolidation currency first (when present), remaining
// currencies alphabetically. Rates holds direct cross rates into Currency,
// keyed by original currency; the consolidation currency itself never appears.
type ConsolidationResult struct {
	Total     float64            `json:"total"`
	Currency  string             `json:"currency"`
	Breakdown []BreakdownEntry   `json:"breakdown"`
	Rates     map[string]float64 `json:"rates"`
}
