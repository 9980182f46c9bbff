package slip

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafaelvm/surebetops/internal/pkg/enums"
	"github.com/rafaelvm/surebetops/internal/pkg/models"
)

// ParseMarket normalizes one raw OCR market string into a canonical market
// for the given free-text sport label.
//
// The stages run strictly in sequence: sport detection, tokenization, domain
// resolution, canonical assembly. Every stage degrades to a default instead
// of failing, so any input produces a displayable market; mis-categorized
// slips are corrected by human review, not rejected at import.
func ParseMarket(rawSportLabel, rawMarketText string) models.CanonicalMarket {
	sport := enums.DetectSport(rawSportLabel)
	market, _ := parseMarket(sport, rawMarketText)
	return market
}

func parseMarket(sport enums.Sport, rawMarketText string) (models.CanonicalMarket, bool) {
	tokens := tokenize(rawMarketText)
	domain, resolved := enums.ResolveDomain(sport, tokens.rest)

	return models.CanonicalMarket{
		Domain:      domain,
		Side:        tokens.side,
		Line:        tokens.line,
		RawLabel:    rawMarketText,
		DisplayName: displayName(domain, tokens.side, tokens.handicap, tokens.line),
	}, resolved
}

// displayName synthesizes the shown market label from domain and side. The
// raw OCR text is never displayed; it survives only as RawLabel for audit.
func displayName(domain enums.MarketDomain, side models.MarketSide, handicap bool, line *float64) string {
	switch {
	case side == models.SideOver || side == models.SideUnder:
		return "Over/Under " + domain.Label()
	case handicap || side == models.SideHome || side == models.SideAway:
		return "Handicap " + domain.Label()
	case line != nil:
		return "Over/Under " + domain.Label()
	default:
		return "Moneyline"
	}
}

// ParseSlip runs the normalization stages over one OCR-extracted slip and
// assembles a ParsedSlip ready for the inference pass.
func ParseSlip(input models.SlipInput) models.ParsedSlip {
	sport := enums.DetectSport(input.SportLabel)
	market, domainResolved := parseMarket(sport, input.MarketText)

	return models.ParsedSlip{
		ID:            uuid.NewString(),
		Sport:         sport,
		Market:        market,
		Stake:         input.Stake,
		Odds:          input.Odds,
		Payout:        input.Payout,
		Currency:      input.Currency,
		NeedsReview:   sport == enums.Generic || !domainResolved,
		RawSportLabel: input.SportLabel,
		RawMarketText: input.MarketText,
		ImportedAt:    time.Now().UTC(),
	}
}
