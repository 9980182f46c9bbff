package enums

import "strings"

// MarketDomain identifies the statistical category a total or handicap applies
// to. An Over/Under line is meaningless without one: "Over 2.5" must always be
// qualified as "Over 2.5 Goals", "Over 21.5 Games" and so on.
type MarketDomain string

const (
	DomainGoals   MarketDomain = "goals"
	DomainPoints  MarketDomain = "points"
	DomainGames   MarketDomain = "games"
	DomainSets    MarketDomain = "sets"
	DomainCorners MarketDomain = "corners"
	DomainCards   MarketDomain = "cards"
	DomainRuns    MarketDomain = "runs"
)

// Label returns the display label used when synthesizing market names.
func (d MarketDomain) Label() string {
	switch d {
	case DomainGoals:
		return "Goals"
	case DomainPoints:
		return "Points"
	case DomainGames:
		return "Games"
	case DomainSets:
		return "Sets"
	case DomainCorners:
		return "Corners"
	case DomainCards:
		return "Cards"
	case DomainRuns:
		return "Runs"
	default:
		return "Unknown"
	}
}

// String returns string representation
func (d MarketDomain) String() string {
	return string(d)
}

// Keywords returns lowercase tokens (Portuguese slips plus English) that map
// OCR text to this domain. Exact token match is tried before containment.
func (d MarketDomain) Keywords() []string {
	switch d {
	case DomainGoals:
		return []string{"gols", "gol", "goals", "goal"}
	case DomainPoints:
		return []string{"pontos", "ponto", "points", "pts"}
	case DomainGames:
		return []string{"games", "game"}
	case DomainSets:
		return []string{"sets", "set"}
	case DomainCorners:
		return []string{"escanteios", "escanteio", "cantos", "corners", "corner"}
	case DomainCards:
		return []string{"cartoes", "cartões", "cartao", "cartão", "cards", "card"}
	case DomainRuns:
		return []string{"corridas", "corrida", "runs", "run"}
	default:
		return nil
	}
}

// SportDomains returns the ordered list of market domains valid for a sport.
// Order matters: earlier domains win when OCR text matches more than one.
func SportDomains(sport Sport) []MarketDomain {
	switch sport {
	case Football:
		return []MarketDomain{DomainGoals, DomainCorners, DomainCards}
	case Basketball:
		return []MarketDomain{DomainPoints}
	case Tennis:
		return []MarketDomain{DomainGames, DomainSets, DomainPoints}
	case Hockey:
		return []MarketDomain{DomainGoals}
	case Volleyball:
		return []MarketDomain{DomainPoints, DomainSets}
	case Baseball:
		return []MarketDomain{DomainRuns}
	default:
		return []MarketDomain{DomainPoints}
	}
}

// DefaultDomain returns the domain assumed when OCR text resolves to nothing.
// Resolution never fails: every sport has a default.
func DefaultDomain(sport Sport) MarketDomain {
	return SportDomains(sport)[0]
}

// ResolveDomain maps free OCR text to a market domain for the given sport.
// Exact keyword match first, then containment, then the sport default.
func ResolveDomain(sport Sport, text string) (MarketDomain, bool) {
	domains := SportDomains(sport)
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized != "" {
		tokens := strings.Fields(normalized)
		for _, domain := range domains {
			for _, keyword := range domain.Keywords() {
				for _, token := range tokens {
					if token == keyword {
						return domain, true
					}
				}
			}
		}
		for _, domain := range domains {
			for _, keyword := range domain.Keywords() {
				if strings.Contains(normalized, keyword) {
					return domain, true
				}
			}
		}
	}
	return DefaultDomain(sport), false
}
