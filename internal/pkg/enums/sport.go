package enums

import "strings"

// Sport represents supported sports types
type Sport string

const (
	Football   Sport = "football"
	Basketball Sport = "basketball"
	Tennis     Sport = "tennis"
	Hockey     Sport = "hockey"
	Volleyball Sport = "volleyball"
	Baseball   Sport = "baseball"
	// Generic is the fallback sport for labels we cannot classify.
	// Slips tagged with it stay importable and go to human review.
	Generic Sport = "generic"
)

// SportInfo contains additional information about a sport
type SportInfo struct {
	Name  string
	Alias string
}

// GetSportInfo returns sport information
func (s Sport) GetSportInfo() SportInfo {
	switch s {
	case Football:
		return SportInfo{
			Name:  "Football",
			Alias: "football",
		}
	case Basketball:
		return SportInfo{
			Name:  "Basketball",
			Alias: "basketball",
		}
	case Tennis:
		return SportInfo{
			Name:  "Tennis",
			Alias: "tennis",
		}
	case Hockey:
		return SportInfo{
			Name:  "Hockey",
			Alias: "hockey",
		}
	case Volleyball:
		return SportInfo{
			Name:  "Volleyball",
			Alias: "volleyball",
		}
	case Baseball:
		return SportInfo{
			Name:  "Baseball",
			Alias: "baseball",
		}
	default:
		return SportInfo{
			Name:  "Generic",
			Alias: "generic",
		}
	}
}

// IsValid checks if sport is supported
func (s Sport) IsValid() bool {
	switch s {
	case Football, Basketball, Tennis, Hockey, Volleyball, Baseball, Generic:
		return true
	default:
		return false
	}
}

// String returns string representation
func (s Sport) String() string {
	return string(s)
}

// GetAllSports returns all supported sports
func GetAllSports() []Sport {
	return []Sport{
		Football,
		Basketball,
		Tennis,
		Hockey,
		Volleyball,
		Baseball,
		Generic,
	}
}

// sportAliases maps lowercase labels (Portuguese slips plus English) to sports.
var sportAliases = map[string]Sport{
	"futebol":     Football,
	"football":    Football,
	"soccer":      Football,
	"basquete":    Basketball,
	"basquetebol": Basketball,
	"basketball":  Basketball,
	"tenis":       Tennis,
	"tênis":       Tennis,
	"tennis":      Tennis,
	"hoquei":      Hockey,
	"hóquei":      Hockey,
	"hockey":      Hockey,
	"volei":       Volleyball,
	"vôlei":       Volleyball,
	"voleibol":    Volleyball,
	"volleyball":  Volleyball,
	"beisebol":    Baseball,
	"baseball":    Baseball,
}

// DetectSport classifies a free-text sport label from a bet slip.
// Unknown or empty labels map to Generic; detection never fails.
func DetectSport(label string) Sport {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return Generic
	}
	// Labels from our own API round-trip as canonical enum values.
	if sport, ok := ParseSport(normalized); ok {
		return sport
	}
	if sport, ok := sportAliases[normalized]; ok {
		return sport
	}
	// Labels often carry league suffixes ("Futebol - Brasileirão Série A").
	for alias, sport := range sportAliases {
		if strings.Contains(normalized, alias) {
			return sport
		}
	}
	return Generic
}

// ParseSport parses string to Sport enum
func ParseSport(s string) (Sport, bool) {
	sport := Sport(s)
	return sport, sport.IsValid()
}
