package slip

import (
	"math/rand"
	"testing"

	"github.com/rafaelvm/surebetops/internal/pkg/enums"
	"github.com/rafaelvm/surebetops/internal/pkg/models"
)

func TestParseMarket_TennisGames(t *testing.T) {
	market := ParseMarket("Tênis", "Mais 21.5 games")

	if market.Domain != enums.DomainGames {
		t.Errorf("domain = %s, want games", market.Domain)
	}
	if market.Side != models.SideOver {
		t.Errorf("side = %q, want over", market.Side)
	}
	if market.Line == nil || *market.Line != 21.5 {
		t.Errorf("line = %v, want 21.5", market.Line)
	}
	if market.DisplayName != "Over/Under Games" {
		t.Errorf("display name = %q, want Over/Under Games", market.DisplayName)
	}
	if market.RawLabel != "Mais 21.5 games" {
		t.Errorf("raw label = %q, want original OCR text", market.RawLabel)
	}
}

func TestParseMarket_Cases(t *testing.T) {
	line := func(v float64) *float64 { return &v }

	tests := []struct {
		name        string
		sport       string
		market      string
		wantDomain  enums.MarketDomain
		wantSide    models.MarketSide
		wantLine    *float64
		wantDisplay string
	}{
		{
			name:        "football total goals pt",
			sport:       "Futebol",
			market:      "Mais de 2.5 gols",
			wantDomain:  enums.DomainGoals,
			wantSide:    models.SideOver,
			wantLine:    line(2.5),
			wantDisplay: "Over/Under Goals",
		},
		{
			name:        "decimal comma",
			sport:       "Futebol",
			market:      "Menos 2,5 cartões",
			wantDomain:  enums.DomainCards,
			wantSide:    models.SideUnder,
			wantLine:    line(2.5),
			wantDisplay: "Over/Under Cards",
		},
		{
			name:        "corners",
			sport:       "Futebol",
			market:      "Acima 9.5 escanteios",
			wantDomain:  enums.DomainCorners,
			wantSide:    models.SideOver,
			wantLine:    line(9.5),
			wantDisplay: "Over/Under Corners",
		},
		{
			name:        "handicap with team and signed line",
			sport:       "Futebol",
			market:      "Handicap 1 -1.5",
			wantDomain:  enums.DomainGoals,
			wantSide:    models.SideHome,
			wantLine:    line(-1.5),
			wantDisplay: "Handicap Goals",
		},
		{
			name:        "handicap without side",
			sport:       "Basquete",
			market:      "Handicap -7.5 pontos",
			wantDomain:  enums.DomainPoints,
			wantSide:    models.SideNone,
			wantLine:    line(-7.5),
			wantDisplay: "Handicap Points",
		},
		{
			name:        "moneyline",
			sport:       "Futebol",
			market:      "Vitória do Flamengo",
			wantDomain:  enums.DomainGoals,
			wantSide:    models.SideNone,
			wantLine:    nil,
			wantDisplay: "Moneyline",
		},
		{
			name:        "tennis sets english",
			sport:       "Tennis",
			market:      "Under 3.5 sets",
			wantDomain:  enums.DomainSets,
			wantSide:    models.SideUnder,
			wantLine:    line(3.5),
			wantDisplay: "Over/Under Sets",
		},
		{
			name:        "unknown sport falls back to generic default domain",
			sport:       "Xadrez",
			market:      "Over 1.5",
			wantDomain:  enums.DomainPoints,
			wantSide:    models.SideOver,
			wantLine:    line(1.5),
			wantDisplay: "Over/Under Points",
		},
		{
			name:        "unresolved text uses sport default",
			sport:       "Futebol",
			market:      "Mais 2.5 qualquercoisa",
			wantDomain:  enums.DomainGoals,
			wantSide:    models.SideOver,
			wantLine:    line(2.5),
			wantDisplay: "Over/Under Goals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			market := ParseMarket(tt.sport, tt.market)
			if market.Domain != tt.wantDomain {
				t.Errorf("domain = %s, want %s", market.Domain, tt.wantDomain)
			}
			if market.Side != tt.wantSide {
				t.Errorf("side = %q, want %q", market.Side, tt.wantSide)
			}
			switch {
			case tt.wantLine == nil && market.Line != nil:
				t.Errorf("line = %v, want nil", *market.Line)
			case tt.wantLine != nil && market.Line == nil:
				t.Errorf("line = nil, want %v", *tt.wantLine)
			case tt.wantLine != nil && *market.Line != *tt.wantLine:
				t.Errorf("line = %v, want %v", *market.Line, *tt.wantLine)
			}
			if market.DisplayName != tt.wantDisplay {
				t.Errorf("display name = %q, want %q", market.DisplayName, tt.wantDisplay)
			}
		})
	}
}

// Every parse must terminate with a domain from the sport's configured list:
// a side or line without a qualified domain is never a valid market.
func TestParseMarket_DomainAlwaysResolved(t *testing.T) {
	inputs := [][2]string{
		{"", ""},
		{"Futebol", ""},
		{"", "Mais 2.5"},
		{"12345", "67890"},
		{"Tênis", "�����"},
		{"Futebol", "撇畤 ファジ 2.5 ��"},
		{"\x00\x01", "� over �"},
		{"Futebol", "+-+-+- ,,, ..."},
	}

	for _, input := range inputs {
		market := ParseMarket(input[0], input[1])
		if market.Domain == "" {
			t.Errorf("ParseMarket(%q, %q) returned empty domain", input[0], input[1])
		}
		sport := enums.DetectSport(input[0])
		if !domainAllowed(sport, market.Domain) {
			t.Errorf("ParseMarket(%q, %q) domain %s not in %s domain list", input[0], input[1], market.Domain, sport)
		}
	}
}

// Pseudo-fuzz: random byte and rune soup must never panic, and the domain
// invariant must hold for every output.
func TestParseMarket_RandomInputNeverPanics(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sports := []string{"", "Futebol", "Tênis", "garbage", "Basquete"}

	for i := 0; i < 2000; i++ {
		runes := make([]rune, rng.Intn(40))
		for j := range runes {
			runes[j] = rune(rng.Intn(0x10000))
		}
		text := string(runes)
		sportLabel := sports[rng.Intn(len(sports))]

		market := ParseMarket(sportLabel, text)
		if !domainAllowed(enums.DetectSport(sportLabel), market.Domain) {
			t.Fatalf("input %q produced out-of-table domain %s", text, market.Domain)
		}
		if (market.Side != models.SideNone || market.Line != nil) && market.Domain == "" {
			t.Fatalf("input %q produced side/line without domain", text)
		}
	}
}

func TestParseSlip_ReviewFlags(t *testing.T) {
	stake := 100.0

	slip := ParseSlip(models.SlipInput{
		SportLabel: "Tênis",
		MarketText: "Mais 21.5 games",
		Stake:      &stake,
		Currency:   "BRL",
	})
	if slip.NeedsReview {
		t.Error("cleanly resolved slip must not need review")
	}
	if slip.ID == "" {
		t.Error("slip must get an import ID")
	}

	generic := ParseSlip(models.SlipInput{SportLabel: "Xadrez", MarketText: "Over 1.5"})
	if !generic.NeedsReview {
		t.Error("generic-sport slip must need review")
	}

	defaulted := ParseSlip(models.SlipInput{SportLabel: "Futebol", MarketText: "Mais 2.5 qualquercoisa"})
	if !defaulted.NeedsReview {
		t.Error("default-domain slip must need review")
	}
}

func domainAllowed(sport enums.Sport, domain enums.MarketDomain) bool {
	for _, d := range enums.SportDomains(sport) {
		if d == domain {
			return true
		}
	}
	return false
}
