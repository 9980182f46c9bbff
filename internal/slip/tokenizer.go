package slip

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/rafaelvm/surebetops/internal/pkg/models"
)

// marketTokens is the provisional split of one raw OCR market string:
// a side keyword, a numeric line, and whatever descriptive text remains
// for domain resolution.
type marketTokens struct {
	side     models.MarketSide
	handicap bool
	line     *float64
	rest     string
}

var (
	overTokens  = map[string]bool{"over": true, "mais": true, "acima": true, "ov": true}
	underTokens = map[string]bool{"under": true, "menos": true, "abaixo": true, "un": true, "und": true}

	handicapTokens = map[string]bool{"handicap": true, "hcp": true, "ah": true, "spread": true}
	homeTokens     = map[string]bool{"1": true, "casa": true, "home": true}
	awayTokens     = map[string]bool{"2": true, "fora": true, "away": true, "visitante": true}

	// Connectors and qualifiers that carry no domain information.
	fillerTokens = map[string]bool{
		"de": true, "do": true, "da": true, "e": true, "o": true, "a": true,
		"total": true, "totais": true, "linha": true, "line": true,
		"asiatico": true, "asiático": true, "asian": true,
	}

	lineToken = regexp.MustCompile(`^[+-]?\d+(?:[.,]\d+)?$`)
)

// tokenize splits raw OCR market text into side, line and residual text.
// It is total: any input, including garbage, yields a (possibly empty) result.
func tokenize(raw string) marketTokens {
	var tokens marketTokens
	var rest []string

	for _, token := range strings.Fields(scrub(raw)) {
		// Trim stray separators but keep a leading sign: "-1.5" is a
		// legitimate handicap line, "gols." is OCR noise.
		token = strings.Trim(token, ".,")
		switch {
		case token == "":
		case tokens.side == models.SideNone && overTokens[token]:
			tokens.side = models.SideOver
		case tokens.side == models.SideNone && underTokens[token]:
			tokens.side = models.SideUnder
		case handicapTokens[token]:
			tokens.handicap = true
		case tokens.handicap && tokens.side == models.SideNone && homeTokens[token]:
			tokens.side = models.SideHome
		case tokens.handicap && tokens.side == models.SideNone && awayTokens[token]:
			tokens.side = models.SideAway
		case tokens.line == nil && lineToken.MatchString(token):
			if line, err := parseLine(token); err == nil {
				tokens.line = &line
			}
		case fillerTokens[token]:
		default:
			rest = append(rest, token)
		}
	}

	tokens.rest = strings.Join(rest, " ")
	return tokens
}

// scrub lowercases and strips punctuation OCR tends to invent, keeping
// letters, digits and the characters numbers are written with.
func scrub(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == ',' || r == '+' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// parseLine reads a line value written with either decimal separator
// ("2.5" or "2,5").
func parseLine(token string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
}
