package probe

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/rafaelvm/surebetops/internal/pkg/config"
	"github.com/rafaelvm/surebetops/internal/pkg/models"
)

// BalanceProbe reads the displayed cash balance off a bookmaker's cashier
// page with a headless browser. Bookmakers rarely expose balance APIs; the
// rendered page is the only reliable source.
type BalanceProbe struct {
	cfg *config.ProbeConfig
}

func NewBalanceProbe(cfg *config.ProbeConfig) *BalanceProbe {
	return &BalanceProbe{cfg: cfg}
}

// Fetch navigates to the cashier URL and extracts the balance element text.
func (p *BalanceProbe) Fetch(ctx context.Context, cashierURL, currency string) (models.MonetaryAmount, error) {
	timeout := p.cfg.TimeoutDuration()
	selector := p.cfg.BalanceSelector
	if selector == "" {
		selector = ".balance"
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ctx, cancelBrowser := chromedp.NewContext(ctx)
	defer cancelBrowser()

	var balanceText string
	err := chromedp.Run(ctx,
		chromedp.Navigate(cashierURL),
		// Let JavaScript render the cashier widgets.
		chromedp.Sleep(2*time.Second),
		chromedp.Text(selector, &balanceText, chromedp.NodeVisible),
	)
	if err != nil {
		return models.MonetaryAmount{}, fmt.Errorf("failed to fetch balance from %s: %w", cashierURL, err)
	}

	value, err := ParseBalanceText(balanceText)
	if err != nil {
		return models.MonetaryAmount{}, fmt.Errorf("failed to parse balance %q: %w", balanceText, err)
	}

	return models.MonetaryAmount{Value: value, Currency: strings.ToUpper(currency)}, nil
}

var balanceNumber = regexp.MustCompile(`-?\d+(?:[.,]\d{3})*(?:[.,]\d{1,2})?`)

// ParseBalanceText extracts the numeric balance from rendered text like
// "Saldo: R$ 1.234,56" or "$1,234.56". The last separator is taken as the
// decimal mark when it has one or two trailing digits; everything else is
// grouping.
func ParseBalanceText(text string) (float64, error) {
	match := balanceNumber.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("no numeric balance in text")
	}

	lastComma := strings.LastIndex(match, ",")
	lastDot := strings.LastIndex(match, ".")
	lastSep := lastComma
	if lastDot > lastSep {
		lastSep = lastDot
	}

	cleaned := match
	if lastSep >= 0 {
		frac := match[lastSep+1:]
		if len(frac) >= 1 && len(frac) <= 2 {
			intPart := strings.Map(digitsOnly, match[:lastSep])
			cleaned = intPart + "." + frac
		} else {
			cleaned = strings.Map(digitsOnly, match)
		}
		if strings.HasPrefix(match, "-") && !strings.HasPrefix(cleaned, "-") {
			cleaned = "-" + cleaned
		}
	}

	return strconv.ParseFloat(cleaned, 64)
}

func digitsOnly(r rune) rune {
	if r >= '0' && r <= '9' || r == '-' {
		return r
	}
	return -1
}
