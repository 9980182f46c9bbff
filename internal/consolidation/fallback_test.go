package consolidation

import (
	"testing"

	"github.com/rafaelvm/surebetops/internal/pkg/models"
)

func f64(v float64) *float64 { return &v }

func TestConsolidatedStake_TierPrecedence(t *testing.T) {
	noConvert := ConvertFn(nil)
	convert := func(value float64, from string) (float64, bool) {
		if from == "USD" {
			return value * 5, true
		}
		return 0, false
	}

	tests := []struct {
		name     string
		bet      models.BetRecord
		convert  ConvertFn
		currency string
		want     float64
		wantTier Tier
	}{
		{
			name: "precomputed beats same currency",
			bet: models.BetRecord{
				Stake:             100,
				Currency:          "BRL",
				StakeConsolidated: f64(97.5),
			},
			convert:  noConvert,
			currency: "BRL",
			want:     97.5,
			wantTier: TierPrecomputed,
		},
		{
			name: "zero precomputed stake is skipped",
			bet: models.BetRecord{
				Stake:             100,
				Currency:          "BRL",
				StakeConsolidated: f64(0),
			},
			convert:  noConvert,
			currency: "BRL",
			want:     100,
			wantTier: TierSameCurrency,
		},
		{
			name: "same currency returns raw exactly",
			bet: models.BetRecord{
				Stake:    123.45,
				Currency: "USD",
				StakeBRL: f64(617.25),
			},
			convert:  convert,
			currency: "USD",
			want:     123.45,
			wantTier: TierSameCurrency,
		},
		{
			name: "brl snapshot when consolidating into brl",
			bet: models.BetRecord{
				Stake:    100,
				Currency: "USD",
				StakeBRL: f64(512),
			},
			convert:  noConvert,
			currency: "BRL",
			want:     512,
			wantTier: TierReferenceBRL,
		},
		{
			name: "brl snapshot ignored for non-brl target",
			bet: models.BetRecord{
				Stake:    100,
				Currency: "USD",
				StakeBRL: f64(512),
			},
			convert:  convert,
			currency: "EUR",
			want:     500,
			wantTier: TierRuntimeConvert,
		},
		{
			name: "runtime conversion",
			bet: models.BetRecord{
				Stake:    100,
				Currency: "USD",
			},
			convert:  convert,
			currency: "BRL",
			want:     500,
			wantTier: TierRuntimeConvert,
		},
		{
			name: "raw fallback when nothing else applies",
			bet: models.BetRecord{
				Stake:    100,
				Currency: "USD",
			},
			convert:  noConvert,
			currency: "EUR",
			want:     100,
			wantTier: TierRawFallback,
		},
		{
			name: "convert miss degrades to raw fallback",
			bet: models.BetRecord{
				Stake:    100,
				Currency: "GBP",
			},
			convert:  convert,
			currency: "EUR",
			want:     100,
			wantTier: TierRawFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConsolidatedStakeValue(tt.bet, tt.convert, tt.currency)
			if !approxEqual(got.Value, tt.want) {
				t.Errorf("value = %v, want %v", got.Value, tt.want)
			}
			if got.Tier != tt.wantTier {
				t.Errorf("tier = %s, want %s", got.Tier, tt.wantTier)
			}
		})
	}
}

func TestConsolidatedStake_SameCurrencyIdentity(t *testing.T) {
	// No-op conversions must not introduce floating-point drift.
	values := []float64{0.1, 33.33, 1234.56789, 999999.99}
	for _, v := range values {
		bet := models.BetRecord{Stake: v, Currency: "BRL"}
		got := ConsolidatedStake(bet, nil, "BRL")
		if got != v {
			t.Errorf("ConsolidatedStake(%v) = %v, want bit-exact raw value", v, got)
		}
	}
}

func TestConsolidatedStake_MultiLegUsesOperationTotal(t *testing.T) {
	bet := models.BetRecord{
		Stake:      100,
		StakeTotal: f64(350),
		Currency:   "BRL",
	}
	got := ConsolidatedStakeValue(bet, nil, "BRL")
	if !approxEqual(got.Value, 350) {
		t.Errorf("value = %v, want operation total 350", got.Value)
	}
}

func TestConsolidatedStake_DefaultCurrencyIsBRL(t *testing.T) {
	bet := models.BetRecord{
		Stake:    100,
		Currency: "USD",
		StakeBRL: f64(505),
	}
	got := ConsolidatedStakeValue(bet, nil, "")
	if !approxEqual(got.Value, 505) || got.Tier != TierReferenceBRL {
		t.Errorf("got %+v, want BRL snapshot 505", got)
	}
}

func TestConsolidatedProfit_ZeroPrecomputedIsKept(t *testing.T) {
	// Unlike stake, a settled profit of exactly zero is legitimate data.
	bet := models.BetRecord{
		Profit:             42,
		Currency:           "BRL",
		ProfitConsolidated: f64(0),
	}
	got := ConsolidatedProfitValue(bet, nil, "BRL")
	if got.Value != 0 || got.Tier != TierPrecomputed {
		t.Errorf("got %+v, want precomputed 0", got)
	}
}

func TestConsolidatedProfit_TierChain(t *testing.T) {
	convert := func(value float64, from string) (float64, bool) { return value * 5, true }

	bet := models.BetRecord{Profit: -25.5, Currency: "USD"}
	got := ConsolidatedProfitValue(bet, convert, "BRL")
	if !approxEqual(got.Value, -127.5) || got.Tier != TierRuntimeConvert {
		t.Errorf("got %+v, want converted -127.5", got)
	}

	got = ConsolidatedProfitValue(bet, nil, "BRL")
	if !approxEqual(got.Value, -25.5) || got.Tier != TierRawFallback {
		t.Errorf("got %+v, want degraded raw -25.5", got)
	}
	if !got.Degraded() {
		t.Error("raw fallback must report Degraded")
	}
}
