package consolidation

import (
	"testing"

	"github.com/rafaelvm/surebetops/internal/pkg/models"
)

func TestSnapshotBet(t *testing.T) {
	getRate := tableRates(map[string]float64{"USD": 5, "EUR": 6})

	bet := models.BetRecord{Stake: 100, Profit: -20, Currency: "USD"}
	if err := SnapshotBet(&bet, "EUR", getRate); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bet.StakeBRL == nil || !approxEqual(*bet.StakeBRL, 500) {
		t.Errorf("StakeBRL = %v, want 500", bet.StakeBRL)
	}
	if bet.ProfitBRL == nil || !approxEqual(*bet.ProfitBRL, -100) {
		t.Errorf("ProfitBRL = %v, want -100", bet.ProfitBRL)
	}
	if bet.StakeConsolidated == nil || !approxEqual(*bet.StakeConsolidated, 500.0/6) {
		t.Errorf("StakeConsolidated = %v, want %v", bet.StakeConsolidated, 500.0/6)
	}
	if bet.ProfitConsolidated == nil || !approxEqual(*bet.ProfitConsolidated, -100.0/6) {
		t.Errorf("ProfitConsolidated = %v, want %v", bet.ProfitConsolidated, -100.0/6)
	}
}

func TestSnapshotBet_NeverOverwrites(t *testing.T) {
	existing := 123.0
	bet := models.BetRecord{Stake: 100, Currency: "USD", StakeBRL: &existing}

	if err := SnapshotBet(&bet, "BRL", tableRates(map[string]float64{"USD": 5})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *bet.StakeBRL != 123.0 {
		t.Errorf("existing snapshot overwritten: %v", *bet.StakeBRL)
	}
}

func TestSnapshotBet_MissingRateFails(t *testing.T) {
	bet := models.BetRecord{Stake: 100, Currency: "USD"}
	if err := SnapshotBet(&bet, "BRL", tableRates(nil)); err == nil {
		t.Fatal("expected error for missing rate")
	}
}
