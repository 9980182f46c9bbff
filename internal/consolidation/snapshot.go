package consolidation

import (
	"github.com/rafaelvm/surebetops/internal/pkg/models"
)

// SnapshotBet fills the write-time consolidated and BRL reference snapshots
// on a bet about to be persisted. Snapshots already present are left alone:
// they are immutable once written, readers only fall back across them.
//
// This runs at write time, where rate availability is a hard requirement;
// errors propagate instead of degrading.
func SnapshotBet(bet *models.BetRecord, consolidationCurrency string, getRate RateFn) error {
	if consolidationCurrency == "" {
		consolidationCurrency = PivotCurrency
	}

	rateBRL, err := resolveRate(bet.Currency, getRate)
	if err != nil {
		return err
	}
	targetRate, err := resolveRate(consolidationCurrency, getRate)
	if err != nil {
		return err
	}

	if bet.StakeBRL == nil {
		v := bet.RawStake() * rateBRL
		bet.StakeBRL = &v
	}
	if bet.ProfitBRL == nil {
		v := bet.Profit * rateBRL
		bet.ProfitBRL = &v
	}
	if bet.StakeConsolidated == nil {
		v := bet.RawStake() * rateBRL / targetRate
		bet.StakeConsolidated = &v
	}
	if bet.ProfitConsolidated == nil {
		v := bet.Profit * rateBRL / targetRate
		bet.ProfitConsolidated = &v
	}
	return nil
}
