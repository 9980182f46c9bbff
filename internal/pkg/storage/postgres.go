package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/rafaelvm/surebetops/internal/pkg/config"
	"github.com/rafaelvm/surebetops/internal/pkg/models"
)

// PostgresStorage persists bookmaker accounts, bet records and the BRL rate
// table. Consolidated snapshot columns are written once at insert and never
// updated afterwards.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(cfg *config.PostgresConfig) (*PostgresStorage, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresStorage{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL storage initialized successfully")
	return s, nil
}

func (s *PostgresStorage) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS bookmaker_accounts (
		id VARCHAR(100) PRIMARY KEY,
		bookmaker VARCHAR(100) NOT NULL,
		label VARCHAR(200) NOT NULL DEFAULT '',
		currency VARCHAR(10) NOT NULL,
		balance DECIMAL(18, 4) NOT NULL DEFAULT 0,
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS bets (
		id VARCHAR(100) PRIMARY KEY,
		account_id VARCHAR(100) NOT NULL DEFAULT '',
		bookmaker VARCHAR(100) NOT NULL DEFAULT '',
		match_name VARCHAR(500) NOT NULL DEFAULT '',
		market VARCHAR(200) NOT NULL DEFAULT '',
		stake DECIMAL(18, 4) NOT NULL,
		profit DECIMAL(18, 4) NOT NULL DEFAULT 0,
		odds DECIMAL(10, 4) NOT NULL DEFAULT 0,
		currency VARCHAR(10) NOT NULL,
		stake_total DECIMAL(18, 4),
		stake_consolidated DECIMAL(18, 4),
		profit_consolidated DECIMAL(18, 4),
		stake_brl DECIMAL(18, 4),
		profit_brl DECIMAL(18, 4),
		placed_at TIMESTAMP,
		settled_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_bets_account ON bets(account_id);
	CREATE INDEX IF NOT EXISTS idx_bets_currency ON bets(currency);

	CREATE TABLE IF NOT EXISTS consolidation_rates (
		currency VARCHAR(10) PRIMARY KEY,
		rate_brl DECIMAL(18, 8) NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS imported_slips (
		id VARCHAR(100) PRIMARY KEY,
		sport VARCHAR(50) NOT NULL,
		domain VARCHAR(50) NOT NULL,
		side VARCHAR(20) NOT NULL DEFAULT '',
		line DECIMAL(10, 2),
		display_name VARCHAR(200) NOT NULL,
		raw_sport_label VARCHAR(200) NOT NULL DEFAULT '',
		raw_market_text VARCHAR(500) NOT NULL DEFAULT '',
		stake DECIMAL(18, 4),
		odds DECIMAL(10, 4),
		payout DECIMAL(18, 4),
		profit DECIMAL(18, 4),
		currency VARCHAR(10) NOT NULL DEFAULT '',
		odds_derived BOOLEAN NOT NULL DEFAULT FALSE,
		has_hidden_decimal BOOLEAN NOT NULL DEFAULT FALSE,
		needs_review BOOLEAN NOT NULL DEFAULT FALSE,
		imported_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_slips_review ON imported_slips(needs_review);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// SaveBet inserts a bet record. Snapshot columns go in as-is; they are
// computed by the caller before the insert and never touched again.
func (s *PostgresStorage) SaveBet(ctx context.Context, bet models.BetRecord) error {
	query := `
	INSERT INTO bets (
		id, account_id, bookmaker, match_name, market,
		stake, profit, odds, currency, stake_total,
		stake_consolidated, profit_consolidated, stake_brl, profit_brl,
		placed_at, settled_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		bet.ID, bet.AccountID, bet.Bookmaker, bet.MatchName, bet.Market,
		bet.Stake, bet.Profit, bet.Odds, bet.Currency, nullable(bet.StakeTotal),
		nullable(bet.StakeConsolidated), nullable(bet.ProfitConsolidated),
		nullable(bet.StakeBRL), nullable(bet.ProfitBRL),
		nullTime(bet.PlacedAt), nullTime(bet.SettledAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save bet %s: %w", bet.ID, err)
	}
	return nil
}

// ListBets returns the most recent bets, newest first.
func (s *PostgresStorage) ListBets(ctx context.Context, limit int) ([]models.BetRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
	SELECT id, account_id, bookmaker, match_name, market,
		stake, profit, odds, currency, stake_total,
		stake_consolidated, profit_consolidated, stake_brl, profit_brl,
		COALESCE(placed_at, created_at), COALESCE(settled_at, created_at), created_at
	FROM bets
	ORDER BY created_at DESC
	LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}
	defer rows.Close()

	var bets []models.BetRecord
	for rows.Next() {
		var bet models.BetRecord
		var stakeTotal, stakeCons, profitCons, stakeBRL, profitBRL sql.NullFloat64
		if err := rows.Scan(
			&bet.ID, &bet.AccountID, &bet.Bookmaker, &bet.MatchName, &bet.Market,
			&bet.Stake, &bet.Profit, &bet.Odds, &bet.Currency, &stakeTotal,
			&stakeCons, &profitCons, &stakeBRL, &profitBRL,
			&bet.PlacedAt, &bet.SettledAt, &bet.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bet.StakeTotal = fromNullable(stakeTotal)
		bet.StakeConsolidated = fromNullable(stakeCons)
		bet.ProfitConsolidated = fromNullable(profitCons)
		bet.StakeBRL = fromNullable(stakeBRL)
		bet.ProfitBRL = fromNullable(profitBRL)
		bets = append(bets, bet)
	}
	return bets, rows.Err()
}

// VolumeByCurrency aggregates raw stake per currency across all bets. The
// result feeds the consolidation engine, which expects same-currency values
// pre-summed.
func (s *PostgresStorage) VolumeByCurrency(ctx context.Context) (map[string]float64, error) {
	query := `SELECT currency, SUM(COALESCE(stake_total, stake)) FROM bets GROUP BY currency`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate volume: %w", err)
	}
	defer rows.Close()

	volumes := map[string]float64{}
	for rows.Next() {
		var currency string
		var volume float64
		if err := rows.Scan(&currency, &volume); err != nil {
			return nil, fmt.Errorf("failed to scan volume row: %w", err)
		}
		volumes[currency] = volume
	}
	return volumes, rows.Err()
}

// UpsertAccount saves a bookmaker account, updating balance on conflict.
func (s *PostgresStorage) UpsertAccount(ctx context.Context, account models.BookmakerAccount) error {
	query := `
	INSERT INTO bookmaker_accounts (id, bookmaker, label, currency, balance, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		label = EXCLUDED.label,
		currency = EXCLUDED.currency,
		balance = EXCLUDED.balance,
		updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		account.ID, account.Bookmaker, account.Label, account.Currency,
		account.Balance, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert account %s: %w", account.ID, err)
	}
	return nil
}

// ListAccounts returns all tracked bookmaker accounts.
func (s *PostgresStorage) ListAccounts(ctx context.Context) ([]models.BookmakerAccount, error) {
	query := `SELECT id, bookmaker, label, currency, balance, updated_at FROM bookmaker_accounts ORDER BY bookmaker, label`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.BookmakerAccount
	for rows.Next() {
		var account models.BookmakerAccount
		if err := rows.Scan(&account.ID, &account.Bookmaker, &account.Label,
			&account.Currency, &account.Balance, &account.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// UpsertRate stores the BRL price of one unit of currency.
func (s *PostgresStorage) UpsertRate(ctx context.Context, currency string, rateBRL float64) error {
	if rateBRL <= 0 {
		return fmt.Errorf("rate for %s must be positive, got %v", currency, rateBRL)
	}
	query := `
	INSERT INTO consolidation_rates (currency, rate_brl, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (currency) DO UPDATE SET
		rate_brl = EXCLUDED.rate_brl,
		updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query, currency, rateBRL)
	if err != nil {
		return fmt.Errorf("failed to upsert rate for %s: %w", currency, err)
	}
	return nil
}

// RateBRL implements rates.Provider directly off the rate table.
func (s *PostgresStorage) RateBRL(ctx context.Context, currency string) (float64, error) {
	var rate float64
	err := s.db.QueryRowContext(ctx,
		`SELECT rate_brl FROM consolidation_rates WHERE currency = $1`, currency,
	).Scan(&rate)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no BRL rate stored for %s", currency)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load rate for %s: %w", currency, err)
	}
	return rate, nil
}

// SaveSlip persists a normalized slip for review and audit.
func (s *PostgresStorage) SaveSlip(ctx context.Context, slip models.ParsedSlip) error {
	query := `
	INSERT INTO imported_slips (
		id, sport, domain, side, line, display_name,
		raw_sport_label, raw_market_text,
		stake, odds, payout, profit, currency,
		odds_derived, has_hidden_decimal, needs_review, imported_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := s.db.ExecContext(ctx, query,
		slip.ID, slip.Sport.String(), slip.Market.Domain.String(), string(slip.Market.Side),
		nullable(slip.Market.Line), slip.Market.DisplayName,
		slip.RawSportLabel, slip.RawMarketText,
		nullable(slip.Stake), nullable(slip.Odds), nullable(slip.Payout), nullable(slip.Profit),
		slip.Currency, slip.OddsDerived, slip.HasHiddenDecimal, slip.NeedsReview, slip.ImportedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save slip %s: %w", slip.ID, err)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
