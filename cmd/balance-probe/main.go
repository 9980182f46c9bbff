package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/rafaelvm/surebetops/internal/pkg/config"
	"github.com/rafaelvm/surebetops/internal/pkg/logging"
	"github.com/rafaelvm/surebetops/internal/pkg/models"
	"github.com/rafaelvm/surebetops/internal/pkg/storage"
	"github.com/rafaelvm/surebetops/internal/probe"
)

// balance-probe reads the displayed cash balance off a bookmaker cashier
// page and optionally records it on the tracked account.
func main() {
	if err := run(); err != nil {
		slog.Error("Balance probe failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "configs/production.yaml", "Path to config file")
	cashierURL := flag.String("url", "", "Bookmaker cashier page URL")
	currency := flag.String("currency", "BRL", "Account currency")
	bookmaker := flag.String("bookmaker", "", "Bookmaker name")
	accountID := flag.String("account", "", "Account ID to update (new ID generated when empty)")
	save := flag.Bool("save", false, "Persist the balance to the accounts table")
	flag.Parse()

	if *cashierURL == "" {
		return fmt.Errorf("-url is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(&cfg.Logging, "balance-probe")

	ctx := context.Background()
	balanceProbe := probe.NewBalanceProbe(&cfg.Probe)
	balance, err := balanceProbe.Fetch(ctx, *cashierURL, *currency)
	if err != nil {
		return err
	}
	slog.Info("Balance fetched", "value", balance.Value, "currency", balance.Currency)

	if !*save {
		return nil
	}

	store, err := storage.NewPostgresStorage(&cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	id := *accountID
	if id == "" {
		id = uuid.NewString()
	}
	account := models.BookmakerAccount{
		ID:        id,
		Bookmaker: *bookmaker,
		Currency:  balance.Currency,
		Balance:   balance.Value,
		UpdatedAt: time.Now().UTC(),
	}
	if err := store.UpsertAccount(ctx, account); err != nil {
		return err
	}
	slog.Info("Account balance updated", "account_id", id)
	return nil
}
