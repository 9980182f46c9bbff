package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/rafaelvm/surebetops/internal/pkg/config"
	"github.com/rafaelvm/surebetops/internal/pkg/logging"
	"github.com/rafaelvm/surebetops/internal/pkg/rates"
	"github.com/rafaelvm/surebetops/internal/pkg/storage"
)

// rates-sync loads a BRL rate table from a YAML file into Postgres and warms
// the Redis cache, so the consolidation engine never sees a cold lookup
// right after a deploy.
func main() {
	if err := run(); err != nil {
		slog.Error("Rates sync failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "configs/production.yaml", "Path to config file")
	ratesPath := flag.String("rates", "", "YAML file mapping currency code to BRL rate")
	flag.Parse()

	if *ratesPath == "" {
		return fmt.Errorf("-rates file is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(&cfg.Logging, "rates-sync")

	data, err := os.ReadFile(*ratesPath)
	if err != nil {
		return fmt.Errorf("failed to read rates file: %w", err)
	}
	var table map[string]float64
	if err := yaml.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("failed to parse rates file: %w", err)
	}
	if len(table) == 0 {
		return fmt.Errorf("rates file is empty")
	}

	store, err := storage.NewPostgresStorage(&cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	currencies := make([]string, 0, len(table))
	for currency, rate := range table {
		if err := store.UpsertRate(ctx, currency, rate); err != nil {
			return err
		}
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)
	slog.Info("Rate table synced", "currencies", currencies)

	if cfg.Redis.Addr == "" {
		return nil
	}
	cached, err := rates.NewCached(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, store, cfg.Rates.CacheTTLDuration())
	if err != nil {
		return fmt.Errorf("failed to initialize rate cache: %w", err)
	}
	defer cached.Close()

	if err := cached.Warm(ctx, currencies); err != nil {
		return err
	}
	slog.Info("Rate cache warmed", "count", len(currencies))
	return nil
}
