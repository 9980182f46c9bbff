package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rafaelvm/surebetops/internal/alerts"
	"github.com/rafaelvm/surebetops/internal/api"
	"github.com/rafaelvm/surebetops/internal/pkg/config"
	"github.com/rafaelvm/surebetops/internal/pkg/logging"
	"github.com/rafaelvm/surebetops/internal/pkg/rates"
	"github.com/rafaelvm/surebetops/internal/pkg/storage"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("Backoffice service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.Setup(&cfg.Logging, "backoffice-service")
	slog.Info("Starting backoffice service...")

	store, err := storage.NewPostgresStorage(&cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	var provider rates.Provider = store
	if cfg.Redis.Addr != "" {
		cached, err := rates.NewCached(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, store, cfg.Rates.CacheTTLDuration())
		if err != nil {
			return fmt.Errorf("failed to initialize rate cache: %w", err)
		}
		defer cached.Close()
		provider = cached
	}

	var notifier *alerts.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = alerts.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return fmt.Errorf("failed to initialize telegram notifier: %w", err)
		}
		defer notifier.Stop()
	}

	server := api.NewServer(store, provider, notifier, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("Shutting down", "signal", sig.String())
		return nil
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	}
}
