package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/rafaelvm/surebetops/internal/pkg/config"
	"github.com/rafaelvm/surebetops/internal/pkg/models"
	"github.com/rafaelvm/surebetops/internal/pkg/storage"
	"github.com/rafaelvm/surebetops/internal/slip"
)

// slip-import runs the OCR normalization pipeline over one slip from the
// command line. Useful for debugging OCR output before it reaches the API.
func main() {
	if err := run(); err != nil {
		slog.Error("Slip import failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	sportLabel := flag.String("sport", "", "Raw sport label from OCR")
	marketText := flag.String("market", "", "Raw market text from OCR")
	stake := flag.String("stake", "", "Stake read from slip (empty when OCR omitted it)")
	odds := flag.String("odds", "", "Odds read from slip")
	payout := flag.String("payout", "", "Settled payout read from slip")
	currency := flag.String("currency", "BRL", "Slip currency")
	configPath := flag.String("config", "", "Config file (required with -save)")
	save := flag.Bool("save", false, "Persist the parsed slip to Postgres")
	flag.Parse()

	input := models.SlipInput{
		SportLabel: *sportLabel,
		MarketText: *marketText,
		Currency:   *currency,
	}
	var err error
	if input.Stake, err = parseOptional(*stake); err != nil {
		return fmt.Errorf("invalid -stake: %w", err)
	}
	if input.Odds, err = parseOptional(*odds); err != nil {
		return fmt.Errorf("invalid -odds: %w", err)
	}
	if input.Payout, err = parseOptional(*payout); err != nil {
		return fmt.Errorf("invalid -payout: %w", err)
	}

	parsed := slip.InferMissingFields(slip.ParseSlip(input))

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(parsed); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if !*save {
		return nil
	}
	if *configPath == "" {
		return fmt.Errorf("-config is required with -save")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	store, err := storage.NewPostgresStorage(&cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	if err := store.SaveSlip(context.Background(), parsed); err != nil {
		return err
	}
	slog.Info("Slip saved", "slip_id", parsed.ID, "needs_review", parsed.NeedsReview)
	return nil
}

func parseOptional(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
