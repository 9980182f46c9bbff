package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/rafaelvm/surebetops/internal/alerts"
	"github.com/rafaelvm/surebetops/internal/consolidation"
	"github.com/rafaelvm/surebetops/internal/pkg/config"
	"github.com/rafaelvm/surebetops/internal/pkg/models"
	"github.com/rafaelvm/surebetops/internal/pkg/rates"
	"github.com/rafaelvm/surebetops/internal/pkg/storage"
	"github.com/rafaelvm/surebetops/internal/slip"
)

// Server is the HTTP surface consumed by the backoffice SPA.
type Server struct {
	store    *storage.PostgresStorage
	rates    rates.Provider
	notifier *alerts.Notifier
	cfg      *config.Config
}

func NewServer(store *storage.PostgresStorage, provider rates.Provider, notifier *alerts.Notifier, cfg *config.Config) *Server {
	return &Server{
		store:    store,
		rates:    provider,
		notifier: notifier,
		cfg:      cfg,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	origins := s.cfg.HTTP.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/consolidation/volume", s.handleVolume)
		r.Get("/bets", s.handleBets)
		r.Post("/bets", s.handleBetCreate)
		r.Get("/accounts", s.handleAccounts)
		r.Post("/slips/import", s.handleSlipImport)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVolume consolidates total stake volume across all bets into the
// requested currency (project default when omitted).
func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	currency := strings.ToUpper(r.URL.Query().Get("currency"))
	if currency == "" {
		currency = s.cfg.Rates.ConsolidationCurrency
	}

	volumes, err := s.store.VolumeByCurrency(r.Context())
	if err != nil {
		slog.Error("Failed to aggregate volume", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to aggregate volume")
		return
	}

	result, err := consolidation.ConsolidateVolume(volumes, currency, rates.AsRateFn(r.Context(), s.rates))
	if err != nil {
		slog.Error("Consolidation failed", "currency", currency, "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, struct {
		models.ConsolidationResult
		Formatted string `json:"formatted"`
	}{
		ConsolidationResult: result,
		Formatted:           consolidation.FormatCurrency(result.Total, result.Currency),
	})
}

type betView struct {
	models.BetRecord
	StakeView  consolidatedView `json:"stake_view"`
	ProfitView consolidatedView `json:"profit_view"`
}

type consolidatedView struct {
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
	Tier      string  `json:"tier"`
	Degraded  bool    `json:"degraded"`
}

// handleBets lists recent bets with their values resolved into the reporting
// currency through the fallback chain. Degraded values never fail the
// request; they are flagged in the payload and alerted to operators.
func (s *Server) handleBets(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	bets, err := s.store.ListBets(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to list bets", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list bets")
		return
	}

	currency := s.cfg.Rates.ConsolidationCurrency
	convert := rates.Converter(r.Context(), s.rates, currency)

	views := make([]betView, 0, len(bets))
	for _, bet := range bets {
		stake := consolidation.ConsolidatedStakeValue(bet, convert, currency)
		profit := consolidation.ConsolidatedProfitValue(bet, convert, currency)

		if s.notifier != nil {
			s.notifier.NotifyDegradedConsolidation(bet.ID, "stake", bet.Currency, currency, stake)
			s.notifier.NotifyDegradedConsolidation(bet.ID, "profit", bet.Currency, currency, profit)
		}

		views = append(views, betView{
			BetRecord:  bet,
			StakeView:  toView(stake, currency),
			ProfitView: toView(profit, currency),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func toView(value consolidation.ConsolidatedValue, currency string) consolidatedView {
	return consolidatedView{
		Value:     value.Value,
		Formatted: consolidation.FormatCurrency(value.Value, currency),
		Tier:      value.Tier.String(),
		Degraded:  value.Degraded(),
	}
}

// handleBetCreate persists a new bet. The consolidated and BRL snapshot
// columns are computed here, exactly once; a missing rate rejects the write
// instead of persisting a bet that could never consolidate cleanly.
func (s *Server) handleBetCreate(w http.ResponseWriter, r *http.Request) {
	var bet models.BetRecord
	if err := json.NewDecoder(r.Body).Decode(&bet); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bet.Currency = strings.ToUpper(bet.Currency)
	if bet.Currency == "" {
		writeError(w, http.StatusBadRequest, "currency is required")
		return
	}
	if bet.ID == "" {
		bet.ID = uuid.NewString()
	}
	if bet.CreatedAt.IsZero() {
		bet.CreatedAt = time.Now().UTC()
	}

	currency := s.cfg.Rates.ConsolidationCurrency
	if err := consolidation.SnapshotBet(&bet, currency, rates.AsRateFn(r.Context(), s.rates)); err != nil {
		slog.Error("Failed to snapshot bet", "bet_id", bet.ID, "currency", bet.Currency, "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.SaveBet(r.Context(), bet); err != nil {
		slog.Error("Failed to save bet", "bet_id", bet.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save bet")
		return
	}

	writeJSON(w, http.StatusCreated, bet)
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.ListAccounts(r.Context())
	if err != nil {
		slog.Error("Failed to list accounts", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// handleSlipImport runs the OCR normalization pipeline plus the inference
// pass over one slip and persists the result. The pipeline never rejects
// input; anything parseable as JSON imports, possibly flagged for review.
func (s *Server) handleSlipImport(w http.ResponseWriter, r *http.Request) {
	var input models.SlipInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	parsed := slip.InferMissingFields(slip.ParseSlip(input))

	if err := s.store.SaveSlip(r.Context(), parsed); err != nil {
		slog.Error("Failed to save slip", "slip_id", parsed.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save slip")
		return
	}
	if s.notifier != nil {
		s.notifier.NotifySlipReview(parsed)
	}

	writeJSON(w, http.StatusCreated, parsed)
}

// Start blocks serving HTTP until the listener fails or the server is shut down.
func (s *Server) Start() error {
	server := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("Starting backoffice API", "addr", s.cfg.HTTP.Addr)
	return server.ListenAndServe()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
