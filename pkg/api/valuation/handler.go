// Package valuation exposes the valuation engine over HTTP.
package valuation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"intrinsic_valuation/pkg/core/dataset"
	"intrinsic_valuation/pkg/core/engine"
	"intrinsic_valuation/pkg/core/store"
	corevaluation "intrinsic_valuation/pkg/core/valuation"
)

var (
	eng         *engine.Engine
	defaultOpts engine.Options
	repo        *store.ValuationRepo
	persist     bool
)

// InitHandler wires the shared engine and defaults into the package-level
// handlers. Persistence is enabled only when the store pool was initialized.
func InitHandler(e *engine.Engine, opts engine.Options, persistRuns bool) {
	eng = e
	defaultOpts = opts
	repo = store.NewValuationRepo()
	persist = persistRuns
}

// ValuationRequest is the POST body. Everything except one of ticker or
// company is optional; zero values fall back to the server defaults.
type ValuationRequest struct {
	Ticker  string               `json:"ticker"`
	Company string               `json:"company"`
	Horizon int                  `json:"horizon"`
	MidYear *bool                `json:"mid_year"`
	Method  string               `json:"terminal_method"`
	Manual  *dataset.ManualInput `json:"manual"`
}

// HandleValuation runs a valuation and returns the full result as JSON.
func HandleValuation(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Ticker == "" && req.Company == "" {
		http.Error(w, "ticker or company is required", http.StatusBadRequest)
		return
	}

	opts := defaultOpts
	if req.Horizon > 0 {
		opts.Horizon = req.Horizon
	}
	if req.MidYear != nil {
		opts.MidYear = *req.MidYear
	}
	if req.Method != "" {
		opts.TerminalMethod = corevaluation.TerminalMethod(req.Method)
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	fmt.Printf("[API] valuation request ticker=%q company=%q horizon=%d\n", ticker, req.Company, opts.Horizon)

	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	result, err := eng.ComputeValuation(ctx, engine.Request{
		Ticker:  ticker,
		Company: req.Company,
		Manual:  req.Manual,
		Options: opts,
	})
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrDataUnavailable):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, engine.ErrInvalidTerminalAssumption):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, context.DeadlineExceeded):
			http.Error(w, "valuation timed out", http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if persist {
		if err := repo.Save(ctx, result); err != nil {
			fmt.Printf("[WARNING] failed to persist run %s: %v\n", result.RunID, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleHistory returns the last archived run for a ticker.
func HandleHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if !persist {
		http.Error(w, "persistence disabled", http.StatusNotFound)
		return
	}

	key := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if key == "" {
		http.Error(w, "ticker query parameter is required", http.StatusBadRequest)
		return
	}

	result, err := repo.Load(r.Context(), key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
