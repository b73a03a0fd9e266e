package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	apivaluation "intrinsic_valuation/pkg/api/valuation"
	"intrinsic_valuation/pkg/core/config"
	"intrinsic_valuation/pkg/core/engine"
	"intrinsic_valuation/pkg/core/estimate"
	"intrinsic_valuation/pkg/core/llm"
	"intrinsic_valuation/pkg/core/marketdata"
	"intrinsic_valuation/pkg/core/resolve"
	"intrinsic_valuation/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	configPath := flag.String("config", "config/engine.yaml", "path to engine config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	eng := buildEngine(cfg)

	// Persistence is opt-in via DATABASE_URL.
	persist := false
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] persistence disabled: %v\n", err)
		} else {
			persist = true
			defer store.Close()
		}
	}

	apivaluation.InitHandler(eng, cfg.EngineOptions(), persist)
	http.HandleFunc("/api/valuation", apivaluation.HandleValuation)
	http.HandleFunc("/api/valuation/history", apivaluation.HandleHistory)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("API server starting on %s...\n", addr)
	fmt.Println("  - POST /api/valuation")
	fmt.Println("  - GET  /api/valuation/history?ticker=...")

	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}

// buildEngine assembles the resolution tiers in precedence order: FMP
// statements, MacroTrends revenue scrape, manual input, industry profile,
// then per-field estimation with the LLM ahead of the formula fallback.
func buildEngine(cfg config.Config) *engine.Engine {
	sources := []resolve.Source{
		resolve.NewProviderSource(marketdata.NewFMPClient(cfg.Provider.BaseURL, os.Getenv("FMP_API_KEY"))),
		resolve.NewProviderSource(marketdata.NewMacroTrendsScraper("")),
		resolve.NewManualSource(),
		resolve.NewProfileSource(),
	}

	estimators := []estimate.Estimator{}
	if cfg.LLM.Enabled && os.Getenv("GEMINI_API_KEY") != "" {
		provider, err := llm.NewProvider(cfg.LLM.Provider, cfg.LLM.Model)
		if err != nil {
			fmt.Printf("[WARNING] %v, using formula estimation only\n", err)
		} else {
			estimators = append(estimators, &estimate.LLMEstimator{Provider: provider})
		}
	}
	estimators = append(estimators, &estimate.FormulaEstimator{})
	sources = append(sources, resolve.NewEstimatorSource(estimators...))

	validator := resolve.NewValidator(resolve.Policy{
		MaxEBITDAMarginShare:   cfg.Validator.MaxEBITDAMarginShare,
		ResetEBITDAMarginShare: cfg.Validator.ResetEBITDAMarginShare,
	})

	return engine.New(resolve.NewPipeline(validator, sources...), cfg.Macro)
}
