// Command valuation runs DCF valuations from the terminal. It accepts a
// comma-separated ticker list or a free-text company name and prints one
// Markdown report per company.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"intrinsic_valuation/pkg/core/config"
	"intrinsic_valuation/pkg/core/engine"
	"intrinsic_valuation/pkg/core/estimate"
	"intrinsic_valuation/pkg/core/llm"
	"intrinsic_valuation/pkg/core/marketdata"
	"intrinsic_valuation/pkg/core/report"
	"intrinsic_valuation/pkg/core/resolve"
	"intrinsic_valuation/pkg/core/store"
	"intrinsic_valuation/pkg/core/valuation"
)

func main() {
	godotenv.Load()

	tickers := flag.String("ticker", "", "ticker symbol(s), comma separated")
	company := flag.String("company", "", "company name when no ticker is known")
	years := flag.Int("years", 0, "forecast horizon, overrides config")
	method := flag.String("method", "", "terminal method: gordon_growth or exit_multiple")
	midYear := flag.Bool("mid-year", false, "use the mid-year discounting convention")
	configPath := flag.String("config", "config/engine.yaml", "path to engine config")
	save := flag.Bool("save", false, "persist results (requires DATABASE_URL)")
	flag.Parse()

	if *tickers == "" && *company == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	opts := cfg.EngineOptions()
	if *years > 0 {
		opts.Horizon = *years
	}
	if *method != "" {
		opts.TerminalMethod = valuation.TerminalMethod(*method)
	}
	if *midYear {
		opts.MidYear = true
	}

	eng := buildEngine(cfg)
	ctx := context.Background()

	var repo *store.ValuationRepo
	if *save {
		if err := store.InitDB(ctx); err != nil {
			log.Fatalf("store: %v", err)
		}
		defer store.Close()
		repo = store.NewValuationRepo()
	}

	requests := buildRequests(*tickers, *company, opts)
	failures := 0
	for _, req := range requests {
		result, err := eng.ComputeValuation(ctx, req)
		if err != nil {
			fmt.Printf("[ERROR] %s%s: %v\n", req.Ticker, req.Company, err)
			failures++
			continue
		}

		fmt.Println(report.RenderMarkdown(result))

		if repo != nil {
			if err := repo.Save(ctx, result); err != nil {
				fmt.Printf("[WARNING] persist %s: %v\n", result.RunID, err)
			}
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func buildRequests(tickers, company string, opts engine.Options) []engine.Request {
	var out []engine.Request
	for _, t := range strings.Split(tickers, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		out = append(out, engine.Request{Ticker: t, Options: opts})
	}
	if company != "" {
		out = append(out, engine.Request{Company: company, Options: opts})
	}
	return out
}

// buildEngine mirrors the API server's wiring: FMP, then the MacroTrends
// scrape, manual input, the industry profile, and per-field estimation.
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
