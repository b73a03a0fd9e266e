// Package engine orchestrates a full valuation run: data resolution,
// assumption selection, the DCF math, and the sensitivity grid, in that
// order. It owns the logging and the error taxonomy; the stages themselves
// stay pure.
package engine

import (
	"context"
	"fmt"
	"math"

	"intrinsic_valuation/pkg/core/dataset"
	"intrinsic_valuation/pkg/core/industry"
	"intrinsic_valuation/pkg/core/resolve"
	"intrinsic_valuation/pkg/core/valuation"
)

// Sentinel errors callers are expected to branch on, re-exported so API
// handlers need not import the stage packages.
var (
	ErrDataUnavailable           = resolve.ErrDataUnavailable
	ErrInvalidTerminalAssumption = valuation.ErrInvalidTerminalAssumption
)

// Options are the per-run valuation controls.
type Options struct {
	Horizon        int
	TerminalMethod valuation.TerminalMethod
	ExitMultiple   float64
	MidYear        bool
	// TerminalGrowth overrides the industry bucket's rate when non-zero.
	TerminalGrowth float64
}

// Request names the company and carries optional manual input plus options.
type Request struct {
	Ticker  string
	Company string
	Manual  *dataset.ManualInput
	Options Options
}

// Engine wires the resolution pipeline to the valuation math.
type Engine struct {
	pipeline *resolve.Pipeline
	macro    valuation.MacroAssumptions
}

// New builds an engine. A zero macro struct gets the defaults.
func New(pipeline *resolve.Pipeline, macro valuation.MacroAssumptions) *Engine {
	if macro == (valuation.MacroAssumptions{}) {
		macro = valuation.DefaultMacro()
	}
	return &Engine{pipeline: pipeline, macro: macro}
}

// ComputeValuation runs the full chain for one company. Fatal outcomes are
// ErrDataUnavailable (nothing to value) and ErrInvalidTerminalAssumption
// (WACC does not exceed terminal growth under the Gordon method); everything
// else degrades inside the pipeline instead of failing.
func (e *Engine) ComputeValuation(ctx context.Context, req Request) (*valuation.Result, error) {
	opts := req.Options
	if opts.Horizon <= 0 {
		opts.Horizon = 5
	}
	if opts.TerminalMethod == "" {
		opts.TerminalMethod = valuation.TerminalGordon
	}

	data, status, err := e.pipeline.Resolve(ctx, resolve.Request{
		Ticker:  req.Ticker,
		Company: req.Company,
		Years:   opts.Horizon,
		Manual:  req.Manual,
	})
	if err != nil {
		return nil, err
	}

	bucket := classify(data)

	assumptions := e.deriveAssumptions(data, bucket, opts)
	fmt.Printf("[VALUATION] %q status=%s bucket=%s wacc=%.4f g=%.4f margin=%.4f\n",
		data.Name, status, bucket.Bucket, assumptions.WACC, assumptions.TerminalGrowth, assumptions.EBITDAMargin)
	if bucket.WACCHint > 0 && math.Abs(assumptions.WACC-bucket.WACCHint) > 0.03 {
		fmt.Printf("[WARNING] %q wacc %.4f is far from the %s benchmark %.4f\n",
			data.Name, assumptions.WACC, bucket.Bucket, bucket.WACCHint)
	}

	if opts.TerminalMethod == valuation.TerminalGordon && assumptions.WACC <= assumptions.TerminalGrowth {
		return nil, fmt.Errorf("%w: wacc=%.4f growth=%.4f",
			valuation.ErrInvalidTerminalAssumption, assumptions.WACC, assumptions.TerminalGrowth)
	}

	projections := valuation.ProjectCashFlows(valuation.ProjectionInput{
		BaseRevenue:  data.LatestRevenue(),
		Years:        opts.Horizon,
		Growth:       assumptions.GrowthSchedule,
		EBITDAMargin: assumptions.EBITDAMargin,
		CapExPct:     assumptions.CapExPct,
		NWCPct:       assumptions.NWCPct,
		TaxRate:      assumptions.TaxRate,
	})
	final := projections[len(projections)-1]

	var terminalValue float64
	switch opts.TerminalMethod {
	case valuation.TerminalExitMultiple:
		terminalValue = valuation.TerminalValueExitMultiple(final.EBITDA, opts.ExitMultiple)
	default:
		terminalValue, err = valuation.TerminalValueGordon(final.UFCF, assumptions.WACC, assumptions.TerminalGrowth)
		if err != nil {
			return nil, err
		}
	}

	ufcf := valuation.UFCFSeries(projections)
	factors := valuation.DiscountFactors(assumptions.WACC, opts.Horizon, opts.MidYear)
	pvCashFlows := valuation.PresentValueOfCashFlows(ufcf, factors)
	pvTerminal := valuation.PresentValueOfTerminal(terminalValue, assumptions.WACC, opts.Horizon, opts.MidYear)
	enterpriseValue := pvCashFlows + pvTerminal

	bridge := valuation.BridgeToEquity(enterpriseValue, data.TotalDebt, data.Cash, data.SharesOutstanding)

	result := valuation.NewResult(req.Ticker, data.Name, bucket.Bucket)
	result.DataQuality = string(data.Quality)
	for _, s := range data.Sources {
		result.DataSources = append(result.DataSources, string(s))
	}
	result.Corrections = data.Corrections
	result.Assumptions = assumptions
	result.Projections = projections
	result.PVCashFlows = pvCashFlows
	result.TerminalValue = terminalValue
	result.PVTerminal = pvTerminal
	result.EnterpriseValue = enterpriseValue
	result.Bridge = bridge
	result.CheckMultiple(final.EBITDA, bucket.EVEBITDA)
	result.Sensitivity = valuation.ComputeSensitivity(valuation.SensitivityInput{
		UFCF:       ufcf,
		FinalUFCF:  final.UFCF,
		BaseWACC:   assumptions.WACC,
		BaseGrowth: assumptions.TerminalGrowth,
		MidYear:    opts.MidYear,
		TotalDebt:  data.TotalDebt,
		Cash:       data.Cash,
		Shares:     data.SharesOutstanding,
	})

	fmt.Printf("[VALUATION] %q ev=%.0f equity=%.0f price=%.2f run=%s\n",
		data.Name, enterpriseValue, bridge.EquityValue, bridge.PricePerShare, result.RunID)
	return result, nil
}

// classify maps a resolved snapshot to an industry bucket. Provider labels
// are often narrower than the bucket names (FMP reports "Consumer
// Electronics" under the "Technology" sector), so a miss on the industry
// label retries with the sector, then with name keywords.
func classify(data *dataset.FinancialDataset) industry.Assumptions {
	if b := industry.Resolve(data.Industry); b.Bucket != industry.DefaultBucket {
		return b
	}
	if b := industry.Resolve(data.Sector); b.Bucket != industry.DefaultBucket {
		return b
	}
	return industry.Resolve(industry.DetectBucket(data.Name))
}

// deriveAssumptions prefers ratios observed in the resolved data and falls
// back to the industry bucket where the data cannot support them.
func (e *Engine) deriveAssumptions(data *dataset.FinancialDataset, bucket industry.Assumptions, opts Options) valuation.Assumptions {
	revenue := data.LatestRevenue()

	margin := bucket.EBITDAMargin
	if ebitda := dataset.Latest(data.EBITDA); ebitda > 0 && revenue > 0 {
		margin = ebitda / revenue
	}

	capexPct := bucket.CapExPct
	if capex := dataset.Latest(data.CapEx); capex > 0 && revenue > 0 {
		capexPct = capex / revenue
	}

	nwcPct := bucket.NWCPct
	if deltas := valuation.NWCChangesFromBalances(data.CurrentAssets, data.CurrentLiabilities); len(deltas) > 1 && revenue > 0 {
		if latest := deltas[len(deltas)-1]; latest > 0 {
			nwcPct = latest / revenue
		}
	}

	growth := opts.TerminalGrowth
	if growth == 0 {
		growth = bucket.TerminalGrowth
	}

	// A config file may zero out the macro tax rate; the bucket's statutory
	// rate stands in so NOPAT and the after-tax cost of debt stay sane.
	macro := e.macro
	if macro.TaxRate == 0 {
		macro.TaxRate = bucket.TaxRate
	}

	wacc := valuation.CalculateWACC(macro, data.Beta, data.MarketCap, data.TotalDebt)

	return valuation.Assumptions{
		Horizon:        opts.Horizon,
		GrowthSchedule: bucket.GrowthSchedule(opts.Horizon),
		EBITDAMargin:   margin,
		CapExPct:       capexPct,
		NWCPct:         nwcPct,
		TaxRate:        macro.TaxRate,
		Beta:           data.Beta,
		WACC:           wacc.WACC,
		CostOfEquity:   wacc.CostOfEquity,
		EquityWeight:   wacc.EquityWeight,
		DebtWeight:     wacc.DebtWeight,
		WACCBenchmark:  bucket.WACCHint,
		TerminalGrowth: growth,
		TerminalMethod: opts.TerminalMethod,
		ExitMultiple:   opts.ExitMultiple,
		MidYear:        opts.MidYear,
	}
}
