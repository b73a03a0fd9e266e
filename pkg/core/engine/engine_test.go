package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"intrinsic_valuation/pkg/core/dataset"
	"intrinsic_valuation/pkg/core/estimate"
	"intrinsic_valuation/pkg/core/resolve"
	"intrinsic_valuation/pkg/core/valuation"
)

func float64Ptr(f float64) *float64 { return &f }

// manualEngine builds an engine whose only data path is user input plus the
// formula fallback, which keeps tests hermetic.
func manualEngine() *Engine {
	pipeline := resolve.NewPipeline(nil,
		resolve.NewManualSource(),
		resolve.NewProfileSource(),
		resolve.NewEstimatorSource(&estimate.FormulaEstimator{}),
	)
	return New(pipeline, valuation.DefaultMacro())
}

func baseManualInput() *dataset.ManualInput {
	return &dataset.ManualInput{
		Name:              "Acme Corp",
		Industry:          "Technology",
		Revenue:           []float64{9e8, 1e9},
		EBITDA:            []float64{2.2e8, 2.5e8},
		CapEx:             []float64{4.5e7, 5e7},
		Cash:              float64Ptr(1.5e8),
		TotalDebt:         float64Ptr(3e8),
		MarketCap:         float64Ptr(3.5e9),
		SharesOutstanding: float64Ptr(2e7),
		Beta:              float64Ptr(1.2),
	}
}

func TestComputeValuation_EndToEnd(t *testing.T) {
	eng := manualEngine()

	result, err := eng.ComputeValuation(context.Background(), Request{
		Company: "Acme Corp",
		Manual:  baseManualInput(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RunID == "" {
		t.Error("run ID should be set")
	}
	if len(result.Projections) != 5 {
		t.Fatalf("expected 5 projection years, got %d", len(result.Projections))
	}
	if result.EnterpriseValue <= 0 {
		t.Errorf("expected positive enterprise value, got %.2f", result.EnterpriseValue)
	}

	// Margin is taken from the data: 250/1000 = 25%.
	if math.Abs(result.Assumptions.EBITDAMargin-0.25) > 1e-9 {
		t.Errorf("expected observed margin 0.25, got %.4f", result.Assumptions.EBITDAMargin)
	}
	// CapEx ratio likewise: 50/1000 = 5%.
	if math.Abs(result.Assumptions.CapExPct-0.05) > 1e-9 {
		t.Errorf("expected observed capex 0.05, got %.4f", result.Assumptions.CapExPct)
	}

	// EV reconciles with its components.
	if math.Abs(result.EnterpriseValue-(result.PVCashFlows+result.PVTerminal)) > 1e-6 {
		t.Error("enterprise value must equal PV of cash flows plus PV of terminal")
	}

	// Bridge reconciles: equity = EV - (debt - cash).
	wantEquity := result.EnterpriseValue - (3e8 - 1.5e8)
	if math.Abs(result.Bridge.EquityValue-wantEquity) > 1e-6 {
		t.Errorf("expected equity %.2f, got %.2f", wantEquity, result.Bridge.EquityValue)
	}
	if result.Bridge.PricePerShare <= 0 {
		t.Errorf("expected a positive share price, got %.2f", result.Bridge.PricePerShare)
	}

	// The base sensitivity cell reproduces the headline price.
	grid := result.Sensitivity
	if math.Abs(grid.Prices[grid.BaseRow][grid.BaseCol]-result.Bridge.PricePerShare) > 1e-9 {
		t.Error("base sensitivity cell should match the headline price")
	}
}

func TestComputeValuation_SectorResolvesBucket(t *testing.T) {
	eng := manualEngine()

	// Provider-style labels: a narrow industry string that matches no bucket
	// or synonym, with the bucket carried by the sector instead.
	manual := baseManualInput()
	manual.Industry = "Consumer Electronics"
	manual.Sector = "Technology"

	result, err := eng.ComputeValuation(context.Background(), Request{
		Company: "Acme Corp",
		Manual:  manual,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Industry != "Technology" {
		t.Errorf("sector should resolve the bucket, got %q", result.Industry)
	}
	// The Technology band confirms the bucket's assumptions were applied.
	if result.Check.BenchmarkBand.Low != 25 || result.Check.BenchmarkBand.High != 35 {
		t.Errorf("expected the Technology band, got %+v", result.Check.BenchmarkBand)
	}
}

func TestComputeValuation_WACCDetailRecorded(t *testing.T) {
	eng := manualEngine()

	result, err := eng.ComputeValuation(context.Background(), Request{
		Company: "Acme Corp",
		Manual:  baseManualInput(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := result.Assumptions
	// ke = 0.04 + 1.2*0.06 = 0.112.
	if math.Abs(a.CostOfEquity-0.112) > 1e-9 {
		t.Errorf("expected cost of equity 0.112, got %.6f", a.CostOfEquity)
	}
	// Weights from market cap 3.5e9 against debt 3e8.
	if math.Abs(a.EquityWeight-3.5e9/3.8e9) > 1e-9 {
		t.Errorf("expected equity weight %.6f, got %.6f", 3.5e9/3.8e9, a.EquityWeight)
	}
	if math.Abs(a.EquityWeight+a.DebtWeight-1) > 1e-12 {
		t.Errorf("weights must sum to 1, got %.6f", a.EquityWeight+a.DebtWeight)
	}
	// Technology benchmark rate travels with the result.
	if a.WACCBenchmark != 0.09 {
		t.Errorf("expected benchmark 0.09, got %.4f", a.WACCBenchmark)
	}
}

func TestComputeValuation_BucketTaxWhenMacroOmitsIt(t *testing.T) {
	macro := valuation.DefaultMacro()
	macro.TaxRate = 0
	eng := New(resolve.NewPipeline(nil, resolve.NewManualSource(), resolve.NewProfileSource()), macro)

	result, err := eng.ComputeValuation(context.Background(), Request{
		Company: "Acme Corp",
		Manual:  baseManualInput(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Technology's statutory 21% stands in for the omitted macro rate.
	if result.Assumptions.TaxRate != 0.21 {
		t.Errorf("expected bucket tax rate 0.21, got %.4f", result.Assumptions.TaxRate)
	}
}

func TestComputeValuation_DataUnavailable(t *testing.T) {
	// Manual tier only, with empty input: nothing can produce revenue.
	eng := New(resolve.NewPipeline(nil, resolve.NewManualSource()), valuation.DefaultMacro())

	_, err := eng.ComputeValuation(context.Background(), Request{Ticker: "GONE"})
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestComputeValuation_InvalidTerminalAssumption(t *testing.T) {
	eng := manualEngine()

	req := Request{
		Company: "Acme Corp",
		Manual:  baseManualInput(),
		// WACC for this input sits near 10.6%; growth above it must fail.
		Options: Options{TerminalGrowth: 0.12},
	}
	_, err := eng.ComputeValuation(context.Background(), req)
	if !errors.Is(err, ErrInvalidTerminalAssumption) {
		t.Fatalf("expected ErrInvalidTerminalAssumption, got %v", err)
	}
}

func TestComputeValuation_ZeroSharesStillValues(t *testing.T) {
	// No estimation tier here: a share count nothing can resolve stays zero.
	eng := New(resolve.NewPipeline(nil, resolve.NewManualSource(), resolve.NewProfileSource()), valuation.DefaultMacro())

	manual := baseManualInput()
	manual.SharesOutstanding = float64Ptr(0)

	result, err := eng.ComputeValuation(context.Background(), Request{
		Company: "Acme Corp",
		Manual:  manual,
	})
	if err != nil {
		t.Fatalf("a missing share count must not fail the run: %v", err)
	}
	if result.EnterpriseValue <= 0 || result.Bridge.EquityValue == 0 {
		t.Error("enterprise and equity value should still be computed")
	}
	if result.Bridge.PricePerShare != 0 {
		t.Errorf("expected price 0 without shares, got %.2f", result.Bridge.PricePerShare)
	}
}

func TestComputeValuation_ExitMultiple(t *testing.T) {
	eng := manualEngine()

	result, err := eng.ComputeValuation(context.Background(), Request{
		Company: "Acme Corp",
		Manual:  baseManualInput(),
		Options: Options{TerminalMethod: valuation.TerminalExitMultiple, ExitMultiple: 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	final := result.Projections[len(result.Projections)-1]
	if math.Abs(result.TerminalValue-final.EBITDA*10) > 1e-6 {
		t.Errorf("expected terminal value %.2f, got %.2f", final.EBITDA*10, result.TerminalValue)
	}
	if result.Assumptions.TerminalMethod != valuation.TerminalExitMultiple {
		t.Errorf("method should be recorded, got %s", result.Assumptions.TerminalMethod)
	}
}

func TestComputeValuation_MidYearRaisesValue(t *testing.T) {
	eng := manualEngine()

	yearEnd, err := eng.ComputeValuation(context.Background(), Request{
		Company: "Acme Corp", Manual: baseManualInput(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	midYear, err := eng.ComputeValuation(context.Background(), Request{
		Company: "Acme Corp", Manual: baseManualInput(),
		Options: Options{MidYear: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if midYear.EnterpriseValue <= yearEnd.EnterpriseValue {
		t.Errorf("mid-year discounting should raise value: %.2f vs %.2f",
			midYear.EnterpriseValue, yearEnd.EnterpriseValue)
	}
}

func TestComputeValuation_MultipleCheckRecorded(t *testing.T) {
	eng := manualEngine()

	result, err := eng.ComputeValuation(context.Background(), Request{
		Company: "Acme Corp",
		Manual:  baseManualInput(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Check.ImpliedEVEBITDA <= 0 {
		t.Error("implied EV/EBITDA should be computed")
	}
	// Technology band is 25x-35x.
	if result.Check.BenchmarkBand.Low != 25 || result.Check.BenchmarkBand.High != 35 {
		t.Errorf("expected the Technology band, got %+v", result.Check.BenchmarkBand)
	}
}
