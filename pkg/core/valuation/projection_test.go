package valuation

import (
	"math"
	"testing"
)

func TestProjectCashFlows_FirstYear(t *testing.T) {
	proj := ProjectCashFlows(ProjectionInput{
		BaseRevenue:  1e9,
		Years:        5,
		Growth:       []float64{0.08, 0.08, 0.08, 0.08, 0.08},
		EBITDAMargin: 0.25,
		CapExPct:     0.05,
		NWCPct:       0.02,
		TaxRate:      0.25,
	})

	if len(proj) != 5 {
		t.Fatalf("expected 5 years, got %d", len(proj))
	}

	y1 := proj[0]
	if !almostEqual(y1.Revenue, 1.08e9, 1e-3) {
		t.Errorf("year 1 revenue: expected 1.08e9, got %.2f", y1.Revenue)
	}
	// EBITDA 270m, D&A 43.2m, EBIT 226.8m, NOPAT 170.1m,
	// UFCF = 170.1 + 43.2 - 54 - 21.6 = 137.7m
	if !almostEqual(y1.UFCF, 137_700_000, 1e-3) {
		t.Errorf("year 1 UFCF: expected 137,700,000, got %.2f", y1.UFCF)
	}
}

func TestProjectCashFlows_Compounding(t *testing.T) {
	proj := ProjectCashFlows(ProjectionInput{
		BaseRevenue:  1e9,
		Years:        5,
		Growth:       []float64{0.08},
		EBITDAMargin: 0.25,
		CapExPct:     0.05,
		NWCPct:       0.02,
		TaxRate:      0.25,
	})

	wantRev5 := 1e9 * math.Pow(1.08, 5)
	if !almostEqual(proj[4].Revenue, wantRev5, 1e-3) {
		t.Errorf("year 5 revenue: expected %.2f, got %.2f", wantRev5, proj[4].Revenue)
	}
	// UFCF is a fixed 12.75% share of revenue under these ratios.
	wantUFCF5 := 0.1275 * wantRev5
	if !almostEqual(proj[4].UFCF, wantUFCF5, 1e-3) {
		t.Errorf("year 5 UFCF: expected %.2f, got %.2f", wantUFCF5, proj[4].UFCF)
	}
}

func TestProjectCashFlows_GrowthCarryForward(t *testing.T) {
	proj := ProjectCashFlows(ProjectionInput{
		BaseRevenue:  100,
		Years:        4,
		Growth:       []float64{0.10, 0.05},
		EBITDAMargin: 0.20,
		TaxRate:      0.25,
	})

	// Years 3 and 4 reuse the last scheduled rate.
	want := 100.0 * 1.10 * 1.05 * 1.05 * 1.05
	if !almostEqual(proj[3].Revenue, want, 1e-9) {
		t.Errorf("expected carried-forward revenue %.4f, got %.4f", want, proj[3].Revenue)
	}
}

func TestProjectCashFlows_InternalConsistency(t *testing.T) {
	proj := ProjectCashFlows(ProjectionInput{
		BaseRevenue:  5e8,
		Years:        3,
		Growth:       []float64{0.05},
		EBITDAMargin: 0.30,
		CapExPct:     0.06,
		NWCPct:       0.03,
		TaxRate:      0.21,
	})

	for _, p := range proj {
		if !almostEqual(p.EBIT, p.EBITDA-p.Depreciation, 1e-6) {
			t.Errorf("year %d: EBIT %.2f != EBITDA %.2f - D&A %.2f", p.Year, p.EBIT, p.EBITDA, p.Depreciation)
		}
		if !almostEqual(p.UFCF, p.NOPAT+p.Depreciation-p.CapEx-p.NWCChange, 1e-6) {
			t.Errorf("year %d: UFCF build does not reconcile", p.Year)
		}
	}
}

func TestNWCChangesFromBalances(t *testing.T) {
	ca := []float64{100, 120, 150}
	cl := []float64{40, 50, 55}

	deltas := NWCChangesFromBalances(ca, cl)
	if len(deltas) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(deltas))
	}
	// First year has no prior period.
	if deltas[0] != 0 {
		t.Errorf("expected zero-padded first delta, got %.2f", deltas[0])
	}
	// NWC: 60 -> 70 -> 95
	if deltas[1] != 10 || deltas[2] != 25 {
		t.Errorf("expected deltas [0 10 25], got %v", deltas)
	}
}

func TestNWCChangesFromBalances_Empty(t *testing.T) {
	if got := NWCChangesFromBalances(nil, nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
	if got := NWCChangesFromBalances([]float64{100}, nil); got != nil {
		t.Errorf("expected nil when one side is empty, got %v", got)
	}
}
