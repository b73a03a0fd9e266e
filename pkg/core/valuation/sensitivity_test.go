package valuation

import (
	"math"
	"testing"
)

func baseSensitivityInput() SensitivityInput {
	return SensitivityInput{
		UFCF:       []float64{100, 110, 120},
		FinalUFCF:  120,
		BaseWACC:   0.10,
		BaseGrowth: 0.025,
		TotalDebt:  300,
		Cash:       100,
		Shares:     10,
	}
}

func TestComputeSensitivity_Geometry(t *testing.T) {
	grid := ComputeSensitivity(baseSensitivityInput())

	if len(grid.GrowthRows) != 5 {
		t.Fatalf("expected 5 growth rows, got %d", len(grid.GrowthRows))
	}
	if len(grid.WACCCols) != 7 {
		t.Fatalf("expected 7 WACC columns, got %d", len(grid.WACCCols))
	}
	if grid.BaseRow != 2 || grid.BaseCol != 3 {
		t.Errorf("expected base cell at (2,3), got (%d,%d)", grid.BaseRow, grid.BaseCol)
	}

	if !almostEqual(grid.GrowthRows[0], 0.015, 1e-12) || !almostEqual(grid.GrowthRows[4], 0.035, 1e-12) {
		t.Errorf("growth axis should span +/- 1.0pp: %v", grid.GrowthRows)
	}
	if !almostEqual(grid.WACCCols[0], 0.085, 1e-12) || !almostEqual(grid.WACCCols[6], 0.115, 1e-12) {
		t.Errorf("WACC axis should span +/- 1.5pp: %v", grid.WACCCols)
	}
}

func TestComputeSensitivity_BaseCellMatchesDirectComputation(t *testing.T) {
	in := baseSensitivityInput()
	grid := ComputeSensitivity(in)

	tv, err := TerminalValueGordon(in.FinalUFCF, in.BaseWACC, in.BaseGrowth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	factors := DiscountFactors(in.BaseWACC, len(in.UFCF), false)
	ev := PresentValueOfCashFlows(in.UFCF, factors) + PresentValueOfTerminal(tv, in.BaseWACC, len(in.UFCF), false)
	want := BridgeToEquity(ev, in.TotalDebt, in.Cash, in.Shares).PricePerShare

	got := grid.Prices[grid.BaseRow][grid.BaseCol]
	if !almostEqual(got, want, 1e-9) {
		t.Errorf("base cell: expected %.6f, got %.6f", want, got)
	}
	if !grid.Defined[grid.BaseRow][grid.BaseCol] {
		t.Error("base cell should be defined")
	}
}

func TestComputeSensitivity_UndefinedCells(t *testing.T) {
	in := baseSensitivityInput()
	// Base WACC barely above base growth: low-WACC/high-growth corners
	// become undefined.
	in.BaseWACC = 0.030
	in.BaseGrowth = 0.025

	grid := ComputeSensitivity(in)

	// Corner: WACC 0.015, growth 0.035.
	if grid.Defined[4][0] {
		t.Error("cell with WACC below growth should be undefined")
	}
	if !math.IsNaN(grid.Prices[4][0]) {
		t.Errorf("undefined cell should carry NaN, got %.4f", grid.Prices[4][0])
	}

	// Corner: WACC 0.045, growth 0.015 stays defined.
	if !grid.Defined[0][6] {
		t.Error("cell with WACC above growth should be defined")
	}
}

func TestComputeSensitivity_Monotonicity(t *testing.T) {
	grid := ComputeSensitivity(baseSensitivityInput())

	// Along the base row, price falls as WACC rises.
	row := grid.Prices[grid.BaseRow]
	for j := 1; j < len(row); j++ {
		if row[j] >= row[j-1] {
			t.Errorf("price should fall with WACC: col %d %.4f >= col %d %.4f", j, row[j], j-1, row[j-1])
		}
	}

	// Along the base column, price rises with terminal growth.
	for i := 1; i < len(grid.GrowthRows); i++ {
		if grid.Prices[i][grid.BaseCol] <= grid.Prices[i-1][grid.BaseCol] {
			t.Errorf("price should rise with growth at row %d", i)
		}
	}
}
