package valuation

import "math"

// Grid geometry: terminal growth varies by +/- 1.0pp in 0.5pp steps (5
// rows), WACC by +/- 1.5pp in 0.5pp steps (7 columns). The base case sits
// at the center cell.
const (
	sensitivityGrowthSteps = 2
	sensitivityWACCSteps   = 3
	sensitivityStep        = 0.005
)

// SensitivityGrid holds per-share prices across terminal growth (rows) and
// WACC (columns). Cells where the discount rate does not exceed growth are
// undefined: Prices carries NaN and Defined is false.
type SensitivityGrid struct {
	GrowthRows []float64   `json:"growth_rows"`
	WACCCols   []float64   `json:"wacc_cols"`
	Prices     [][]float64 `json:"prices"`
	Defined    [][]bool    `json:"defined"`
	BaseRow    int         `json:"base_row"`
	BaseCol    int         `json:"base_col"`
}

// SensitivityInput is everything a full revaluation of one cell needs. The
// projection itself does not depend on WACC or terminal growth, so the cash
// flow series is computed once by the caller and reused.
type SensitivityInput struct {
	UFCF       []float64
	FinalUFCF  float64
	BaseWACC   float64
	BaseGrowth float64
	MidYear    bool
	TotalDebt  float64
	Cash       float64
	Shares     float64
}

// ComputeSensitivity recomputes the entire valuation (terminal value,
// discounting, equity bridge) for every grid cell. The terminal value
// always uses Gordon Growth here regardless of the base case's method,
// since the grid's row axis is the perpetual growth rate.
func ComputeSensitivity(in SensitivityInput) SensitivityGrid {
	rows := 2*sensitivityGrowthSteps + 1
	cols := 2*sensitivityWACCSteps + 1

	grid := SensitivityGrid{
		GrowthRows: make([]float64, rows),
		WACCCols:   make([]float64, cols),
		Prices:     make([][]float64, rows),
		Defined:    make([][]bool, rows),
		BaseRow:    sensitivityGrowthSteps,
		BaseCol:    sensitivityWACCSteps,
	}
	for i := 0; i < rows; i++ {
		grid.GrowthRows[i] = in.BaseGrowth + float64(i-sensitivityGrowthSteps)*sensitivityStep
	}
	for j := 0; j < cols; j++ {
		grid.WACCCols[j] = in.BaseWACC + float64(j-sensitivityWACCSteps)*sensitivityStep
	}

	years := len(in.UFCF)
	for i, growth := range grid.GrowthRows {
		grid.Prices[i] = make([]float64, cols)
		grid.Defined[i] = make([]bool, cols)
		for j, wacc := range grid.WACCCols {
			tv, err := TerminalValueGordon(in.FinalUFCF, wacc, growth)
			if err != nil || wacc <= 0 {
				grid.Prices[i][j] = math.NaN()
				continue
			}
			factors := DiscountFactors(wacc, years, in.MidYear)
			ev := PresentValueOfCashFlows(in.UFCF, factors) +
				PresentValueOfTerminal(tv, wacc, years, in.MidYear)
			bridge := BridgeToEquity(ev, in.TotalDebt, in.Cash, in.Shares)
			grid.Prices[i][j] = bridge.PricePerShare
			grid.Defined[i][j] = true
		}
	}
	return grid
}
