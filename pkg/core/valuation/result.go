package valuation

import (
	"time"

	"github.com/google/uuid"

	"intrinsic_valuation/pkg/core/industry"
)

// Assumptions is the resolved parameter set a valuation actually ran with,
// recorded on the result so a reader can reproduce the numbers.
type Assumptions struct {
	Horizon        int            `json:"horizon"`
	GrowthSchedule []float64      `json:"growth_schedule"`
	EBITDAMargin   float64        `json:"ebitda_margin"`
	CapExPct       float64        `json:"capex_pct"`
	NWCPct         float64        `json:"nwc_pct"`
	TaxRate        float64        `json:"tax_rate"`
	Beta           float64        `json:"beta"`
	WACC           float64        `json:"wacc"`
	CostOfEquity   float64        `json:"cost_of_equity"`
	EquityWeight   float64        `json:"equity_weight"`
	DebtWeight     float64        `json:"debt_weight"`
	WACCBenchmark  float64        `json:"wacc_benchmark,omitempty"`
	TerminalGrowth float64        `json:"terminal_growth"`
	TerminalMethod TerminalMethod `json:"terminal_method"`
	ExitMultiple   float64        `json:"exit_multiple,omitempty"`
	MidYear        bool           `json:"mid_year"`
}

// MultipleCheck compares the DCF's implied EV/EBITDA against the industry
// benchmark band. It is advisory only and never alters the valuation.
type MultipleCheck struct {
	ImpliedEVEBITDA float64                `json:"implied_ev_ebitda"`
	BenchmarkBand   industry.MultipleRange `json:"benchmark_band"`
	WithinBand      bool                   `json:"within_band"`
}

// Result is the complete output of one valuation run.
type Result struct {
	RunID    string    `json:"run_id"`
	Ticker   string    `json:"ticker,omitempty"`
	Company  string    `json:"company"`
	Industry string    `json:"industry"`
	Created  time.Time `json:"created_at"`

	DataQuality string   `json:"data_quality"`
	DataSources []string `json:"data_sources,omitempty"`
	Corrections []string `json:"corrections,omitempty"`

	Assumptions Assumptions      `json:"assumptions"`
	Projections []YearProjection `json:"projections"`

	PVCashFlows     float64 `json:"pv_cash_flows"`
	TerminalValue   float64 `json:"terminal_value"`
	PVTerminal      float64 `json:"pv_terminal"`
	EnterpriseValue float64 `json:"enterprise_value"`

	Bridge      EquityBridge    `json:"bridge"`
	Check       MultipleCheck   `json:"multiple_check"`
	Sensitivity SensitivityGrid `json:"sensitivity"`
}

// NewResult stamps identity and run metadata on a fresh result.
func NewResult(ticker, company, industryLabel string) *Result {
	return &Result{
		RunID:    uuid.NewString(),
		Ticker:   ticker,
		Company:  company,
		Industry: industryLabel,
		Created:  time.Now().UTC(),
	}
}

// CheckMultiple fills the advisory EV/EBITDA cross-check from the final
// forecast year's EBITDA and the industry band.
func (r *Result) CheckMultiple(finalEBITDA float64, band industry.MultipleRange) {
	if finalEBITDA <= 0 {
		r.Check = MultipleCheck{BenchmarkBand: band}
		return
	}
	implied := r.EnterpriseValue / finalEBITDA
	r.Check = MultipleCheck{
		ImpliedEVEBITDA: implied,
		BenchmarkBand:   band,
		WithinBand:      implied >= band.Low && implied <= band.High,
	}
}
