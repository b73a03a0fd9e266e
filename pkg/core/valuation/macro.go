// Package valuation implements the DCF math: WACC, cash flow projection,
// terminal value, discounting, the equity bridge, and sensitivity analysis.
// All functions are pure; orchestration and logging live in the engine.
package valuation

// MacroAssumptions are the market-wide inputs to the cost of capital. They
// change rarely and are configurable; the defaults reflect a long-run US
// environment.
type MacroAssumptions struct {
	RiskFreeRate      float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	MarketRiskPremium float64 `json:"market_risk_premium" yaml:"market_risk_premium"`
	CostOfDebt        float64 `json:"cost_of_debt" yaml:"cost_of_debt"`
	TaxRate           float64 `json:"tax_rate" yaml:"tax_rate"`
	DefaultBeta       float64 `json:"default_beta" yaml:"default_beta"`
}

// DefaultMacro returns the standard macro environment.
func DefaultMacro() MacroAssumptions {
	return MacroAssumptions{
		RiskFreeRate:      0.04,
		MarketRiskPremium: 0.06,
		CostOfDebt:        0.05,
		TaxRate:           0.25,
		DefaultBeta:       1.1,
	}
}
