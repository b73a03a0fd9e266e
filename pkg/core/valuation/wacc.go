package valuation

// WACCDetail carries the blended rate together with its CAPM components so
// callers can report and verify the weighting, not just the total.
type WACCDetail struct {
	WACC               float64 `json:"wacc"`
	CostOfEquity       float64 `json:"cost_of_equity"`
	CostOfDebtAfterTax float64 `json:"cost_of_debt_after_tax"`
	EquityWeight       float64 `json:"equity_weight"`
	DebtWeight         float64 `json:"debt_weight"`
}

// CalculateWACC computes the weighted average cost of capital. Cost of
// equity follows CAPM (rf + beta * MRP); cost of debt is taken after tax.
// Weights come from the observed capital structure and always sum to one;
// when both market cap and debt are zero the 70/30 equity/debt split keeps
// the rate finite.
func CalculateWACC(m MacroAssumptions, beta, marketCap, totalDebt float64) WACCDetail {
	if beta <= 0 {
		beta = m.DefaultBeta
	}

	d := WACCDetail{
		CostOfEquity:       m.RiskFreeRate + beta*m.MarketRiskPremium,
		CostOfDebtAfterTax: m.CostOfDebt * (1 - m.TaxRate),
		EquityWeight:       0.7,
		DebtWeight:         0.3,
	}
	if total := marketCap + totalDebt; total > 0 {
		d.EquityWeight = marketCap / total
		d.DebtWeight = totalDebt / total
	}

	d.WACC = d.EquityWeight*d.CostOfEquity + d.DebtWeight*d.CostOfDebtAfterTax
	return d
}
