package estimate

import (
	"context"

	"intrinsic_valuation/pkg/core/industry"
)

// FormulaEstimator derives a missing metric from the strongest known base
// metric using the fixed industry ratio tables. It is deterministic, never
// calls the network, and sits last in the estimation chain so a valuation
// can always complete once revenue is known.
type FormulaEstimator struct{}

var _ Estimator = (*FormulaEstimator)(nil)

func (e *FormulaEstimator) Name() string { return "formula" }

// Estimate computes metric from facts. The base metric preference is
// revenue, then EBITDA, then EBIT; weaker bases are first converted up to a
// revenue equivalent through the bucket's margin before applying the target
// ratio.
func (e *FormulaEstimator) Estimate(ctx context.Context, metric Metric, facts Facts) (float64, error) {
	a := industry.Resolve(facts.Industry)
	if a.Bucket == industry.DefaultBucket && facts.Industry == "" {
		a = industry.Resolve(industry.DetectBucket(facts.Company))
	}

	// Beta needs no base metric at all.
	if metric == MetricBeta {
		return a.Beta, nil
	}

	revenue := e.impliedRevenue(facts, a)
	if revenue <= 0 {
		return 0, errNoBaseMetric(metric)
	}

	switch metric {
	case MetricRevenue:
		return revenue, nil
	case MetricEBITDA:
		return revenue * a.EBITDAMargin, nil
	case MetricEBIT:
		return revenue * a.EBITDAMargin * industry.EBITShareOfEBITDA, nil
	case MetricNetIncome:
		return revenue * a.EBITDAMargin * industry.EBITShareOfEBITDA * industry.NetIncomeShareOfEBIT, nil
	case MetricDepreciation:
		return revenue * industry.DepreciationPctOfRev, nil
	case MetricCapEx:
		return revenue * a.CapExPct, nil
	case MetricCash:
		return revenue * industry.CashPctOfRev, nil
	case MetricTotalDebt:
		return revenue * industry.ProfileFor(facts.Company).DebtRatio, nil
	case MetricCurrentAssets:
		return revenue * industry.CurrentAssetsPctOfRev, nil
	case MetricCurrentLiabilities:
		return revenue * industry.CurrentLiabsPctOfRev, nil
	case MetricMarketCap:
		return revenue * industry.MarketCapRevMultiple, nil
	case MetricSharesOutstanding:
		return revenue * industry.MarketCapRevMultiple / industry.ReferenceSharePrice, nil
	default:
		return 0, errNoBaseMetric(metric)
	}
}

// impliedRevenue recovers a revenue figure from whichever base metric is
// known, inverting the bucket margin when only profitability is available.
func (e *FormulaEstimator) impliedRevenue(facts Facts, a industry.Assumptions) float64 {
	if facts.Revenue > 0 {
		return facts.Revenue
	}
	if a.EBITDAMargin <= 0 {
		return 0
	}
	if facts.EBITDA > 0 {
		return facts.EBITDA / a.EBITDAMargin
	}
	if facts.EBIT > 0 {
		return facts.EBIT / industry.EBITShareOfEBITDA / a.EBITDAMargin
	}
	return 0
}
