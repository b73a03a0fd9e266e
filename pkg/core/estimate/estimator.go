// Package estimate provides the capability-abstracted fallback for missing
// financial fields. Two implementations exist: an LLM-backed estimator and a
// deterministic formula estimator. The pipeline selects by availability and
// degrades from the former to the latter on any failure, so callers depend
// only on the interface.
package estimate

import (
	"context"
	"fmt"
)

// Metric identifies a single estimable field.
type Metric string

const (
	MetricRevenue            Metric = "revenue"
	MetricEBITDA             Metric = "ebitda"
	MetricEBIT               Metric = "ebit"
	MetricNetIncome          Metric = "net_income"
	MetricDepreciation       Metric = "depreciation"
	MetricCapEx              Metric = "capex"
	MetricCash               Metric = "cash"
	MetricTotalDebt          Metric = "total_debt"
	MetricCurrentAssets      Metric = "current_assets"
	MetricCurrentLiabilities Metric = "current_liabilities"
	MetricMarketCap          Metric = "market_cap"
	MetricSharesOutstanding  Metric = "shares_outstanding"
	MetricBeta               Metric = "beta"
)

// Facts carries the already-known values an estimator may condition on.
// Zero means unknown; Revenue, EBITDA and EBIT are the recognized base
// metrics, tried in that order.
type Facts struct {
	Company  string
	Industry string
	Revenue  float64
	EBITDA   float64
	EBIT     float64
}

// Estimator produces a single metric estimate from known facts.
type Estimator interface {
	Name() string
	Estimate(ctx context.Context, metric Metric, facts Facts) (float64, error)
}

// errNoBaseMetric marks a metric no known fact can anchor.
func errNoBaseMetric(metric Metric) error {
	return fmt.Errorf("estimate: no base metric available for %s", metric)
}
