package estimate

import (
	"context"
	"fmt"
	"strings"

	"intrinsic_valuation/pkg/core/llm"
	"intrinsic_valuation/pkg/core/utils"
)

const estimatorSystemPrompt = `You are a financial analyst estimating a single missing line item for a company.
Respond with ONLY a JSON object of the form {"value": <number>} where the number is in US dollars (not millions).
For dimensionless metrics (beta, shares outstanding) return the raw number. No prose, no units, no ranges.`

// LLMEstimator asks a language model for a point estimate of one metric,
// conditioning on whatever facts are already resolved. Any generation or
// parse failure is surfaced as an error so the pipeline can fall through to
// the formula tier.
type LLMEstimator struct {
	Provider llm.Provider
}

var _ Estimator = (*LLMEstimator)(nil)

func (e *LLMEstimator) Name() string { return "llm" }

func (e *LLMEstimator) Estimate(ctx context.Context, metric Metric, facts Facts) (float64, error) {
	if e.Provider == nil {
		return 0, fmt.Errorf("estimate: no LLM provider configured")
	}

	prompt := buildPrompt(metric, facts)
	raw, err := e.Provider.GenerateResponse(ctx, prompt, estimatorSystemPrompt, map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	})
	if err != nil {
		return 0, fmt.Errorf("estimate: llm generation for %s: %w", metric, err)
	}

	value, err := utils.ExtractNumber(raw)
	if err != nil {
		return 0, fmt.Errorf("estimate: llm response for %s: %w", metric, err)
	}
	if !plausible(metric, value) {
		return 0, fmt.Errorf("estimate: implausible llm value %g for %s", value, metric)
	}
	return value, nil
}

func buildPrompt(metric Metric, facts Facts) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Estimate the most recent annual %s for %q.\n", describe(metric), facts.Company)
	if facts.Industry != "" {
		fmt.Fprintf(&sb, "Industry: %s.\n", facts.Industry)
	}
	if facts.Revenue > 0 {
		fmt.Fprintf(&sb, "Known annual revenue: $%.0f.\n", facts.Revenue)
	}
	if facts.EBITDA > 0 {
		fmt.Fprintf(&sb, "Known annual EBITDA: $%.0f.\n", facts.EBITDA)
	}
	if facts.EBIT > 0 {
		fmt.Fprintf(&sb, "Known annual EBIT: $%.0f.\n", facts.EBIT)
	}
	sb.WriteString(`Respond with {"value": <number>} only.`)
	return sb.String()
}

func describe(metric Metric) string {
	switch metric {
	case MetricRevenue:
		return "revenue"
	case MetricEBITDA:
		return "EBITDA"
	case MetricEBIT:
		return "EBIT (operating income)"
	case MetricNetIncome:
		return "net income"
	case MetricDepreciation:
		return "depreciation and amortization"
	case MetricCapEx:
		return "capital expenditure"
	case MetricCash:
		return "cash and cash equivalents"
	case MetricTotalDebt:
		return "total debt"
	case MetricCurrentAssets:
		return "total current assets"
	case MetricCurrentLiabilities:
		return "total current liabilities"
	case MetricMarketCap:
		return "market capitalization"
	case MetricSharesOutstanding:
		return "shares outstanding"
	case MetricBeta:
		return "equity beta"
	default:
		return string(metric)
	}
}

// plausible rejects obviously broken model outputs before they reach the
// dataset, where the consistency validator would only clamp rather than
// discard them.
func plausible(metric Metric, value float64) bool {
	switch metric {
	case MetricBeta:
		return value > 0 && value < 5
	default:
		return value >= 0
	}
}
