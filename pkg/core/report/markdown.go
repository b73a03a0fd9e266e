// Package report renders a valuation result as a Markdown document for CLI
// output and run archiving.
package report

import (
	"fmt"
	"math"
	"strings"

	"intrinsic_valuation/pkg/core/valuation"
)

// RenderMarkdown produces the full valuation report. Undefined sensitivity
// cells render as N/A rather than being dropped, so the grid shape is stable
// across companies.
func RenderMarkdown(r *valuation.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Valuation Report: %s\n\n", r.Company)
	if r.Ticker != "" {
		fmt.Fprintf(&sb, "**Ticker:** %s  \n", r.Ticker)
	}
	fmt.Fprintf(&sb, "**Industry:** %s  \n", r.Industry)
	fmt.Fprintf(&sb, "**Run:** %s  \n", r.RunID)
	fmt.Fprintf(&sb, "**Date:** %s  \n", r.Created.Format("2006-01-02"))
	fmt.Fprintf(&sb, "**Data quality:** %s (%s)\n\n", r.DataQuality, strings.Join(r.DataSources, " > "))

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Enterprise value | %s |\n", money(r.EnterpriseValue))
	fmt.Fprintf(&sb, "| Net debt | %s |\n", money(r.Bridge.NetDebt))
	fmt.Fprintf(&sb, "| Equity value | %s |\n", money(r.Bridge.EquityValue))
	if r.Bridge.SharesOutstanding > 0 {
		fmt.Fprintf(&sb, "| Implied share price | $%.2f |\n", r.Bridge.PricePerShare)
	} else {
		fmt.Fprintf(&sb, "| Implied share price | N/A (no share count) |\n")
	}
	fmt.Fprintf(&sb, "| WACC | %.2f%% |\n", r.Assumptions.WACC*100)
	fmt.Fprintf(&sb, "| Cost of equity | %.2f%% (%.0f%% equity / %.0f%% debt) |\n",
		r.Assumptions.CostOfEquity*100, r.Assumptions.EquityWeight*100, r.Assumptions.DebtWeight*100)
	fmt.Fprintf(&sb, "| Terminal growth | %.2f%% |\n", r.Assumptions.TerminalGrowth*100)
	fmt.Fprintf(&sb, "| Terminal method | %s |\n", r.Assumptions.TerminalMethod)
	fmt.Fprintf(&sb, "| PV of forecast cash flows | %s |\n", money(r.PVCashFlows))
	fmt.Fprintf(&sb, "| PV of terminal value | %s |\n\n", money(r.PVTerminal))

	sb.WriteString("## Forecast\n\n")
	sb.WriteString("| Year | Revenue | EBITDA | EBIT | NOPAT | D&A | CapEx | ΔNWC | UFCF |\n")
	sb.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for _, p := range r.Projections {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			p.Year, money(p.Revenue), money(p.EBITDA), money(p.EBIT), money(p.NOPAT),
			money(p.Depreciation), money(p.CapEx), money(p.NWCChange), money(p.UFCF))
	}
	sb.WriteString("\n")

	sb.WriteString("## Multiple cross-check\n\n")
	if r.Check.ImpliedEVEBITDA > 0 {
		verdict := "outside"
		if r.Check.WithinBand {
			verdict = "within"
		}
		fmt.Fprintf(&sb, "Implied EV/EBITDA of %.1fx is %s the %s benchmark band of %.1fx to %.1fx.\n\n",
			r.Check.ImpliedEVEBITDA, verdict, r.Industry, r.Check.BenchmarkBand.Low, r.Check.BenchmarkBand.High)
	} else {
		sb.WriteString("Not available (non-positive final-year EBITDA).\n\n")
	}

	sb.WriteString("## Sensitivity (implied share price)\n\n")
	sb.WriteString(renderSensitivity(r.Sensitivity, r.Bridge.SharesOutstanding > 0))

	if len(r.Corrections) > 0 {
		sb.WriteString("## Data corrections\n\n")
		for _, c := range r.Corrections {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderSensitivity(g valuation.SensitivityGrid, priceable bool) string {
	var sb strings.Builder

	sb.WriteString("| g \\ WACC |")
	for _, w := range g.WACCCols {
		fmt.Fprintf(&sb, " %.2f%% |", w*100)
	}
	sb.WriteString("\n|---|")
	sb.WriteString(strings.Repeat("---|", len(g.WACCCols)))
	sb.WriteString("\n")

	for i, growth := range g.GrowthRows {
		fmt.Fprintf(&sb, "| %.2f%% |", growth*100)
		for j := range g.WACCCols {
			if !g.Defined[i][j] || !priceable || math.IsNaN(g.Prices[i][j]) {
				sb.WriteString(" N/A |")
				continue
			}
			fmt.Fprintf(&sb, " $%.2f |", g.Prices[i][j])
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// money formats a dollar amount at a readable scale.
func money(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
