package resolve

import (
	"fmt"

	"intrinsic_valuation/pkg/core/dataset"
)

// Policy sets the thresholds for the consistency checks. The margin cap and
// reset come from observed distortions in scraped and estimated statements,
// where EBITDA occasionally arrives at near-revenue scale.
type Policy struct {
	// MaxEBITDAMarginShare caps EBITDA at this share of same-year revenue.
	MaxEBITDAMarginShare float64
	// ResetEBITDAMarginShare is the margin EBITDA is reset to when it
	// breaches the cap.
	ResetEBITDAMarginShare float64
}

// DefaultPolicy returns the standard thresholds: cap at 80% of revenue,
// reset to 25%.
func DefaultPolicy() Policy {
	return Policy{
		MaxEBITDAMarginShare:   0.8,
		ResetEBITDAMarginShare: 0.25,
	}
}

// Validator clamps a snapshot into internal consistency. It never rejects:
// every violation is corrected in place on a clone and flagged, so a
// valuation can always proceed on plausible numbers.
type Validator struct {
	policy Policy
}

// NewValidator builds a validator for the policy.
func NewValidator(policy Policy) *Validator {
	if policy.MaxEBITDAMarginShare <= 0 {
		policy.MaxEBITDAMarginShare = 0.8
	}
	if policy.ResetEBITDAMarginShare <= 0 {
		policy.ResetEBITDAMarginShare = 0.25
	}
	return &Validator{policy: policy}
}

// Validate returns a corrected deep copy of the snapshot. Order matters:
// negative values are zeroed first, then the EBITDA margin cap, then the
// accounting ordering EBIT within [0, EBITDA] and net income capped at EBIT.
func (v *Validator) Validate(in *dataset.FinancialDataset) *dataset.FinancialDataset {
	d := in.Clone()

	v.clampNegativeSeries(d, "revenue", d.Revenue)
	v.clampNegativeSeries(d, "ebitda", d.EBITDA)
	v.clampNegativeSeries(d, "ebit", d.EBIT)
	v.clampNegativeSeries(d, "net_income", d.NetIncome)
	v.clampNegativeSeries(d, "depreciation", d.Depreciation)
	v.clampNegativeSeries(d, "capex", d.CapEx)
	v.clampNegativeSeries(d, "current_assets", d.CurrentAssets)
	v.clampNegativeSeries(d, "current_liabilities", d.CurrentLiabilities)

	if d.Cash < 0 {
		flag(d, "cash %.0f negative, reset to 0", d.Cash)
		d.Cash = 0
	}
	if d.TotalDebt < 0 {
		flag(d, "total_debt %.0f negative, reset to 0", d.TotalDebt)
		d.TotalDebt = 0
	}
	if d.MarketCap < 0 {
		flag(d, "market_cap %.0f negative, reset to 0", d.MarketCap)
		d.MarketCap = 0
	}
	if d.SharesOutstanding < 0 {
		flag(d, "shares_outstanding %.0f negative, reset to 0", d.SharesOutstanding)
		d.SharesOutstanding = 0
	}

	// EBITDA cannot plausibly exceed the cap share of same-year revenue.
	for i := range d.EBITDA {
		if i >= len(d.Revenue) || d.Revenue[i] <= 0 {
			continue
		}
		if d.EBITDA[i] > v.policy.MaxEBITDAMarginShare*d.Revenue[i] {
			reset := v.policy.ResetEBITDAMarginShare * d.Revenue[i]
			flag(d, "ebitda[%d] %.0f exceeds %.0f%% of revenue, reset to %.0f",
				i, d.EBITDA[i], v.policy.MaxEBITDAMarginShare*100, reset)
			d.EBITDA[i] = reset
		}
	}

	// EBIT must sit between zero and same-year EBITDA.
	for i := range d.EBIT {
		if i < len(d.EBITDA) && d.EBIT[i] > d.EBITDA[i] {
			flag(d, "ebit[%d] %.0f exceeds ebitda %.0f, capped", i, d.EBIT[i], d.EBITDA[i])
			d.EBIT[i] = d.EBITDA[i]
		}
	}

	// Net income cannot exceed same-year EBIT.
	for i := range d.NetIncome {
		if i < len(d.EBIT) && d.NetIncome[i] > d.EBIT[i] {
			flag(d, "net_income[%d] %.0f exceeds ebit %.0f, capped", i, d.NetIncome[i], d.EBIT[i])
			d.NetIncome[i] = d.EBIT[i]
		}
	}

	if len(d.Corrections) > 0 {
		fmt.Printf("[VALIDATOR] %q: %d correction(s) applied\n", d.Name, len(d.Corrections))
	}
	return d
}

func (v *Validator) clampNegativeSeries(d *dataset.FinancialDataset, name string, series []float64) {
	for i, val := range series {
		if val < 0 {
			flag(d, "%s[%d] %.0f negative, reset to 0", name, i, val)
			series[i] = 0
		}
	}
}

func flag(d *dataset.FinancialDataset, format string, args ...interface{}) {
	d.Corrections = append(d.Corrections, fmt.Sprintf(format, args...))
}
