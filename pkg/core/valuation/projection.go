package valuation

// DepreciationPctOfRevenue fixes D&A at 4% of projected revenue. Projected
// EBIT is then EBITDA minus D&A rather than an independent margin, which
// keeps the three lines consistent by construction.
const DepreciationPctOfRevenue = 0.04

// YearProjection is one forecast year of the unlevered free cash flow build.
type YearProjection struct {
	Year         int     `json:"year"` // 1-based forecast year
	Revenue      float64 `json:"revenue"`
	EBITDA       float64 `json:"ebitda"`
	EBIT         float64 `json:"ebit"`
	NOPAT        float64 `json:"nopat"`
	Depreciation float64 `json:"depreciation"`
	CapEx        float64 `json:"capex"`
	NWCChange    float64 `json:"nwc_change"`
	UFCF         float64 `json:"ufcf"`
}

// ProjectionInput drives the forecast. Growth holds one rate per forecast
// year; shorter schedules reuse their last entry.
type ProjectionInput struct {
	BaseRevenue  float64
	Years        int
	Growth       []float64
	EBITDAMargin float64
	CapExPct     float64
	NWCPct       float64
	TaxRate      float64
}

// ProjectCashFlows builds the per-year UFCF series. Revenue compounds from
// the base: year t revenue is year t-1 revenue grown by the year-t rate, so
// year 1 already includes growth. Each year:
//
//	EBITDA = revenue * margin
//	EBIT   = EBITDA - D&A, with D&A at 4% of revenue
//	NOPAT  = EBIT * (1 - tax)
//	UFCF   = NOPAT + D&A - CapEx - NWC change
//
// where CapEx and the NWC change are percentages of the same year's revenue.
func ProjectCashFlows(in ProjectionInput) []YearProjection {
	out := make([]YearProjection, 0, in.Years)
	revenue := in.BaseRevenue
	for t := 1; t <= in.Years; t++ {
		revenue *= 1 + growthForYear(in.Growth, t)

		dep := revenue * DepreciationPctOfRevenue
		ebitda := revenue * in.EBITDAMargin
		ebit := ebitda - dep
		nopat := ebit * (1 - in.TaxRate)
		capex := revenue * in.CapExPct
		nwcChange := revenue * in.NWCPct

		out = append(out, YearProjection{
			Year:         t,
			Revenue:      revenue,
			EBITDA:       ebitda,
			EBIT:         ebit,
			NOPAT:        nopat,
			Depreciation: dep,
			CapEx:        capex,
			NWCChange:    nwcChange,
			UFCF:         nopat + dep - capex - nwcChange,
		})
	}
	return out
}

func growthForYear(growth []float64, t int) float64 {
	if len(growth) == 0 {
		return 0
	}
	if t > len(growth) {
		return growth[len(growth)-1]
	}
	return growth[t-1]
}

// UFCFSeries extracts the cash flow column from a projection.
func UFCFSeries(projections []YearProjection) []float64 {
	out := make([]float64, len(projections))
	for i, p := range projections {
		out[i] = p.UFCF
	}
	return out
}

// NWCChangesFromBalances derives historical year-over-year changes in net
// working capital from current asset and liability series. The first year
// has no prior period and is zero-padded so the result aligns with the
// statement series.
func NWCChangesFromBalances(currentAssets, currentLiabilities []float64) []float64 {
	n := len(currentAssets)
	if len(currentLiabilities) < n {
		n = len(currentLiabilities)
	}
	if n == 0 {
		return nil
	}
	out := make([]float64, n)
	prev := currentAssets[0] - currentLiabilities[0]
	for i := 1; i < n; i++ {
		nwc := currentAssets[i] - currentLiabilities[i]
		out[i] = nwc - prev
		prev = nwc
	}
	return out
}
