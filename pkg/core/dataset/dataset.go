// Package dataset defines the normalized per-company financial snapshot that
// the resolution pipeline produces and every valuation stage consumes.
package dataset

// Unknown is the sentinel for identity fields that could not be resolved.
// It is a legal label value and must never participate in arithmetic.
const Unknown = "Unknown"

// Quality describes how the snapshot was sourced.
type Quality string

const (
	QualityReal      Quality = "real"      // provider statements
	QualityManual    Quality = "manual"    // user-supplied input present
	QualityEstimated Quality = "estimated" // heuristic or AI-estimated
)

// Source identifies a resolution tier for provenance tracking.
type Source string

const (
	SourceProvider Source = "PROVIDER"
	SourceManual   Source = "MANUAL"
	SourceProfile  Source = "PROFILE"
	SourceEstimate Source = "ESTIMATE"
)

// FinancialDataset is one snapshot per company. Time series are ordered
// oldest to newest and share the same length within a snapshot. Balance
// sheet scalars refer to the latest period. The pipeline creates exactly one
// per run; downstream stages treat it as read-only.
type FinancialDataset struct {
	// Identity
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Sector   string `json:"sector"`
	Country  string `json:"country"`
	Currency string `json:"currency"`

	// Time series, oldest -> newest
	Revenue      []float64 `json:"revenue"`
	EBITDA       []float64 `json:"ebitda"`
	EBIT         []float64 `json:"ebit"`
	NetIncome    []float64 `json:"net_income"`
	Depreciation []float64 `json:"depreciation"`
	CapEx        []float64 `json:"capex"`

	// Balance sheet series, used for the historical NWC-delta method.
	CurrentAssets      []float64 `json:"current_assets"`
	CurrentLiabilities []float64 `json:"current_liabilities"`

	// Latest-period balance facts
	Cash      float64 `json:"cash"`
	TotalDebt float64 `json:"total_debt"`

	// Market facts
	MarketCap         float64 `json:"market_cap"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	Beta              float64 `json:"beta"`

	// Provenance
	Quality     Quality  `json:"quality"`
	Sources     []Source `json:"sources,omitempty"`
	Corrections []string `json:"corrections,omitempty"`
}

// New returns an empty snapshot with identity sentinels set.
func New() *FinancialDataset {
	return &FinancialDataset{
		Name:     Unknown,
		Industry: Unknown,
		Sector:   Unknown,
		Country:  Unknown,
		Currency: "USD",
		Quality:  QualityEstimated,
	}
}

// HasRevenue reports whether the snapshot carries a usable revenue series.
func (d *FinancialDataset) HasRevenue() bool {
	return len(d.Revenue) > 0 && d.Revenue[len(d.Revenue)-1] > 0
}

// LatestRevenue returns the most recent revenue figure, or 0 when empty.
func (d *FinancialDataset) LatestRevenue() float64 {
	if len(d.Revenue) == 0 {
		return 0
	}
	return d.Revenue[len(d.Revenue)-1]
}

// Latest returns the newest entry of a series, or 0 when empty.
func Latest(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

// MarkSource records that a tier contributed data, once per tier.
func (d *FinancialDataset) MarkSource(s Source) {
	for _, existing := range d.Sources {
		if existing == s {
			return
		}
	}
	d.Sources = append(d.Sources, s)
}

// Clone produces a deep copy. The validator works on a clone so that no
// stage mutates a prior stage's output in place.
func (d *FinancialDataset) Clone() *FinancialDataset {
	out := *d
	out.Revenue = append([]float64(nil), d.Revenue...)
	out.EBITDA = append([]float64(nil), d.EBITDA...)
	out.EBIT = append([]float64(nil), d.EBIT...)
	out.NetIncome = append([]float64(nil), d.NetIncome...)
	out.Depreciation = append([]float64(nil), d.Depreciation...)
	out.CapEx = append([]float64(nil), d.CapEx...)
	out.CurrentAssets = append([]float64(nil), d.CurrentAssets...)
	out.CurrentLiabilities = append([]float64(nil), d.CurrentLiabilities...)
	out.Sources = append([]Source(nil), d.Sources...)
	out.Corrections = append([]string(nil), d.Corrections...)
	return &out
}

// ManualInput is the structured value object for user-supplied company data
// (tier 2). The caller constructs it; the core never blocks on a terminal.
// Nil fields mean "not provided"; provided fields take precedence over the
// primary lookup field-by-field.
type ManualInput struct {
	Name     string `json:"name,omitempty"`
	Industry string `json:"industry,omitempty"`
	Sector   string `json:"sector,omitempty"`

	Revenue      []float64 `json:"revenue,omitempty"`
	EBITDA       []float64 `json:"ebitda,omitempty"`
	EBIT         []float64 `json:"ebit,omitempty"`
	NetIncome    []float64 `json:"net_income,omitempty"`
	Depreciation []float64 `json:"depreciation,omitempty"`
	CapEx        []float64 `json:"capex,omitempty"`

	CurrentAssets      []float64 `json:"current_assets,omitempty"`
	CurrentLiabilities []float64 `json:"current_liabilities,omitempty"`

	Cash              *float64 `json:"cash,omitempty"`
	TotalDebt         *float64 `json:"total_debt,omitempty"`
	MarketCap         *float64 `json:"market_cap,omitempty"`
	SharesOutstanding *float64 `json:"shares_outstanding,omitempty"`
	Beta              *float64 `json:"beta,omitempty"`
}

// Empty reports whether the input carries no data at all.
func (m *ManualInput) Empty() bool {
	if m == nil {
		return true
	}
	if m.Name != "" || m.Industry != "" || m.Sector != "" {
		return false
	}
	if len(m.Revenue)+len(m.EBITDA)+len(m.EBIT)+len(m.NetIncome)+
		len(m.Depreciation)+len(m.CapEx)+len(m.CurrentAssets)+len(m.CurrentLiabilities) > 0 {
		return false
	}
	return m.Cash == nil && m.TotalDebt == nil && m.MarketCap == nil &&
		m.SharesOutstanding == nil && m.Beta == nil
}
