package industry

// Profile is the synthetic starting point for a company that cannot be
// resolved from any data source: a plausible scale plus the fixed ratios
// needed to synthesize a full financial snapshot.
type Profile struct {
	Bucket       string
	BaseRevenue  float64
	EBITDAMargin float64
	GrowthRate   float64 // first-year growth from the bucket schedule
	Beta         float64
	DebtRatio    float64 // total debt as a share of revenue
}

// Per-bucket revenue scale and leverage. Companies in finance and energy
// typically run larger and more levered than the generic default.
var profileScale = map[string]struct {
	baseRevenue float64
	debtRatio   float64
}{
	"Technology":             {5e9, 0.20},
	"Healthcare":             {2e9, 0.30},
	"Financial Services":     {8e9, 0.80},
	"Consumer Discretionary": {2e9, 0.40},
	"Energy":                 {3e9, 0.60},
	DefaultBucket:            {2e9, 0.30},
}

// Fixed ratio relationships shared by the heuristic profile tier and the
// per-field formula fallback.
const (
	EBITShareOfEBITDA     = 0.85
	NetIncomeShareOfEBIT  = 0.75
	DepreciationPctOfRev  = 0.04
	CashPctOfRev          = 0.15
	CurrentAssetsPctOfRev = 0.30
	CurrentLiabsPctOfRev  = 0.20
	MarketCapRevMultiple  = 3.5
	ReferenceSharePrice   = 150.0
)

// ProfileFor classifies a company name and returns the matching profile.
func ProfileFor(companyName string) Profile {
	bucket := DetectBucket(companyName)
	a := buckets[bucket]
	scale := profileScale[bucket]
	return Profile{
		Bucket:       bucket,
		BaseRevenue:  scale.baseRevenue,
		EBITDAMargin: a.EBITDAMargin,
		GrowthRate:   a.GrowthForYear(1),
		Beta:         a.Beta,
		DebtRatio:    scale.debtRatio,
	}
}
