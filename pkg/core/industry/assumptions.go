// Package industry holds the static benchmark tables the valuation engine
// falls back on when company-specific data is missing: per-bucket operating
// assumptions, sector synonym mapping, and name-keyword company profiles.
package industry

import "strings"

// MultipleRange is a low/high band for a valuation multiple. The bands are
// used only for cross-checks against the DCF output, never inside the math.
type MultipleRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Assumptions is the fixed benchmark record for one industry bucket.
type Assumptions struct {
	Bucket         string        `json:"bucket"`
	RevenueGrowth  []float64     `json:"revenue_growth"` // per forecast year; last entry carries forward
	EBITDAMargin   float64       `json:"ebitda_margin"`
	CapExPct       float64       `json:"capex_pct"`
	NWCPct         float64       `json:"nwc_pct"`
	Beta           float64       `json:"beta"`
	TerminalGrowth float64       `json:"terminal_growth"`
	TaxRate        float64       `json:"tax_rate"`
	WACCHint       float64       `json:"wacc_hint"`
	EVRevenue      MultipleRange `json:"ev_revenue"`
	EVEBITDA       MultipleRange `json:"ev_ebitda"`
	PE             MultipleRange `json:"pe"`
}

// DefaultBucket is the catch-all for unmatched labels.
const DefaultBucket = "Default"

var buckets = map[string]Assumptions{
	"Technology": {
		Bucket:         "Technology",
		RevenueGrowth:  []float64{0.15, 0.12, 0.10, 0.08, 0.06},
		EBITDAMargin:   0.30,
		CapExPct:       0.05,
		NWCPct:         0.02,
		Beta:           1.3,
		TerminalGrowth: 0.03,
		TaxRate:        0.21,
		WACCHint:       0.09,
		EVRevenue:      MultipleRange{8, 12},
		EVEBITDA:       MultipleRange{25, 35},
		PE:             MultipleRange{20, 30},
	},
	"Healthcare": {
		Bucket:         "Healthcare",
		RevenueGrowth:  []float64{0.08, 0.07, 0.06, 0.05, 0.04},
		EBITDAMargin:   0.25,
		CapExPct:       0.06,
		NWCPct:         0.15,
		Beta:           1.0,
		TerminalGrowth: 0.025,
		TaxRate:        0.21,
		WACCHint:       0.08,
		EVRevenue:      MultipleRange{4, 8},
		EVEBITDA:       MultipleRange{15, 25},
		PE:             MultipleRange{15, 25},
	},
	"Financial Services": {
		Bucket:         "Financial Services",
		RevenueGrowth:  []float64{0.05, 0.04, 0.04, 0.03, 0.03},
		EBITDAMargin:   0.35,
		CapExPct:       0.03,
		NWCPct:         0.01,
		Beta:           1.1,
		TerminalGrowth: 0.025,
		TaxRate:        0.21,
		WACCHint:       0.08,
		EVRevenue:      MultipleRange{2, 5},
		EVEBITDA:       MultipleRange{10, 18},
		PE:             MultipleRange{8, 15},
	},
	"Consumer Discretionary": {
		Bucket:         "Consumer Discretionary",
		RevenueGrowth:  []float64{0.06, 0.05, 0.04, 0.03, 0.03},
		EBITDAMargin:   0.15,
		CapExPct:       0.08,
		NWCPct:         0.05,
		Beta:           1.2,
		TerminalGrowth: 0.02,
		TaxRate:        0.21,
		WACCHint:       0.09,
		EVRevenue:      MultipleRange{1, 3},
		EVEBITDA:       MultipleRange{8, 15},
		PE:             MultipleRange{12, 20},
	},
	"Energy": {
		Bucket:         "Energy",
		RevenueGrowth:  []float64{0.03, 0.02, 0.02, 0.01, 0.01},
		EBITDAMargin:   0.20,
		CapExPct:       0.15,
		NWCPct:         0.08,
		Beta:           1.4,
		TerminalGrowth: 0.015,
		TaxRate:        0.21,
		WACCHint:       0.10,
		EVRevenue:      MultipleRange{0.5, 2},
		EVEBITDA:       MultipleRange{5, 12},
		PE:             MultipleRange{8, 18},
	},
	DefaultBucket: {
		Bucket:         DefaultBucket,
		RevenueGrowth:  []float64{0.05, 0.04, 0.04, 0.03, 0.03},
		EBITDAMargin:   0.20,
		CapExPct:       0.06,
		NWCPct:         0.03,
		Beta:           1.1,
		TerminalGrowth: 0.025,
		TaxRate:        0.21,
		WACCHint:       0.09,
		EVRevenue:      MultipleRange{2, 5},
		EVEBITDA:       MultipleRange{10, 15},
		PE:             MultipleRange{12, 18},
	},
}

// synonyms maps known sector labels onto buckets. Matching is exact and
// case-sensitive; anything unmatched falls back to the Default bucket.
var synonyms = map[string]string{
	"Software":               "Technology",
	"Internet":               "Technology",
	"Semiconductors":         "Technology",
	"Hardware":               "Technology",
	"Electronics":            "Technology",
	"Information Technology": "Technology",
	"Communication Services": "Technology",
	"Pharmaceuticals":        "Healthcare",
	"Biotechnology":          "Healthcare",
	"Medical Devices":        "Healthcare",
	"Banking":                "Financial Services",
	"Banks":                  "Financial Services",
	"Insurance":              "Financial Services",
	"Financial":              "Financial Services",
	"Financials":             "Financial Services",
	"Consumer":               "Consumer Discretionary",
	"Consumer Cyclical":      "Consumer Discretionary",
	"Consumer Staples":       "Consumer Discretionary",
	"Retail":                 "Consumer Discretionary",
	"Manufacturing":          "Consumer Discretionary",
	"Oil & Gas":              "Energy",
	"Oil":                    "Energy",
	"Gas":                    "Energy",
	"Utilities":              "Energy",
}

// Resolve maps a free-text sector label to its benchmark record. Total
// function: direct bucket names win, then exact synonyms, then Default.
func Resolve(label string) Assumptions {
	if a, ok := buckets[label]; ok {
		return a
	}
	if bucket, ok := synonyms[label]; ok {
		return buckets[bucket]
	}
	return buckets[DefaultBucket]
}

// GrowthForYear returns the growth rate for forecast year t (1-based).
// Horizons longer than the schedule reuse the final entry.
func (a Assumptions) GrowthForYear(t int) float64 {
	if len(a.RevenueGrowth) == 0 {
		return 0
	}
	if t < 1 {
		t = 1
	}
	if t > len(a.RevenueGrowth) {
		return a.RevenueGrowth[len(a.RevenueGrowth)-1]
	}
	return a.RevenueGrowth[t-1]
}

// GrowthSchedule expands the bucket's schedule to exactly years entries.
func (a Assumptions) GrowthSchedule(years int) []float64 {
	out := make([]float64, years)
	for t := 1; t <= years; t++ {
		out[t-1] = a.GrowthForYear(t)
	}
	return out
}

var keywordBuckets = []struct {
	bucket   string
	keywords []string
}{
	{"Technology", []string{"tech", "software", "app", "data", "cloud", "ai", "cyber", "platform", "semiconductor", "digital"}},
	{"Healthcare", []string{"bio", "pharma", "medical", "health", "drug", "clinical", "hospital", "care"}},
	{"Financial Services", []string{"bank", "financial", "capital", "invest", "credit", "loan", "insurance", "fund"}},
	{"Consumer Discretionary", []string{"retail", "store", "shop", "consumer", "brand", "food", "beverage", "restaurant"}},
	{"Energy", []string{"energy", "oil", "gas", "solar", "electric", "power", "utility"}},
}

// DetectBucket classifies a company by keywords in its name. Used by the
// heuristic estimation tier when no sector label is available.
func DetectBucket(companyName string) string {
	name := strings.ToLower(companyName)
	for _, kb := range keywordBuckets {
		for _, kw := range kb.keywords {
			if strings.Contains(name, kw) {
				return kb.bucket
			}
		}
	}
	return DefaultBucket
}
