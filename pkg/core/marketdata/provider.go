// Package marketdata defines the tier-1 boundary of the resolution pipeline:
// fetching company financial statements and market facts from an external
// provider. Implementations may hit a statements API or scrape historical
// tables; the pipeline only sees the Provider interface.
package marketdata

import (
	"context"
	"errors"
)

// ErrNotFound signals an explicit "ticker unknown" response from a provider,
// as opposed to a transport failure. Both cause the pipeline to fall through
// to the next tier.
var ErrNotFound = errors.New("marketdata: ticker not found")

// Statements is the provider-neutral response shape: time series ordered
// oldest to newest, latest-period balance facts, and market facts. Missing
// pieces are zero/empty; the pipeline fills gaps from later tiers.
type Statements struct {
	Name     string
	Sector   string
	Industry string
	Country  string
	Currency string

	Revenue      []float64
	EBITDA       []float64
	EBIT         []float64
	NetIncome    []float64
	Depreciation []float64
	CapEx        []float64

	CurrentAssets      []float64
	CurrentLiabilities []float64

	Cash      float64
	TotalDebt float64

	MarketCap         float64
	SharesOutstanding float64
	Beta              float64
}

// Provider fetches up to years of annual statements for a ticker.
type Provider interface {
	Fetch(ctx context.Context, ticker string, years int) (*Statements, error)
}
