package resolve

import (
	"context"
	"fmt"

	"intrinsic_valuation/pkg/core/dataset"
	"intrinsic_valuation/pkg/core/estimate"
	"intrinsic_valuation/pkg/core/industry"
	"intrinsic_valuation/pkg/core/marketdata"
)

// providerSource is tier 1: statements from an external market data
// provider. Provider failures of any kind (not found, transport, parse) are
// logged and absorbed so later tiers can still run.
type providerSource struct {
	provider marketdata.Provider
}

// NewProviderSource wraps a marketdata provider as a pipeline tier.
func NewProviderSource(p marketdata.Provider) Source {
	return &providerSource{provider: p}
}

func (s *providerSource) Name() string { return "provider" }

func (s *providerSource) Fill(ctx context.Context, req Request, d *dataset.FinancialDataset) error {
	if s.provider == nil || req.Ticker == "" {
		return nil
	}
	// A later provider in a fallback chain must not clobber an earlier hit.
	if d.HasRevenue() {
		return nil
	}

	stmts, err := s.provider.Fetch(ctx, req.Ticker, req.Years)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		fmt.Printf("[PIPELINE] provider lookup failed for %q: %v\n", req.Ticker, err)
		return nil
	}

	if stmts.Name != "" {
		d.Name = stmts.Name
	}
	if stmts.Sector != "" {
		d.Sector = stmts.Sector
	}
	if stmts.Industry != "" {
		d.Industry = stmts.Industry
	}
	if stmts.Country != "" {
		d.Country = stmts.Country
	}
	if stmts.Currency != "" {
		d.Currency = stmts.Currency
	}

	d.Revenue = append([]float64(nil), stmts.Revenue...)
	d.EBITDA = append([]float64(nil), stmts.EBITDA...)
	d.EBIT = append([]float64(nil), stmts.EBIT...)
	d.NetIncome = append([]float64(nil), stmts.NetIncome...)
	d.Depreciation = append([]float64(nil), stmts.Depreciation...)
	d.CapEx = append([]float64(nil), stmts.CapEx...)
	d.CurrentAssets = append([]float64(nil), stmts.CurrentAssets...)
	d.CurrentLiabilities = append([]float64(nil), stmts.CurrentLiabilities...)
	d.Cash = stmts.Cash
	d.TotalDebt = stmts.TotalDebt
	d.MarketCap = stmts.MarketCap
	d.SharesOutstanding = stmts.SharesOutstanding
	d.Beta = stmts.Beta

	d.MarkSource(dataset.SourceProvider)
	if d.HasRevenue() {
		d.Quality = dataset.QualityReal
	}
	return nil
}

// manualSource is tier 2: user-supplied input. Provided fields overwrite
// whatever an earlier tier resolved; absent fields leave it untouched.
type manualSource struct{}

// NewManualSource returns the user-input tier.
func NewManualSource() Source { return manualSource{} }

func (manualSource) Name() string { return "manual" }

func (manualSource) Fill(ctx context.Context, req Request, d *dataset.FinancialDataset) error {
	m := req.Manual
	if m.Empty() {
		return nil
	}

	if m.Name != "" {
		d.Name = m.Name
	}
	if m.Industry != "" {
		d.Industry = m.Industry
	}
	if m.Sector != "" {
		d.Sector = m.Sector
	}

	if len(m.Revenue) > 0 {
		d.Revenue = append([]float64(nil), m.Revenue...)
	}
	if len(m.EBITDA) > 0 {
		d.EBITDA = append([]float64(nil), m.EBITDA...)
	}
	if len(m.EBIT) > 0 {
		d.EBIT = append([]float64(nil), m.EBIT...)
	}
	if len(m.NetIncome) > 0 {
		d.NetIncome = append([]float64(nil), m.NetIncome...)
	}
	if len(m.Depreciation) > 0 {
		d.Depreciation = append([]float64(nil), m.Depreciation...)
	}
	if len(m.CapEx) > 0 {
		d.CapEx = append([]float64(nil), m.CapEx...)
	}
	if len(m.CurrentAssets) > 0 {
		d.CurrentAssets = append([]float64(nil), m.CurrentAssets...)
	}
	if len(m.CurrentLiabilities) > 0 {
		d.CurrentLiabilities = append([]float64(nil), m.CurrentLiabilities...)
	}

	if m.Cash != nil {
		d.Cash = *m.Cash
	}
	if m.TotalDebt != nil {
		d.TotalDebt = *m.TotalDebt
	}
	if m.MarketCap != nil {
		d.MarketCap = *m.MarketCap
	}
	if m.SharesOutstanding != nil {
		d.SharesOutstanding = *m.SharesOutstanding
	}
	if m.Beta != nil {
		d.Beta = *m.Beta
	}

	d.MarkSource(dataset.SourceManual)
	if d.Quality != dataset.QualityReal && d.HasRevenue() {
		d.Quality = dataset.QualityManual
	}
	return nil
}

// profileSource is tier 3: when no revenue has been resolved, synthesize an
// entire snapshot from the industry profile matched to the company name.
// It never partially fills; either the snapshot still has real revenue and
// the tier is a no-op, or it lays down a full synthetic baseline for the
// estimation tier to refine.
type profileSource struct{}

// NewProfileSource returns the heuristic company-profile tier.
func NewProfileSource() Source { return profileSource{} }

func (profileSource) Name() string { return "profile" }

func (profileSource) Fill(ctx context.Context, req Request, d *dataset.FinancialDataset) error {
	if d.HasRevenue() {
		return nil
	}

	profile := industry.ProfileFor(d.Name)
	rev := profile.BaseRevenue

	// Backcast one year at the profile's growth rate so the snapshot has a
	// trend for downstream ratio derivation to read.
	revs := []float64{rev / (1 + profile.GrowthRate), rev}
	scaled := func(base []float64, pct float64) []float64 {
		out := make([]float64, len(base))
		for i, v := range base {
			out[i] = v * pct
		}
		return out
	}

	d.Revenue = revs
	d.EBITDA = scaled(revs, profile.EBITDAMargin)
	d.EBIT = scaled(d.EBITDA, industry.EBITShareOfEBITDA)
	d.NetIncome = scaled(d.EBIT, industry.NetIncomeShareOfEBIT)
	d.Depreciation = scaled(revs, industry.DepreciationPctOfRev)
	d.CapEx = scaled(revs, industry.Resolve(profile.Bucket).CapExPct)
	d.CurrentAssets = scaled(revs, industry.CurrentAssetsPctOfRev)
	d.CurrentLiabilities = scaled(revs, industry.CurrentLiabsPctOfRev)
	d.Cash = rev * industry.CashPctOfRev
	d.TotalDebt = rev * profile.DebtRatio
	d.MarketCap = rev * industry.MarketCapRevMultiple
	d.SharesOutstanding = d.MarketCap / industry.ReferenceSharePrice
	d.Beta = profile.Beta
	if d.Industry == dataset.Unknown || d.Industry == "" {
		d.Industry = profile.Bucket
	}

	d.MarkSource(dataset.SourceProfile)
	d.Quality = dataset.QualityEstimated
	fmt.Printf("[PIPELINE] synthesized %s profile for %q\n", profile.Bucket, d.Name)
	return nil
}

// estimatorSource is tier 4: per-field fallback. For each field still
// missing it walks the estimator chain in order (LLM first when configured,
// formula last) and takes the first answer. Estimator failures fall through
// to the next estimator; a field nobody can estimate stays empty.
type estimatorSource struct {
	estimators []estimate.Estimator
}

// NewEstimatorSource builds the per-field estimation tier from an ordered
// estimator chain.
func NewEstimatorSource(estimators ...estimate.Estimator) Source {
	return &estimatorSource{estimators: estimators}
}

func (s *estimatorSource) Name() string { return "estimate" }

func (s *estimatorSource) Fill(ctx context.Context, req Request, d *dataset.FinancialDataset) error {
	facts := estimate.Facts{
		Company:  d.Name,
		Industry: d.Industry,
		Revenue:  d.LatestRevenue(),
		EBITDA:   dataset.Latest(d.EBITDA),
		EBIT:     dataset.Latest(d.EBIT),
	}
	if facts.Industry == dataset.Unknown {
		facts.Industry = ""
	}

	filled := false
	fillSeries := func(metric estimate.Metric, series *[]float64) error {
		if len(*series) > 0 {
			return nil
		}
		v, ok, err := s.estimateOne(ctx, metric, facts)
		if err != nil {
			return err
		}
		if ok {
			*series = []float64{v}
			filled = true
		}
		return nil
	}
	fillScalar := func(metric estimate.Metric, scalar *float64) error {
		if *scalar != 0 {
			return nil
		}
		v, ok, err := s.estimateOne(ctx, metric, facts)
		if err != nil {
			return err
		}
		if ok {
			*scalar = v
			filled = true
		}
		return nil
	}

	steps := []func() error{
		func() error { return fillSeries(estimate.MetricRevenue, &d.Revenue) },
		func() error { return fillSeries(estimate.MetricEBITDA, &d.EBITDA) },
		func() error { return fillSeries(estimate.MetricEBIT, &d.EBIT) },
		func() error { return fillSeries(estimate.MetricNetIncome, &d.NetIncome) },
		func() error { return fillSeries(estimate.MetricDepreciation, &d.Depreciation) },
		func() error { return fillSeries(estimate.MetricCapEx, &d.CapEx) },
		func() error { return fillSeries(estimate.MetricCurrentAssets, &d.CurrentAssets) },
		func() error { return fillSeries(estimate.MetricCurrentLiabilities, &d.CurrentLiabilities) },
		func() error { return fillScalar(estimate.MetricCash, &d.Cash) },
		func() error { return fillScalar(estimate.MetricTotalDebt, &d.TotalDebt) },
		func() error { return fillScalar(estimate.MetricMarketCap, &d.MarketCap) },
		func() error { return fillScalar(estimate.MetricSharesOutstanding, &d.SharesOutstanding) },
		func() error { return fillScalar(estimate.MetricBeta, &d.Beta) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
		// Refresh base facts as stronger metrics land.
		facts.Revenue = d.LatestRevenue()
		facts.EBITDA = dataset.Latest(d.EBITDA)
		facts.EBIT = dataset.Latest(d.EBIT)
	}

	if filled {
		d.MarkSource(dataset.SourceEstimate)
	}
	return nil
}

// estimateOne walks the chain; ok is false when every estimator failed.
// Only context cancellation propagates as an error.
func (s *estimatorSource) estimateOne(ctx context.Context, metric estimate.Metric, facts estimate.Facts) (float64, bool, error) {
	for _, est := range s.estimators {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		v, err := est.Estimate(ctx, metric, facts)
		if err != nil {
			fmt.Printf("[PIPELINE] estimator %s failed for %s: %v\n", est.Name(), metric, err)
			continue
		}
		return v, true, nil
	}
	return 0, false, nil
}
