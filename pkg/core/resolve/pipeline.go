// Package resolve implements the data-resolution pipeline: an ordered chain
// of tiers (provider lookup, manual input, heuristic profile, per-field
// estimation) that turns a ticker or company name into one normalized
// FinancialDataset. Tiers fill gaps left by earlier tiers; only a snapshot
// with no usable revenue after every tier is a failure.
package resolve

import (
	"context"
	"errors"
	"fmt"

	"intrinsic_valuation/pkg/core/dataset"
)

// ErrDataUnavailable is the pipeline's only fatal outcome: no tier could
// produce a usable revenue figure, so there is nothing to value.
var ErrDataUnavailable = errors.New("resolve: no usable financial data for company")

// Status summarizes how well the pipeline resolved the request.
type Status string

const (
	StatusComplete Status = "COMPLETE" // provider and/or manual data covered everything
	StatusPartial  Status = "PARTIAL"  // heuristic or estimated fields present
	StatusFailed   Status = "FAILED"   // no revenue after all tiers
)

// Request identifies the company to resolve. Ticker drives the provider
// tier; Company drives the heuristic tiers; Manual is optional user input.
type Request struct {
	Ticker  string
	Company string
	Years   int
	Manual  *dataset.ManualInput
}

// Source is one resolution tier. Fill inspects the snapshot, contributes
// whatever it can for fields still missing, and returns an error only for
// context cancellation; ordinary tier failures are absorbed so the chain
// always runs to the end.
type Source interface {
	Name() string
	Fill(ctx context.Context, req Request, d *dataset.FinancialDataset) error
}

// Pipeline runs tiers in order and applies the consistency validator to the
// combined snapshot.
type Pipeline struct {
	sources   []Source
	validator *Validator
}

// NewPipeline assembles a pipeline from tiers. A nil validator means the
// default policy.
func NewPipeline(validator *Validator, sources ...Source) *Pipeline {
	if validator == nil {
		validator = NewValidator(DefaultPolicy())
	}
	return &Pipeline{sources: sources, validator: validator}
}

// Resolve produces one validated snapshot for the request. The returned
// error is ErrDataUnavailable (wrapped) when every tier came up empty, or a
// context error if the caller cancelled.
func (p *Pipeline) Resolve(ctx context.Context, req Request) (*dataset.FinancialDataset, Status, error) {
	if req.Years <= 0 {
		req.Years = 5
	}

	d := dataset.New()
	if req.Company != "" {
		d.Name = req.Company
	} else if req.Ticker != "" {
		d.Name = req.Ticker
	}

	for _, src := range p.sources {
		if err := ctx.Err(); err != nil {
			return nil, StatusFailed, err
		}
		fmt.Printf("[PIPELINE] tier=%s company=%q\n", src.Name(), d.Name)
		if err := src.Fill(ctx, req, d); err != nil {
			return nil, StatusFailed, err
		}
	}

	if !d.HasRevenue() {
		return nil, StatusFailed, fmt.Errorf("%w: %q", ErrDataUnavailable, d.Name)
	}

	d = p.validator.Validate(d)

	status := StatusComplete
	for _, s := range d.Sources {
		if s == dataset.SourceProfile || s == dataset.SourceEstimate {
			status = StatusPartial
			break
		}
	}
	fmt.Printf("[PIPELINE] resolved company=%q status=%s quality=%s sources=%v corrections=%d\n",
		d.Name, status, d.Quality, d.Sources, len(d.Corrections))
	return d, status, nil
}
