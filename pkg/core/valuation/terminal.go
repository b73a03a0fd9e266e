package valuation

import (
	"errors"
	"fmt"
)

// ErrInvalidTerminalAssumption is returned when the discount rate does not
// exceed perpetual growth. A Gordon terminal value in that region is
// meaningless (infinite or negative), so it is a hard error rather than a
// silently wrong number.
var ErrInvalidTerminalAssumption = errors.New("valuation: discount rate must exceed terminal growth")

// TerminalMethod selects how the value beyond the forecast horizon is set.
type TerminalMethod string

const (
	TerminalGordon       TerminalMethod = "gordon_growth"
	TerminalExitMultiple TerminalMethod = "exit_multiple"
)

// TerminalValueGordon computes the Gordon Growth perpetuity off the final
// forecast year's cash flow: UFCF_N * (1 + g) / (wacc - g).
func TerminalValueGordon(finalUFCF, wacc, growth float64) (float64, error) {
	if wacc <= growth {
		return 0, fmt.Errorf("%w: wacc=%.4f growth=%.4f", ErrInvalidTerminalAssumption, wacc, growth)
	}
	return finalUFCF * (1 + growth) / (wacc - growth), nil
}

// TerminalValueExitMultiple values the business at exit as a multiple of
// final-year EBITDA.
func TerminalValueExitMultiple(finalEBITDA, multiple float64) float64 {
	return finalEBITDA * multiple
}
