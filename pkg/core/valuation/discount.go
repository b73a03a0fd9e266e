package valuation

import "math"

// DiscountFactors returns one factor per forecast year. Year-end convention
// discounts year t at (1+wacc)^t; mid-year shifts the exponent to t-0.5 to
// reflect cash arriving throughout the year rather than on the last day.
func DiscountFactors(wacc float64, years int, midYear bool) []float64 {
	out := make([]float64, years)
	for i := 0; i < years; i++ {
		t := float64(i + 1)
		if midYear {
			t -= 0.5
		}
		out[i] = math.Pow(1+wacc, t)
	}
	return out
}

// PresentValueOfCashFlows discounts each cash flow by its factor and sums.
// The slices must be the same length.
func PresentValueOfCashFlows(cashFlows, factors []float64) float64 {
	total := 0.0
	for i, cf := range cashFlows {
		total += cf / factors[i]
	}
	return total
}

// PresentValueOfTerminal discounts a terminal value sitting at the end of
// the horizon. Under the mid-year convention the terminal value shares the
// final year's shifted exponent.
func PresentValueOfTerminal(terminalValue, wacc float64, years int, midYear bool) float64 {
	t := float64(years)
	if midYear {
		t -= 0.5
	}
	return terminalValue / math.Pow(1+wacc, t)
}
