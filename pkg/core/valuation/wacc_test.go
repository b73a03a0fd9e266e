package valuation

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCalculateWACC(t *testing.T) {
	m := DefaultMacro()

	// 60/40 equity/debt, beta 1.2:
	// ke = 0.04 + 1.2*0.06 = 0.112, kd = 0.05*0.75 = 0.0375
	// wacc = 0.6*0.112 + 0.4*0.0375 = 0.0822
	got := CalculateWACC(m, 1.2, 600, 400)
	if !almostEqual(got.WACC, 0.0822, 1e-12) {
		t.Errorf("expected WACC 0.0822, got %.6f", got.WACC)
	}
	if !almostEqual(got.CostOfEquity, 0.112, 1e-12) {
		t.Errorf("expected cost of equity 0.112, got %.6f", got.CostOfEquity)
	}
	if !almostEqual(got.CostOfDebtAfterTax, 0.0375, 1e-12) {
		t.Errorf("expected after-tax cost of debt 0.0375, got %.6f", got.CostOfDebtAfterTax)
	}
	if !almostEqual(got.EquityWeight, 0.6, 1e-12) || !almostEqual(got.DebtWeight, 0.4, 1e-12) {
		t.Errorf("expected 60/40 weights, got %.4f/%.4f", got.EquityWeight, got.DebtWeight)
	}
}

func TestCalculateWACC_WeightsSumToOne(t *testing.T) {
	m := DefaultMacro()

	cases := []struct {
		name      string
		marketCap float64
		totalDebt float64
	}{
		{"observed capital", 600, 400},
		{"all equity", 1000, 0},
		{"all debt", 0, 500},
		{"zero capital fallback", 0, 0},
	}
	for _, tc := range cases {
		got := CalculateWACC(m, 1.2, tc.marketCap, tc.totalDebt)
		if sum := got.EquityWeight + got.DebtWeight; !almostEqual(sum, 1.0, 1e-12) {
			t.Errorf("%s: weights sum to %.6f, want 1", tc.name, sum)
		}
	}
}

func TestCalculateWACC_ZeroCapitalFallback(t *testing.T) {
	m := DefaultMacro()

	// No observed capital structure: 70/30 split.
	// ke = 0.04 + 1.1*0.06 = 0.106, kd after tax = 0.0375
	// wacc = 0.7*0.106 + 0.3*0.0375 = 0.08545
	got := CalculateWACC(m, 1.1, 0, 0)
	if !almostEqual(got.WACC, 0.08545, 1e-12) {
		t.Errorf("expected fallback WACC 0.08545, got %.6f", got.WACC)
	}
	if !almostEqual(got.EquityWeight, 0.7, 1e-12) || !almostEqual(got.DebtWeight, 0.3, 1e-12) {
		t.Errorf("expected 70/30 fallback weights, got %.4f/%.4f", got.EquityWeight, got.DebtWeight)
	}
}

func TestCalculateWACC_DefaultBeta(t *testing.T) {
	m := DefaultMacro()

	withDefault := CalculateWACC(m, 0, 700, 300)
	explicit := CalculateWACC(m, m.DefaultBeta, 700, 300)
	if withDefault != explicit {
		t.Errorf("missing beta should use the default: got %+v want %+v", withDefault, explicit)
	}
}

func TestCalculateWACC_AllEquity(t *testing.T) {
	m := DefaultMacro()

	// Pure equity: WACC equals cost of equity.
	got := CalculateWACC(m, 1.0, 1000, 0)
	if !almostEqual(got.WACC, 0.10, 1e-12) {
		t.Errorf("expected 0.10, got %.6f", got.WACC)
	}
	if got.WACC != got.CostOfEquity {
		t.Errorf("all-equity WACC %.6f should equal cost of equity %.6f", got.WACC, got.CostOfEquity)
	}
}
