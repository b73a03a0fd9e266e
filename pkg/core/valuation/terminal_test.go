package valuation

import (
	"errors"
	"testing"
)

func TestTerminalValueGordon(t *testing.T) {
	// 100 * 1.025 / (0.10 - 0.025) = 1366.666...
	got, err := TerminalValueGordon(100, 0.10, 0.025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 100*1.025/0.075, 1e-9) {
		t.Errorf("expected %.4f, got %.4f", 100*1.025/0.075, got)
	}
}

func TestTerminalValueGordon_WACCEqualsGrowth(t *testing.T) {
	_, err := TerminalValueGordon(100, 0.05, 0.05)
	if err == nil {
		t.Fatal("expected an error when WACC equals growth")
	}
	if !errors.Is(err, ErrInvalidTerminalAssumption) {
		t.Errorf("expected ErrInvalidTerminalAssumption, got %v", err)
	}
}

func TestTerminalValueGordon_WACCBelowGrowth(t *testing.T) {
	_, err := TerminalValueGordon(100, 0.03, 0.05)
	if !errors.Is(err, ErrInvalidTerminalAssumption) {
		t.Errorf("expected ErrInvalidTerminalAssumption, got %v", err)
	}
}

func TestTerminalValueGordon_Monotonicity(t *testing.T) {
	base, _ := TerminalValueGordon(100, 0.10, 0.025)

	higherGrowth, _ := TerminalValueGordon(100, 0.10, 0.030)
	if higherGrowth <= base {
		t.Errorf("terminal value should rise with growth: %.2f vs %.2f", higherGrowth, base)
	}

	higherWACC, _ := TerminalValueGordon(100, 0.11, 0.025)
	if higherWACC >= base {
		t.Errorf("terminal value should fall with WACC: %.2f vs %.2f", higherWACC, base)
	}
}

func TestTerminalValueExitMultiple(t *testing.T) {
	got := TerminalValueExitMultiple(250, 10)
	if got != 2500 {
		t.Errorf("expected 2500, got %.2f", got)
	}
}
