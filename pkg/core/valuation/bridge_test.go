package valuation

import "testing"

func TestBridgeToEquity(t *testing.T) {
	b := BridgeToEquity(1000, 300, 100, 10)

	if b.NetDebt != 200 {
		t.Errorf("expected net debt 200, got %.2f", b.NetDebt)
	}
	if b.EquityValue != 800 {
		t.Errorf("expected equity 800, got %.2f", b.EquityValue)
	}
	if b.PricePerShare != 80 {
		t.Errorf("expected price 80, got %.2f", b.PricePerShare)
	}
}

func TestBridgeToEquity_NetCash(t *testing.T) {
	// More cash than debt adds to equity.
	b := BridgeToEquity(1000, 100, 300, 10)

	if b.NetDebt != -200 {
		t.Errorf("expected net debt -200, got %.2f", b.NetDebt)
	}
	if b.EquityValue != 1200 {
		t.Errorf("expected equity 1200, got %.2f", b.EquityValue)
	}
}

func TestBridgeToEquity_NoShares(t *testing.T) {
	b := BridgeToEquity(1000, 300, 100, 0)

	if b.EquityValue != 800 {
		t.Errorf("equity value should still be computed, got %.2f", b.EquityValue)
	}
	if b.PricePerShare != 0 {
		t.Errorf("price must be zero without a share count, got %.2f", b.PricePerShare)
	}
}
