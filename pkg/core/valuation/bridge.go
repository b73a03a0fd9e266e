package valuation

// EquityBridge records the walk from enterprise value to a per-share price.
type EquityBridge struct {
	EnterpriseValue   float64 `json:"enterprise_value"`
	NetDebt           float64 `json:"net_debt"`
	EquityValue       float64 `json:"equity_value"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	PricePerShare     float64 `json:"price_per_share"`
}

// BridgeToEquity subtracts net debt (total debt less cash, which may be
// negative for net-cash companies) from enterprise value and divides by the
// share count. A company with no shares on record gets a price of zero: the
// equity value still stands, it just cannot be expressed per share.
func BridgeToEquity(enterpriseValue, totalDebt, cash, sharesOutstanding float64) EquityBridge {
	netDebt := totalDebt - cash
	equity := enterpriseValue - netDebt

	price := 0.0
	if sharesOutstanding > 0 {
		price = equity / sharesOutstanding
	}

	return EquityBridge{
		EnterpriseValue:   enterpriseValue,
		NetDebt:           netDebt,
		EquityValue:       equity,
		SharesOutstanding: sharesOutstanding,
		PricePerShare:     price,
	}
}
