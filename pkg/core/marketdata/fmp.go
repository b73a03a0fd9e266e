package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultFMPBaseURL = "https://financialmodelingprep.com/api/v3"
	userAgent         = "intrinsic-valuation/1.0"
)

// FMPClient implements Provider against the Financial Modeling Prep v3
// statements API. Responses arrive newest-first; the client reverses them
// to the pipeline's oldest-first convention.
type FMPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewFMPClient creates a client. baseURL may be empty for the production
// endpoint; tests point it at a local server.
func NewFMPClient(baseURL, apiKey string) *FMPClient {
	if baseURL == "" {
		baseURL = defaultFMPBaseURL
	}
	return &FMPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type fmpIncomeStatement struct {
	Revenue                      float64 `json:"revenue"`
	EBITDA                       float64 `json:"ebitda"`
	OperatingIncome              float64 `json:"operatingIncome"`
	NetIncome                    float64 `json:"netIncome"`
	DepreciationAndAmortization  float64 `json:"depreciationAndAmortization"`
	ReportedCurrency             string  `json:"reportedCurrency"`
}

type fmpBalanceSheet struct {
	CashAndCashEquivalents  float64 `json:"cashAndCashEquivalents"`
	TotalDebt               float64 `json:"totalDebt"`
	TotalCurrentAssets      float64 `json:"totalCurrentAssets"`
	TotalCurrentLiabilities float64 `json:"totalCurrentLiabilities"`
}

type fmpCashFlow struct {
	CapitalExpenditure float64 `json:"capitalExpenditure"`
}

type fmpProfile struct {
	CompanyName       string  `json:"companyName"`
	Sector            string  `json:"sector"`
	Industry          string  `json:"industry"`
	Country           string  `json:"country"`
	Currency          string  `json:"currency"`
	MktCap            float64 `json:"mktCap"`
	Beta              float64 `json:"beta"`
	SharesOutstanding float64 `json:"sharesOutstanding"`
}

// Fetch retrieves income, balance sheet, cash flow and profile data and maps
// them onto a Statements record. An empty income-statement response is an
// ErrNotFound: FMP returns [] for unknown tickers rather than a 404.
func (c *FMPClient) Fetch(ctx context.Context, ticker string, years int) (*Statements, error) {
	if years <= 0 {
		years = 5
	}

	var income []fmpIncomeStatement
	if err := c.getJSON(ctx, fmt.Sprintf("/income-statement/%s", ticker), years, &income); err != nil {
		return nil, err
	}
	if len(income) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ticker)
	}

	var balance []fmpBalanceSheet
	if err := c.getJSON(ctx, fmt.Sprintf("/balance-sheet-statement/%s", ticker), years, &balance); err != nil {
		return nil, err
	}
	var cashflow []fmpCashFlow
	if err := c.getJSON(ctx, fmt.Sprintf("/cash-flow-statement/%s", ticker), years, &cashflow); err != nil {
		return nil, err
	}
	var profiles []fmpProfile
	if err := c.getJSON(ctx, fmt.Sprintf("/profile/%s", ticker), 0, &profiles); err != nil {
		return nil, err
	}

	st := &Statements{}
	// Newest-first -> oldest-first.
	for i := len(income) - 1; i >= 0; i-- {
		row := income[i]
		st.Revenue = append(st.Revenue, row.Revenue)
		st.EBITDA = append(st.EBITDA, row.EBITDA)
		st.EBIT = append(st.EBIT, row.OperatingIncome)
		st.NetIncome = append(st.NetIncome, row.NetIncome)
		st.Depreciation = append(st.Depreciation, row.DepreciationAndAmortization)
		if st.Currency == "" {
			st.Currency = row.ReportedCurrency
		}
	}
	for i := len(cashflow) - 1; i >= 0; i-- {
		capex := cashflow[i].CapitalExpenditure
		if capex < 0 {
			capex = -capex // FMP reports capex as a negative outflow
		}
		st.CapEx = append(st.CapEx, capex)
	}
	for i := len(balance) - 1; i >= 0; i-- {
		st.CurrentAssets = append(st.CurrentAssets, balance[i].TotalCurrentAssets)
		st.CurrentLiabilities = append(st.CurrentLiabilities, balance[i].TotalCurrentLiabilities)
	}
	if len(balance) > 0 {
		latest := balance[0] // newest-first
		st.Cash = latest.CashAndCashEquivalents
		st.TotalDebt = latest.TotalDebt
	}
	if len(profiles) > 0 {
		p := profiles[0]
		st.Name = p.CompanyName
		st.Sector = p.Sector
		st.Industry = p.Industry
		st.Country = p.Country
		if p.Currency != "" {
			st.Currency = p.Currency
		}
		st.MarketCap = p.MktCap
		st.Beta = p.Beta
		st.SharesOutstanding = p.SharesOutstanding
	}
	return st, nil
}

func (c *FMPClient) getJSON(ctx context.Context, endpoint string, limit int, out interface{}) error {
	u := c.baseURL + endpoint
	params := url.Values{}
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fmp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, endpoint)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fmp returned status %d for %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("fmp response decode failed: %w", err)
	}
	return nil
}
