package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// MacroTrendsScraper is a degraded Provider that recovers only a historical
// revenue series by scraping the MacroTrends revenue chart page. It exists
// for tickers the statements API cannot serve: a revenue-only snapshot is
// enough for the pipeline's later tiers to synthesize the rest.
type MacroTrendsScraper struct {
	baseURL    string
	httpClient *http.Client
}

// NewMacroTrendsScraper creates a scraper. baseURL may be empty for the
// production site; tests point it at a local server.
func NewMacroTrendsScraper(baseURL string) *MacroTrendsScraper {
	if baseURL == "" {
		baseURL = "https://www.macrotrends.net"
	}
	return &MacroTrendsScraper{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch scrapes the annual revenue table. Values on the page are in
// millions; the result is rescaled to absolute currency units.
func (s *MacroTrendsScraper) Fetch(ctx context.Context, ticker string, years int) (*Statements, error) {
	u := fmt.Sprintf("%s/stocks/charts/%s/%s/revenue", s.baseURL, strings.ToUpper(ticker), strings.ToLower(ticker))
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("macrotrends request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ticker)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("macrotrends returned status %d for %s", resp.StatusCode, ticker)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("macrotrends parse failed: %w", err)
	}

	byYear := map[int]float64{}
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if !strings.Contains(strings.ToLower(table.Text()), "revenue") {
			return
		}
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return // header
			}
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}
			year, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
			if err != nil {
				return
			}
			raw := strings.TrimSpace(cells.Eq(1).Text())
			raw = strings.ReplaceAll(raw, "$", "")
			raw = strings.ReplaceAll(raw, ",", "")
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return
			}
			byYear[year] = value * 1e6
		})
	})

	if len(byYear) == 0 {
		return nil, fmt.Errorf("%w: no revenue table for %s", ErrNotFound, ticker)
	}

	yearKeys := make([]int, 0, len(byYear))
	for y := range byYear {
		yearKeys = append(yearKeys, y)
	}
	sort.Ints(yearKeys)
	if years > 0 && len(yearKeys) > years {
		yearKeys = yearKeys[len(yearKeys)-years:]
	}

	st := &Statements{}
	for _, y := range yearKeys {
		st.Revenue = append(st.Revenue, byYear[y])
	}
	return st, nil
}
