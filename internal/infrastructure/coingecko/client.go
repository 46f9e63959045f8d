package coingecko

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"swingboard-backend/internal/domain"
)

// MinRequestInterval keeps the client under the provider's cap of 30
// requests per rolling minute. Scheduling discipline, not a retry policy.
const MinRequestInterval = 2 * time.Second

// Client talks to a CoinGecko-style market data API. One instance per
// process: its pacing state is the global rate-limiter, so every
// component issuing provider calls must share it.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	minInterval time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

func NewClient(baseURL, apiKey string, minInterval time.Duration) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		apiKey:      apiKey,
		minInterval: minInterval,
	}
}

// throttle blocks until minInterval has elapsed since the last request.
func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if wait := c.minInterval - time.Since(c.lastRequest); wait > 0 {
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

func (c *Client) get(path string, out interface{}) error {
	if c.apiKey == "" {
		return domain.ErrMissingAPIKey
	}
	c.throttle()

	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	req.Header.Set("x-cg-demo-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w (retry-after: %s)", domain.ErrRateLimited, resp.Header.Get("Retry-After"))
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", domain.ErrProviderUnavailable, err)
	}
	return nil
}

type marketRow struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Symbol           string   `json:"symbol"`
	CurrentPrice     float64  `json:"current_price"`
	MarketCap        float64  `json:"market_cap"`
	TotalVolume      float64  `json:"total_volume"`
	PriceChange24h   float64  `json:"price_change_percentage_24h"`
	PriceChange1h    *float64 `json:"price_change_percentage_1h_in_currency"`
	High24h          float64  `json:"high_24h"`
	Low24h           float64  `json:"low_24h"`
	ATH              float64  `json:"ath"`
	ATHChangePercent float64  `json:"ath_change_percentage"`
}

// GetMarkets returns the current market snapshot for the top coins by
// market cap, largest first.
func (c *Client) GetMarkets(perPage int) ([]domain.CoinSnapshot, error) {
	path := fmt.Sprintf(
		"/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1&price_change_percentage=1h,24h",
		perPage,
	)
	var rows []marketRow
	if err := c.get(path, &rows); err != nil {
		return nil, err
	}

	coins := make([]domain.CoinSnapshot, 0, len(rows))
	for _, r := range rows {
		coins = append(coins, domain.CoinSnapshot{
			ID:               r.ID,
			Name:             r.Name,
			Symbol:           r.Symbol,
			CurrentPrice:     r.CurrentPrice,
			MarketCap:        r.MarketCap,
			TotalVolume:      r.TotalVolume,
			PriceChange24h:   r.PriceChange24h,
			PriceChange1h:    r.PriceChange1h,
			High24h:          r.High24h,
			Low24h:           r.Low24h,
			ATH:              r.ATH,
			ATHChangePercent: r.ATHChangePercent,
		})
	}
	return coins, nil
}

type marketChart struct {
	Prices [][]float64 `json:"prices"` // [timestamp_ms, price] pairs
}

// GetMarketChart returns days of daily closing prices for one coin,
// oldest first. An empty series from the provider is reported as
// domain.ErrSeriesUnavailable.
func (c *Client) GetMarketChart(coinID string, days int) ([]float64, error) {
	path := fmt.Sprintf("/coins/%s/market_chart?vs_currency=usd&days=%d&interval=daily", coinID, days)
	var chart marketChart
	if err := c.get(path, &chart); err != nil {
		return nil, err
	}
	if len(chart.Prices) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrSeriesUnavailable, coinID)
	}

	prices := make([]float64, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		if len(p) < 2 {
			continue
		}
		prices = append(prices, p[1])
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrSeriesUnavailable, coinID)
	}
	return prices, nil
}
