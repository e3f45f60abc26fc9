// Package forex fetches the USD to INR exchange rate from the Yahoo Finance chart API.
package forex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"nivesh/internal/currency"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com/v8/finance/chart"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 2 // requests per second

	usdINRTicker = "USDINR=X"
	userAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// chartResponse is the subset of the v8 chart payload the client reads.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string          `json:"symbol"`
				Currency           string          `json:"currency"`
				RegularMarketPrice decimal.Decimal `json:"regularMarketPrice"`
				RegularMarketTime  int64           `json:"regularMarketTime"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Client fetches exchange rates. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	now        func() time.Time
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL overrides the chart endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// NewClient creates a forex client with the given options applied.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchUSDINR returns the latest USD to INR rate. The rate is stamped with the
// market time reported by the API, or the current time when it is missing.
func (c *Client) FetchUSDINR(ctx context.Context) (currency.Rate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return currency.Rate{}, fmt.Errorf("rate limit wait: %w", err)
	}

	url := c.baseURL + "/" + usdINRTicker + "?interval=1d&range=1d"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return currency.Rate{}, fmt.Errorf("building forex request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return currency.Rate{}, fmt.Errorf("forex http request for %s: %w", usdINRTicker, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return currency.Rate{}, fmt.Errorf("forex request for %s: unexpected status %d", usdINRTicker, resp.StatusCode)
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return currency.Rate{}, fmt.Errorf("decoding forex response for %s: %w", usdINRTicker, err)
	}
	if chart.Chart.Error != nil {
		return currency.Rate{}, fmt.Errorf("forex chart error for %s: %s: %s", usdINRTicker, chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return currency.Rate{}, fmt.Errorf("no forex results for %s", usdINRTicker)
	}

	meta := chart.Chart.Result[0].Meta
	asOf := c.now().UTC()
	if meta.RegularMarketTime > 0 {
		asOf = time.Unix(meta.RegularMarketTime, 0).UTC()
	}
	r, err := currency.NewRate(meta.RegularMarketPrice, asOf)
	if err != nil {
		return currency.Rate{}, fmt.Errorf("forex rate for %s: %w", usdINRTicker, err)
	}
	return r, nil
}
