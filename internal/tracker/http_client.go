package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Default configuration values.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 1 * time.Second
	DefaultMaxDelay    = 10 * time.Second
	DefaultBackoffMult = 2.0
)

// HTTPClient implements Client against the provider's REST Data API.
type HTTPClient struct {
	baseURL     string
	apiKey      string
	client      *http.Client
	maxRetries  int
	retryDelay  time.Duration
	maxDelay    time.Duration
	backoffMult float64
}

// ClientOption configures HTTPClient.
type ClientOption func(*HTTPClient)

// WithAPIKey sets the API key sent with every request.
func WithAPIKey(key string) ClientOption {
	return func(c *HTTPClient) {
		c.apiKey = key
	}
}

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts.
func WithMaxRetries(n int) ClientOption {
	return func(c *HTTPClient) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets initial retry delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.retryDelay = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.client = client
	}
}

// NewHTTPClient creates a new Data API HTTP client.
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:     baseURL,
		client:      &http.Client{Timeout: DefaultTimeout},
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
		maxDelay:    DefaultMaxDelay,
		backoffMult: DefaultBackoffMult,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile-time interface check.
var _ Client = (*HTTPClient)(nil)

// apiEnvelope wraps every Data API response body.
type apiEnvelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// get performs a GET call with retries and exponential backoff, decoding the
// envelope's data field into result.
func (c *HTTPClient) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	delay := c.retryDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * c.backoffMult)
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("x-api-key", c.apiKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429)")
			continue
		}

		// Client errors are not retried
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return fmt.Errorf("api error %d: %s", resp.StatusCode, string(body))
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
			continue
		}

		var envelope apiEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			lastErr = fmt.Errorf("unmarshal envelope: %w", err)
			continue
		}

		if result != nil && envelope.Data != nil {
			if err := json.Unmarshal(envelope.Data, result); err != nil {
				return fmt.Errorf("unmarshal data: %w", err)
			}
		}

		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// SearchTokens retrieves a page of raw token records matching params.
func (c *HTTPClient) SearchTokens(ctx context.Context, params SearchParams) ([]Token, error) {
	query := url.Values{}
	if params.Query != "" {
		query.Set("query", params.Query)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.SortBy != "" {
		query.Set("sortBy", params.SortBy)
	}
	if params.SortOrder != "" {
		query.Set("sortOrder", params.SortOrder)
	}
	if params.MinLiquidity != nil {
		query.Set("minLiquidity", strconv.FormatFloat(*params.MinLiquidity, 'f', -1, 64))
	}
	if params.MaxMarketCap != nil {
		query.Set("maxMarketCap", strconv.FormatFloat(*params.MaxMarketCap, 'f', -1, 64))
	}
	if params.MinHolders != nil {
		query.Set("minHolders", strconv.Itoa(*params.MinHolders))
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}

	var tokens []Token
	if err := c.get(ctx, "/search", query, &tokens); err != nil {
		return nil, fmt.Errorf("search tokens: %w", err)
	}
	return tokens, nil
}

// TokenRisk retrieves the risk assessment for a mint.
func (c *HTTPClient) TokenRisk(ctx context.Context, mint string) (*RiskData, error) {
	var risk RiskData
	if err := c.get(ctx, "/risk/"+mint, nil, &risk); err != nil {
		return nil, fmt.Errorf("token risk %s: %w", mint, err)
	}
	return &risk, nil
}

// TopTraders retrieves a page of top trader summaries across all tokens.
func (c *HTTPClient) TopTraders(ctx context.Context, page int) ([]TopTrader, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	var traders []TopTrader
	if err := c.get(ctx, "/top-traders/all", query, &traders); err != nil {
		return nil, fmt.Errorf("top traders page %d: %w", page, err)
	}
	return traders, nil
}

// WalletPnL retrieves the per-token PnL breakdown for a wallet.
func (c *HTTPClient) WalletPnL(ctx context.Context, address string) (*WalletPnL, error) {
	var pnl WalletPnL
	if err := c.get(ctx, "/pnl/"+address, nil, &pnl); err != nil {
		return nil, fmt.Errorf("wallet pnl %s: %w", address, err)
	}
	return &pnl, nil
}

// Wallet retrieves the current portfolio snapshot for a wallet.
func (c *HTTPClient) Wallet(ctx context.Context, address string) (*WalletInfo, error) {
	var info WalletInfo
	if err := c.get(ctx, "/wallet/"+address, nil, &info); err != nil {
		return nil, fmt.Errorf("wallet %s: %w", address, err)
	}
	return &info, nil
}
