package brapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for the Brapi API.
	DefaultBaseURL = "https://brapi.dev/api"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5
)

// Client is a Brapi quote API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets a custom HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Brapi API client.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a GET request to the API.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return &RateLimitError{RetryAfter: time.Second}
	}

	if params == nil {
		params = url.Values{}
	}
	if c.token != "" {
		params.Set("token", c.token)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("url", c.baseURL+path).
			Msg("Brapi API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		message := string(body)

		// The provider wraps errors in {"error": true, "message": "..."}
		var errResp ErrorResponse
		if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Message != "" {
			message = errResp.Message
		}

		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    message,
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetQuote retrieves a quote for a B3 listing code (e.g. "PETR4"),
// including fundamentals and historical prices in a single call when the
// corresponding options are set.
func (c *Client) GetQuote(ctx context.Context, code string, opts ...QueryOption) (*QuoteResponse, error) {
	params := &queryParams{
		Range:       "1mo",
		Interval:    "1d",
		Fundamental: true,
	}
	for _, opt := range opts {
		opt(params)
	}

	queryParams := url.Values{}
	if params.Range != "" {
		queryParams.Set("range", params.Range)
	}
	if params.Interval != "" {
		queryParams.Set("interval", params.Interval)
	}
	if params.Fundamental {
		queryParams.Set("fundamental", "true")
	}
	if len(params.Modules) > 0 {
		queryParams.Set("modules", strings.Join(params.Modules, ","))
	}

	var result QuoteResponse
	if err := c.get(ctx, "/quote/"+code, queryParams, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetAvailable checks which of the given codes the provider can resolve.
func (c *Client) GetAvailable(ctx context.Context, search string) ([]string, error) {
	queryParams := url.Values{}
	if search != "" {
		queryParams.Set("search", search)
	}

	var result struct {
		Stocks []string `json:"stocks"`
	}
	if err := c.get(ctx, "/available", queryParams, &result); err != nil {
		return nil, err
	}

	return result.Stocks, nil
}
