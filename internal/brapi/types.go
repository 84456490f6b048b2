package brapi

import (
	"fmt"
	"time"
)

// APIError represents an error response from the quote provider API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("brapi API error on %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// NotFound reports whether the provider resolved no match for the symbol.
func (e *APIError) NotFound() bool {
	return e.StatusCode == 404
}

// RateLimitError indicates the client-side limiter rejected the request.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// queryParams holds optional query settings for quote requests.
type queryParams struct {
	Range       string
	Interval    string
	Fundamental bool
	Modules     []string
}

// QueryOption configures a quote request.
type QueryOption func(*queryParams)

// WithRange sets the historical window (e.g. "1mo", "3mo").
func WithRange(r string) QueryOption {
	return func(p *queryParams) {
		p.Range = r
	}
}

// WithInterval sets the historical sampling interval (e.g. "1d").
func WithInterval(interval string) QueryOption {
	return func(p *queryParams) {
		p.Interval = interval
	}
}

// WithFundamental requests fundamental indicator fields.
func WithFundamental(enabled bool) QueryOption {
	return func(p *queryParams) {
		p.Fundamental = enabled
	}
}

// WithModules requests extended data modules (e.g. "summaryProfile",
// "defaultKeyStatistics", "financialData").
func WithModules(modules ...string) QueryOption {
	return func(p *queryParams) {
		p.Modules = modules
	}
}
