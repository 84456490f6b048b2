package interfaces

import (
	"context"

	"github.com/valora-ai/valora/internal/models"
)

// QuoteService resolves a ticker into a canonical stock snapshot. Each
// call is a fresh upstream request; there is no caching layer.
type QuoteService interface {
	// FetchSnapshot fetches and normalizes market data for a validated
	// B3 listing code. Fails with models.ErrUpstreamNotFound when the
	// provider resolves no match, models.ErrUpstreamUnavailable on
	// network or provider faults.
	FetchSnapshot(ctx context.Context, code string) (*models.StockSnapshot, error)

	// SearchTickers lists the provider's listing codes matching a search
	// fragment, for ticker suggestions. No match is not an error; an
	// empty slice is returned. Fails with models.ErrUpstreamUnavailable
	// on network or provider faults.
	SearchTickers(ctx context.Context, query string) ([]string, error)
}
