package quotes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/valora-ai/valora/internal/brapi"
	"github.com/valora-ai/valora/internal/interfaces"
	"github.com/valora-ai/valora/internal/models"
)

// defaultEstimatedWACC is the provider-side placeholder used when the
// financialData module omits a cost-of-capital figure. It is not computed
// here; the actual WACC derivation is part of the generated analysis.
const defaultEstimatedWACC = 0.10

// historyDateLayout renders close dates in the display locale's
// day/month form.
const historyDateLayout = "02/01"

// quoteModules are requested together so one upstream round trip covers
// price, fundamentals and the historical series.
var quoteModules = []string{"summaryProfile", "defaultKeyStatistics", "financialData"}

// Service normalizes provider quotes into canonical stock snapshots.
type Service struct {
	client *brapi.Client
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.QuoteService = (*Service)(nil)

// NewService creates a quote normalizer backed by the given Brapi client.
func NewService(client *brapi.Client, logger arbor.ILogger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// FetchSnapshot fetches market data for a validated B3 listing code and
// maps it into the canonical snapshot shape. Missing provider fields map
// to nil, never to zero values and never to a panic on an absent module.
func (s *Service) FetchSnapshot(ctx context.Context, code string) (*models.StockSnapshot, error) {
	resp, err := s.client.GetQuote(ctx, code,
		brapi.WithRange("1mo"),
		brapi.WithInterval("1d"),
		brapi.WithFundamental(true),
		brapi.WithModules(quoteModules...),
	)
	if err != nil {
		var apiErr *brapi.APIError
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			s.logger.Info().
				Str("ticker", code).
				Msg("Quote provider found no match")
			return nil, models.NewPipelineError(models.ErrUpstreamNotFound, "ticker %s", code)
		}
		s.logger.Warn().
			Err(err).
			Str("ticker", code).
			Msg("Quote provider request failed")
		return nil, models.NewPipelineError(models.ErrUpstreamUnavailable, "%v", err)
	}

	if len(resp.Results) == 0 {
		return nil, models.NewPipelineError(models.ErrUpstreamNotFound, "ticker %s: empty result set", code)
	}

	snapshot := mapResult(&resp.Results[0])

	s.logger.Debug().
		Str("ticker", snapshot.Ticker).
		Str("company", snapshot.CompanyName).
		Int("history_points", len(snapshot.History)).
		Msg("Stock snapshot normalized")

	return snapshot, nil
}

// SearchTickers asks the provider which listing codes match a search
// fragment. Used for ticker suggestions before a full snapshot fetch.
func (s *Service) SearchTickers(ctx context.Context, query string) ([]string, error) {
	stocks, err := s.client.GetAvailable(ctx, strings.TrimSpace(query))
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("query", query).
			Msg("Ticker search request failed")
		return nil, models.NewPipelineError(models.ErrUpstreamUnavailable, "%v", err)
	}
	return stocks, nil
}

// mapResult maps one provider result into the canonical snapshot.
func mapResult(r *brapi.QuoteResult) *models.StockSnapshot {
	snapshot := &models.StockSnapshot{
		Ticker:        r.Symbol,
		CompanyName:   companyName(r),
		Price:         r.RegularMarketPrice,
		Variation:     fractional(r.RegularMarketChangePercent),
		MarketCap:     r.MarketCap,
		EstimatedWACC: defaultEstimatedWACC,
		Indicators: models.Indicators{
			PriceToEarnings: r.PriceEarnings,
		},
		History: mapHistory(r.HistoricalDataPrice),
	}

	if r.SummaryProfile != nil && r.SummaryProfile.Sector != "" {
		sector := r.SummaryProfile.Sector
		snapshot.Sector = &sector
	}

	if stats := r.DefaultKeyStatistics; stats != nil {
		snapshot.SharesOutstanding = stats.SharesOutstanding
		snapshot.Indicators.PriceToBook = stats.PriceToBook
		snapshot.Indicators.DividendYield = stats.DividendYield
	}

	if fin := r.FinancialData; fin != nil {
		snapshot.FreeCashFlowTTM = fin.FreeCashflow
		snapshot.TotalDebt = fin.TotalDebt
		snapshot.TotalCash = fin.TotalCash
		if fin.WeightedAverageCost != nil {
			snapshot.EstimatedWACC = *fin.WeightedAverageCost
		}
	}

	return snapshot
}

func companyName(r *brapi.QuoteResult) string {
	if r.LongName != "" {
		return r.LongName
	}
	return r.ShortName
}

// fractional converts the provider's percent figure (1.23 = 1.23%) into
// the canonical fractional form (0.0123).
func fractional(percent *float64) *float64 {
	if percent == nil {
		return nil
	}
	v := *percent / 100
	return &v
}

// mapHistory reformats historical closes into a chronologically ascending
// series with display-ready day/month dates. The provider sends the
// series newest-first; points without a close price are dropped.
func mapHistory(prices []brapi.HistoricalPrice) []models.PricePoint {
	points := make([]models.PricePoint, 0, len(prices))
	type dated struct {
		ts    int64
		point models.PricePoint
	}
	ordered := make([]dated, 0, len(prices))

	for _, p := range prices {
		if p.Close == nil {
			continue
		}
		ordered = append(ordered, dated{
			ts: p.Date,
			point: models.PricePoint{
				Date:  time.Unix(p.Date, 0).UTC().Format(historyDateLayout),
				Close: *p.Close,
			},
		})
	}

	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ts < ordered[j].ts })

	for _, d := range ordered {
		points = append(points, d.point)
	}
	return points
}

// Describe returns a one-line summary used in request logs.
func Describe(s *models.StockSnapshot) string {
	if s == nil {
		return "<nil snapshot>"
	}
	sector := "unclassified"
	if s.Sector != nil {
		sector = *s.Sector
	}
	return fmt.Sprintf("%s (%s, sector=%s)", s.Ticker, s.CompanyName, sector)
}
