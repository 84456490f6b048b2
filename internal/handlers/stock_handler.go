package handlers

import (
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/valora-ai/valora/internal/common"
	"github.com/valora-ai/valora/internal/interfaces"
	"github.com/valora-ai/valora/internal/models"
)

// StockHandler serves quote lookups for B3 listing codes.
type StockHandler struct {
	quoteService interfaces.QuoteService
	logger       arbor.ILogger
}

func NewStockHandler(quoteService interfaces.QuoteService) *StockHandler {
	return &StockHandler{
		quoteService: quoteService,
		logger:       common.GetLogger(),
	}
}

// GetStockHandler handles GET /api/stock/{ticker}. The ticker shape is
// validated locally before any upstream call.
func (h *StockHandler) GetStockHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	raw := extractTickerPath(r.URL.Path)
	ticker := common.ParseTicker(raw)
	if !ticker.Valid() {
		h.logger.Debug().Str("input", raw).Msg("Rejected malformed ticker")
		WritePipelineError(w, models.NewPipelineError(models.ErrTickerNotRecognized, "%q", raw))
		return
	}

	h.logger.Debug().
		Str("state", string(models.StateFetchingQuote)).
		Str("ticker", ticker.Code).
		Msg("Pipeline state transition")

	snapshot, err := h.quoteService.FetchSnapshot(r.Context(), ticker.Code)
	if err != nil {
		WritePipelineError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

// AvailableResponse lists the provider's listing codes for a search
// fragment.
type AvailableResponse struct {
	Stocks []string `json:"stocks"`
}

// SearchStocksHandler handles GET /api/available?search={fragment} and
// returns matching listing codes for ticker suggestions.
func (h *StockHandler) SearchStocksHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("search"))
	if query == "" {
		WriteError(w, http.StatusBadRequest, "Missing 'search' query parameter.")
		return
	}

	stocks, err := h.quoteService.SearchTickers(r.Context(), query)
	if err != nil {
		WritePipelineError(w, err)
		return
	}
	if stocks == nil {
		stocks = []string{}
	}

	WriteJSON(w, http.StatusOK, AvailableResponse{Stocks: stocks})
}

// extractTickerPath pulls the ticker segment from /api/stock/{ticker}.
func extractTickerPath(path string) string {
	rest := strings.TrimPrefix(path, "/api/stock/")
	return strings.TrimSuffix(rest, "/")
}
