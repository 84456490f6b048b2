package brapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const quoteFixture = `{
	"results": [{
		"symbol": "PETR4",
		"longName": "Petroleo Brasileiro S.A. - Petrobras",
		"currency": "BRL",
		"regularMarketPrice": 38.21,
		"regularMarketChangePercent": 1.23,
		"marketCap": 497000000000,
		"priceEarnings": 4.1,
		"historicalDataPrice": [
			{"date": 1722902400, "close": 37.9},
			{"date": 1722816000, "close": 37.5}
		],
		"defaultKeyStatistics": {
			"priceToBook": 1.2,
			"dividendYield": 0.11,
			"sharesOutstanding": 13044496000
		},
		"financialData": {
			"freeCashflow": 120000000000,
			"totalDebt": 300000000000,
			"totalCash": 60000000000
		}
	}],
	"requestedAt": "2025-08-06T12:00:00.000Z"
}`

func TestGetQuote(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(quoteFixture))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))

	resp, err := client.GetQuote(context.Background(), "PETR4",
		WithModules("summaryProfile", "defaultKeyStatistics", "financialData"))
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}

	if gotPath != "/quote/PETR4" {
		t.Errorf("path = %q, want /quote/PETR4", gotPath)
	}
	for _, want := range []string{"range=1mo", "interval=1d", "fundamental=true", "token=test-token", "modules="} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}

	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}
	r := resp.Results[0]
	if r.Symbol != "PETR4" {
		t.Errorf("Symbol = %q, want PETR4", r.Symbol)
	}
	if r.RegularMarketPrice == nil || *r.RegularMarketPrice != 38.21 {
		t.Errorf("RegularMarketPrice = %v, want 38.21", r.RegularMarketPrice)
	}
	if r.SummaryProfile != nil {
		t.Errorf("SummaryProfile should be nil when provider omits it")
	}
	if r.FinancialData == nil || r.FinancialData.FreeCashflow == nil {
		t.Fatalf("FinancialData.FreeCashflow missing")
	}
	if len(r.HistoricalDataPrice) != 2 {
		t.Errorf("got %d historical points, want 2", len(r.HistoricalDataPrice))
	}
}

func TestGetQuoteNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": true, "message": "Quote not found for symbol: ZZZZ9"}`))
	}))
	defer server.Close()

	client := NewClient("", WithBaseURL(server.URL))

	_, err := client.GetQuote(context.Background(), "ZZZZ9")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if !apiErr.NotFound() {
		t.Errorf("NotFound() = false, want true")
	}
	if apiErr.Message != "Quote not found for symbol: ZZZZ9" {
		t.Errorf("Message = %q, want provider message", apiErr.Message)
	}
}

func TestGetQuoteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := NewClient("", WithBaseURL(server.URL))

	_, err := client.GetQuote(context.Background(), "PETR4")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.NotFound() {
		t.Errorf("NotFound() = true for a 500, want false")
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
}
