package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - quotes
	mux.HandleFunc("/api/stock/", s.app.StockHandler.GetStockHandler)        // GET /{ticker}
	mux.HandleFunc("/api/available", s.app.StockHandler.SearchStocksHandler) // GET ?search=

	// API routes - document upload
	mux.HandleFunc("/api/upload-pdf", s.app.UploadHandler.UploadHandler) // POST multipart "pdf"

	// Valuation chat. The bare /chat path is what the UI posts to; the
	// /api alias keeps the surface consistent for API clients.
	mux.HandleFunc("/chat", s.app.ChatHandler.ChatHandler)     // POST
	mux.HandleFunc("/api/chat", s.app.ChatHandler.ChatHandler) // POST

	// API routes - report export
	mux.HandleFunc("/api/report/pdf", s.app.ReportHandler.ReportHandler) // POST

	// API routes - service status
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)

	// Everything else under /api is an explicit JSON 404
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			s.app.APIHandler.NotFoundHandler(w, r)
			return
		}
		http.NotFound(w, r)
	})

	return mux
}
