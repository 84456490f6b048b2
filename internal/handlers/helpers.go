package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valora-ai/valora/internal/models"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a standard error JSON response. The envelope is
// always `{"message": ...}`; the UI renders that field directly.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"message": message,
	})
}

// WritePipelineError maps a pipeline failure to its HTTP status and a
// user-facing message. Unknown errors become a plain 500.
func WritePipelineError(w http.ResponseWriter, err error) error {
	switch {
	case errors.Is(err, models.ErrTickerNotRecognized):
		return WriteError(w, http.StatusBadRequest, "Ticker not recognized. Use the B3 format, e.g. PETR4.")
	case errors.Is(err, models.ErrMissingContext):
		return WriteError(w, http.StatusBadRequest, "The request is missing required context. Submit a ticker first.")
	case errors.Is(err, models.ErrUpstreamNotFound):
		return WriteError(w, http.StatusNotFound, "No listing found for this ticker.")
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return WriteError(w, http.StatusBadGateway, "The quote provider is unavailable. Try again later.")
	case errors.Is(err, models.ErrUnsupportedFormat):
		return WriteError(w, http.StatusUnprocessableEntity, "Unsupported file format. Attach a PDF document.")
	case errors.Is(err, models.ErrDocumentUnreadable):
		return WriteError(w, http.StatusUnprocessableEntity, "The document could not be read. Try a different file.")
	case errors.Is(err, models.ErrProviderError):
		return WriteError(w, http.StatusBadGateway, "The analysis provider failed to respond. Try again later.")
	default:
		return WriteError(w, http.StatusInternalServerError, "Internal server error.")
	}
}
