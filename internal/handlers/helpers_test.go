package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/valora-ai/valora/internal/models"
)

func TestWritePipelineErrorEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ticker not recognized", models.NewPipelineError(models.ErrTickerNotRecognized, "bad"), http.StatusBadRequest},
		{"missing context", models.NewPipelineError(models.ErrMissingContext, "no snapshot"), http.StatusBadRequest},
		{"upstream not found", models.NewPipelineError(models.ErrUpstreamNotFound, "ZZZZ9"), http.StatusNotFound},
		{"upstream unavailable", models.NewPipelineError(models.ErrUpstreamUnavailable, "down"), http.StatusBadGateway},
		{"unsupported format", models.NewPipelineError(models.ErrUnsupportedFormat, "docx"), http.StatusUnprocessableEntity},
		{"document unreadable", models.NewPipelineError(models.ErrDocumentUnreadable, "garbled"), http.StatusUnprocessableEntity},
		{"provider error", models.NewPipelineError(models.ErrProviderError, "500"), http.StatusBadGateway},
		{"unknown error", http.ErrBodyNotAllowed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WritePipelineError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			// Every error body carries exactly the {"message": ...}
			// envelope the UI reads
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if body["message"] == "" {
				t.Errorf("error body = %v, want a non-empty 'message' field", body)
			}
			if len(body) != 1 {
				t.Errorf("error body = %v, want only the 'message' field", body)
			}
		})
	}
}
