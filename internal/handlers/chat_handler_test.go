package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/valora-ai/valora/internal/interfaces"
	"github.com/valora-ai/valora/internal/models"
)

// fakeChatService returns a canned analysis or error.
type fakeChatService struct {
	resp  *models.ValuationResponse
	err   error
	calls int
}

func (f *fakeChatService) Analyze(ctx context.Context, req *models.ValuationRequest) (*models.ValuationResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeChatService) HealthCheck(ctx context.Context) error { return nil }
func (f *fakeChatService) GetMode() interfaces.LLMMode           { return interfaces.LLMModeCloud }

func chatBody(t *testing.T) *strings.Reader {
	t.Helper()
	body, err := json.Marshal(models.ValuationRequest{
		Message: "Analise PETR4",
		Persona: models.PersonaRealistic,
		StockData: &models.StockSnapshot{
			Ticker: "PETR4",
		},
	})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	return strings.NewReader(string(body))
}

func TestChatHandler(t *testing.T) {
	svc := &fakeChatService{resp: &models.ValuationResponse{Message: "analise completa"}}
	handler := NewChatHandler(svc)

	req := httptest.NewRequest("POST", "/api/chat", chatBody(t))
	rec := httptest.NewRecorder()
	handler.ChatHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp models.ValuationResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "analise completa" {
		t.Errorf("Message = %q, want the relayed analysis", resp.Message)
	}
}

func TestChatHandlerBadJSON(t *testing.T) {
	svc := &fakeChatService{}
	handler := NewChatHandler(svc)

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ChatHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if svc.calls != 0 {
		t.Error("service must not run for malformed payloads")
	}
}

func TestChatHandlerMissingContext(t *testing.T) {
	svc := &fakeChatService{
		err: models.NewPipelineError(models.ErrMissingContext, "no snapshot"),
	}
	handler := NewChatHandler(svc)

	req := httptest.NewRequest("POST", "/api/chat", chatBody(t))
	rec := httptest.NewRecorder()
	handler.ChatHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestChatHandlerProviderFailure(t *testing.T) {
	svc := &fakeChatService{
		err: models.NewPipelineError(models.ErrProviderError, "model overloaded"),
	}
	handler := NewChatHandler(svc)

	req := httptest.NewRequest("POST", "/api/chat", chatBody(t))
	rec := httptest.NewRecorder()
	handler.ChatHandler(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}
