package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/valora-ai/valora/internal/common"
	"github.com/valora-ai/valora/internal/interfaces"
	"github.com/valora-ai/valora/internal/models"
)

// fakeLLM records the messages it receives and returns a canned reply.
type fakeLLM struct {
	reply    string
	err      error
	calls    int
	messages []interfaces.Message
}

func (f *fakeLLM) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	f.calls++
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) HealthCheck(ctx context.Context) error { return f.err }
func (f *fakeLLM) GetMode() interfaces.LLMMode           { return interfaces.LLMModeCloud }
func (f *fakeLLM) Close() error                          { return nil }

func validRequest() *models.ValuationRequest {
	sector := "Energy"
	price := 38.0
	return &models.ValuationRequest{
		Message: "Analise PETR4 por favor",
		Persona: models.PersonaRealistic,
		StockData: &models.StockSnapshot{
			Ticker:        "PETR4",
			CompanyName:   "Petroleo Brasileiro S.A.",
			Sector:        &sector,
			Price:         &price,
			EstimatedWACC: 0.10,
		},
	}
}

func TestAnalyze(t *testing.T) {
	llm := &fakeLLM{reply: "A acao esta subavaliada."}
	svc := NewChatService(llm, common.GetLogger())

	resp, err := svc.Analyze(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if resp.Message != llm.reply {
		t.Errorf("Message = %q, want the provider reply unmodified", resp.Message)
	}
	if llm.calls != 1 {
		t.Errorf("provider called %d times, want exactly 1", llm.calls)
	}

	// System message carries the composed instructions
	if len(llm.messages) < 2 || llm.messages[0].Role != "system" {
		t.Fatalf("expected system message first, got %+v", llm.messages)
	}
	if !strings.Contains(llm.messages[0].Content, "Ticker: PETR4") {
		t.Error("system message missing the snapshot context")
	}
	if !strings.Contains(llm.messages[0].Content, "Discount rate: 13.5%") {
		t.Error("system message missing realistic-persona assumptions")
	}
	if last := llm.messages[len(llm.messages)-1]; last.Role != "user" || last.Content != "Analise PETR4 por favor" {
		t.Errorf("last message = %+v, want the user's text", last)
	}
}

func TestAnalyzeThreadsHistory(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	svc := NewChatService(llm, common.GetLogger())

	req := validRequest()
	req.History = []models.ChatMessage{
		{ID: 1, Sender: "user", Text: "Oi"},
		{ID: 2, Sender: "bot", Text: "Ola, qual ticker?"},
	}

	if _, err := svc.Analyze(context.Background(), req); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// system + 2 history turns + current message
	if len(llm.messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(llm.messages))
	}
	if llm.messages[1].Role != "user" || llm.messages[2].Role != "assistant" {
		t.Errorf("history roles wrong: %+v", llm.messages[1:3])
	}
}

func TestAnalyzeFinancialSectorUsesDDM(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	svc := NewChatService(llm, common.GetLogger())

	req := validRequest()
	sector := "Financial Services"
	req.StockData.Sector = &sector
	req.Persona = models.PersonaConservative

	if _, err := svc.Analyze(context.Background(), req); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	system := llm.messages[0].Content
	if !strings.Contains(system, "Gordon growth formula") {
		t.Error("financial-sector request must compose dividend-discount steps")
	}
	if !strings.Contains(system, "Perpetual dividend growth rate: 2.0%") {
		t.Error("conservative persona must yield 2.0% dividend growth")
	}
}

func TestAnalyzeMissingSnapshot(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	svc := NewChatService(llm, common.GetLogger())

	req := validRequest()
	req.StockData = nil

	_, err := svc.Analyze(context.Background(), req)
	if !errors.Is(err, models.ErrMissingContext) {
		t.Fatalf("error = %v, want ErrMissingContext", err)
	}
	if llm.calls != 0 {
		t.Error("provider must never be called without a snapshot")
	}
}

func TestAnalyzeMalformedSnapshotTicker(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	svc := NewChatService(llm, common.GetLogger())

	// A direct caller can attach a hand-built snapshot; the listing-code
	// shape is re-checked before any provider traffic.
	for _, ticker := range []string{"AB1", "PETR", "PETR444", ""} {
		req := validRequest()
		req.StockData.Ticker = ticker

		_, err := svc.Analyze(context.Background(), req)
		if !errors.Is(err, models.ErrTickerNotRecognized) {
			t.Errorf("%q: error = %v, want ErrTickerNotRecognized", ticker, err)
		}
	}

	if llm.calls != 0 {
		t.Error("provider must never be called for a malformed snapshot ticker")
	}
}

func TestAnalyzeInvalidRequest(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	svc := NewChatService(llm, common.GetLogger())

	tests := []struct {
		name   string
		mutate func(*models.ValuationRequest)
	}{
		{"empty message", func(r *models.ValuationRequest) { r.Message = "" }},
		{"empty persona", func(r *models.ValuationRequest) { r.Persona = "" }},
		{"unknown persona", func(r *models.ValuationRequest) { r.Persona = "speculative" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := svc.Analyze(context.Background(), req)
			if !errors.Is(err, models.ErrMissingContext) {
				t.Fatalf("error = %v, want ErrMissingContext", err)
			}
		})
	}

	if llm.calls != 0 {
		t.Error("provider must never be called for invalid requests")
	}
}

func TestAnalyzeProviderFailure(t *testing.T) {
	llm := &fakeLLM{err: fmt.Errorf("upstream 500")}
	svc := NewChatService(llm, common.GetLogger())

	_, err := svc.Analyze(context.Background(), validRequest())
	if !errors.Is(err, models.ErrProviderError) {
		t.Fatalf("error = %v, want ErrProviderError", err)
	}
	if llm.calls != 1 {
		t.Errorf("provider called %d times, want exactly 1 (no retries)", llm.calls)
	}
}

func TestAnalyzeEmbedsDocument(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	svc := NewChatService(llm, common.GetLogger())

	req := validRequest()
	req.PDFText = "Despesa financeira: R$ 12.000.000"

	if _, err := svc.Analyze(context.Background(), req); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !strings.Contains(llm.messages[0].Content, req.PDFText) {
		t.Error("system message missing the extracted document text")
	}
}
