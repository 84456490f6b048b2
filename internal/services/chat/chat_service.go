package chat

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/valora-ai/valora/internal/common"
	"github.com/valora-ai/valora/internal/interfaces"
	"github.com/valora-ai/valora/internal/models"
	"github.com/valora-ai/valora/internal/services/valuation"
)

// ChatService runs the valuation pipeline for each chat submission.
type ChatService struct {
	llmService interfaces.LLMService
	logger     arbor.ILogger
	validate   *validator.Validate
}

// Compile-time interface assertion
var _ interfaces.ChatService = (*ChatService)(nil)

// NewChatService creates a new chat pipeline service.
func NewChatService(llmService interfaces.LLMService, logger arbor.ILogger) *ChatService {
	return &ChatService{
		llmService: llmService,
		logger:     logger,
		validate:   validator.New(),
	}
}

// Analyze validates the request, composes the valuation prompt and relays
// it to the configured provider. One provider attempt per submission, no
// retries. The quote fetch happens before this call; a request without
// its snapshot context fails locally with ErrMissingContext and never
// reaches the provider.
func (s *ChatService) Analyze(ctx context.Context, req *models.ValuationRequest) (*models.ValuationResponse, error) {
	state := models.StateValidatingTicker
	s.logState(state, req)

	if err := s.validate.Struct(req); err != nil {
		return nil, models.NewPipelineError(models.ErrMissingContext, "invalid request: %v", err)
	}
	if req.StockData == nil {
		return nil, models.NewPipelineError(models.ErrMissingContext, "no stock snapshot attached to request")
	}
	// The snapshot normally comes from the stock endpoint, but a direct
	// caller can attach anything. Re-check the listing-code shape so a
	// fabricated snapshot never reaches the provider.
	if ticker := common.ParseTicker(req.StockData.Ticker); !ticker.Valid() {
		return nil, models.NewPipelineError(models.ErrTickerNotRecognized, "%q", req.StockData.Ticker)
	}

	state = models.StateComposingPrompt
	s.logState(state, req)

	methodology := valuation.SelectMethodology(req.StockData.Sector)
	assumptions, err := valuation.ForPersona(req.Persona)
	if err != nil {
		return nil, models.NewPipelineError(models.ErrMissingContext, "%v", err)
	}

	var doc *interfaces.ExtractedText
	if strings.TrimSpace(req.PDFText) != "" {
		doc = &interfaces.ExtractedText{Text: req.PDFText}
	}

	prompt := valuation.Compose(req.StockData, req.Persona, assumptions, methodology, doc)

	s.logger.Info().
		Str("ticker", req.StockData.Ticker).
		Str("persona", string(req.Persona)).
		Str("methodology", string(methodology)).
		Bool("has_document", doc != nil).
		Int("prompt_length", len(prompt)).
		Msg("Valuation prompt composed")

	state = models.StateCallingProvider
	s.logState(state, req)

	messages := buildMessages(prompt, req.History, req.Message)

	startTime := time.Now()
	analysis, err := s.llmService.Chat(ctx, messages)
	if err != nil {
		s.logState(models.StateFailed, req)
		s.logger.Error().
			Err(err).
			Str("ticker", req.StockData.Ticker).
			Msg("LLM relay failed")
		return nil, models.NewPipelineError(models.ErrProviderError, "%v", err)
	}

	s.logState(models.StateDone, req)
	s.logger.Info().
		Str("ticker", req.StockData.Ticker).
		Int("response_length", len(analysis)).
		Dur("duration", time.Since(startTime)).
		Msg("Valuation analysis completed")

	return &models.ValuationResponse{Message: analysis}, nil
}

// HealthCheck verifies the underlying LLM provider is reachable.
func (s *ChatService) HealthCheck(ctx context.Context) error {
	return s.llmService.HealthCheck(ctx)
}

// GetMode reports the LLM operating mode.
func (s *ChatService) GetMode() interfaces.LLMMode {
	return s.llmService.GetMode()
}

func (s *ChatService) logState(state models.SubmissionState, req *models.ValuationRequest) {
	event := s.logger.Debug().Str("state", string(state))
	if req != nil && req.StockData != nil {
		event = event.Str("ticker", req.StockData.Ticker)
	}
	event.Msg("Pipeline state transition")
}

// buildMessages threads the chat transcript into the provider call: the
// composed instructions as the system message, prior turns in order, and
// the user's current message last.
func buildMessages(prompt string, history []models.ChatMessage, userMessage string) []interfaces.Message {
	messages := make([]interfaces.Message, 0, len(history)+2)
	messages = append(messages, interfaces.Message{Role: "system", Content: prompt})

	for _, m := range history {
		role := "user"
		if m.Sender == "bot" {
			role = "assistant"
		}
		messages = append(messages, interfaces.Message{Role: role, Content: m.Text})
	}

	messages = append(messages, interfaces.Message{Role: "user", Content: userMessage})
	return messages
}
