package interfaces

import (
	"context"

	"github.com/valora-ai/valora/internal/models"
)

// ChatService runs the valuation pipeline for one chat submission:
// request validation, prompt composition, and the single relay call to
// the configured LLM provider.
type ChatService interface {
	// Analyze validates the request, composes the valuation prompt and
	// relays it. Failures carry a models.PipelineError kind.
	Analyze(ctx context.Context, req *models.ValuationRequest) (*models.ValuationResponse, error)

	// HealthCheck verifies the underlying LLM provider is reachable.
	HealthCheck(ctx context.Context) error

	// GetMode reports the LLM operating mode.
	GetMode() LLMMode
}
