package interfaces

import "context"

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"` // "system", "user", or "assistant"
	Content string `json:"content"`
}

// LLMMode indicates where completions are generated.
type LLMMode string

const (
	// LLMModeCloud indicates a hosted provider API.
	LLMModeCloud LLMMode = "cloud"
)

// LLMService generates chat completions from a hosted model provider.
// Implementations make exactly one attempt per call; retry policy, if any,
// belongs to the caller.
type LLMService interface {
	// Chat generates a completion for the conversation history, which must
	// be in chronological order.
	Chat(ctx context.Context, messages []Message) (string, error)

	// HealthCheck verifies the provider is reachable and configured.
	HealthCheck(ctx context.Context) error

	// GetMode returns the operational mode of the service.
	GetMode() LLMMode

	// Close releases resources held by the service.
	Close() error
}
