package models

import (
	"errors"
	"fmt"
)

// Failure kinds for one valuation submission. Every failure is scoped to a
// single in-flight request; none is retried and none is fatal to the
// process.
var (
	// ErrTickerNotRecognized means the input failed local shape validation
	// and never reached the network.
	ErrTickerNotRecognized = errors.New("ticker not recognized")

	// ErrUpstreamNotFound means the quote provider resolved no match.
	ErrUpstreamNotFound = errors.New("ticker not found at quote provider")

	// ErrUpstreamUnavailable means the quote provider or the network failed.
	ErrUpstreamUnavailable = errors.New("quote provider unavailable")

	// ErrDocumentUnreadable means text extraction from the uploaded
	// document failed.
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrUnsupportedFormat means the uploaded document is not a recognized
	// document type.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrProviderError means the LLM call failed.
	ErrProviderError = errors.New("analysis provider error")

	// ErrMissingContext means the chat was invoked without a resolved
	// stock snapshot.
	ErrMissingContext = errors.New("missing stock context")
)

// PipelineError wraps one of the sentinel failure kinds with the detail of
// what actually went wrong. Handlers match on Kind via errors.Is.
type PipelineError struct {
	Kind   error
	Detail string
}

func (e *PipelineError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Detail)
}

func (e *PipelineError) Unwrap() error { return e.Kind }

// NewPipelineError builds a PipelineError for the given kind.
func NewPipelineError(kind error, format string, args ...interface{}) *PipelineError {
	return &PipelineError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
