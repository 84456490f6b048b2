package models

// SubmissionState tracks one user submission through the analysis
// pipeline. Transitions are strictly sequential; a quote failure
// short-circuits before any prompt is composed or any LLM call is made.
type SubmissionState string

const (
	StateIdle             SubmissionState = "idle"
	StateValidatingTicker SubmissionState = "validating_ticker"
	StateFetchingQuote    SubmissionState = "fetching_quote"
	StateExtractingDoc    SubmissionState = "extracting_document"
	StateComposingPrompt  SubmissionState = "composing_prompt"
	StateCallingProvider  SubmissionState = "calling_provider"
	StateDone             SubmissionState = "done"
	StateFailed           SubmissionState = "failed"
)
