package models

// Completion is a backend-neutral generation result.
// Fields other than Text are optional when a backend does not report them.
type Completion struct {
	// Text is the raw generated text, before any sanitizing.
	Text string

	// Model name reported by the backend
	Model string

	FinishReason string

	// Token accounting
	PromptTokens     int64
	CompletionTokens int64
}
