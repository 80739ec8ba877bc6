package service

import (
	"context"
)

// CompletionProvider is the interface for text-completion providers
type CompletionProvider interface {
	// Complete sends a single prompt and returns the provider's candidates
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)

	// IsEnabled returns whether the provider is configured and ready
	IsEnabled() bool
}

// CompletionRequest is a provider independent completion request
type CompletionRequest struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// CompletionResult holds the candidates returned for one request
type CompletionResult struct {
	Model       string
	Candidates  []string
	TotalTokens int
}

// First returns the text of the first candidate
func (r *CompletionResult) First() (string, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return "", false
	}
	return r.Candidates[0], true
}

// Ensure OpenAIClient implements CompletionProvider
var _ CompletionProvider = (*OpenAIClient)(nil)
