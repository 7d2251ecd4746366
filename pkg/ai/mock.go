package ai

import (
	"context"
	"sync/atomic"

	"github.com/felixgeelhaar/plancraft/pkg/domain/ai"
)

// MockProvider returns canned output. With no Text it answers with an
// empty JSON object, which the plan generator treats as unusable output.
type MockProvider struct {
	Model string
	Text  string
	Err   error

	calls atomic.Int32
}

func (m *MockProvider) ID() string {
	return "mock:" + m.Model
}

func (m *MockProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	m.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	text := m.Text
	if text == "" {
		text = "{}"
	}
	return &ai.CompletionResponse{
		Text:  text,
		Model: m.Model,
		Usage: ai.TokenUsage{InputTokens: len(req.Prompt) / 4, OutputTokens: len(text) / 4},
	}, nil
}

// Calls returns how many times Complete was invoked.
func (m *MockProvider) Calls() int {
	return int(m.calls.Load())
}
