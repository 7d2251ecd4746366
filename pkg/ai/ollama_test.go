package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	infraAI "github.com/felixgeelhaar/plancraft/pkg/ai"
	"github.com/felixgeelhaar/plancraft/pkg/domain/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_Basic(t *testing.T) {
	p := infraAI.NewOllamaProvider("")
	assert.Equal(t, "ollama:llama3", p.ID())
}

func TestOllamaProvider_Validation(t *testing.T) {
	p := infraAI.NewOllamaProvider("invalid model;")
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "hi"})
	assert.Error(t, err)
}

func TestOllamaProvider_NegativeTemperature(t *testing.T) {
	p := infraAI.NewOllamaProvider("llama3")
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Temperature: -1})
	assert.Error(t, err)
}

func TestOllamaProvider_Complete(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response":          "  {\"tasks\":[]}\n",
			"done":              true,
			"prompt_eval_count": 12,
			"eval_count":        4,
		})
	}))
	defer server.Close()

	p := infraAI.NewOllamaProviderWithClient("llama3", server.URL, server.Client())
	resp, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "plan", System: "sys", JSON: true, MaxTokens: 256})
	require.NoError(t, err)

	assert.Equal(t, `{"tasks":[]}`, resp.Text)
	assert.Equal(t, ai.TokenUsage{InputTokens: 12, OutputTokens: 4}, resp.Usage)
	assert.Equal(t, "json", body["format"])
	assert.Equal(t, false, body["stream"])
	assert.Equal(t, map[string]any{"num_predict": float64(256)}, body["options"])
}

func TestOllamaProvider_Complete_EstimatesUsage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"12345678","done":true}`))
	}))
	defer server.Close()

	p := infraAI.NewOllamaProviderWithClient("llama3", server.URL, server.Client())
	resp, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "abcdefgh"})
	require.NoError(t, err)
	assert.Equal(t, ai.TokenUsage{InputTokens: 2, OutputTokens: 2}, resp.Usage)
}

func TestOllamaProvider_Complete_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p := infraAI.NewOllamaProviderWithClient("llama3", server.URL, server.Client())
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "hi"})
	assert.ErrorContains(t, err, "status 404")
}

func TestOllamaProvider_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := infraAI.NewOllamaProvider("llama3")
	_, err := p.Complete(ctx, ai.CompletionRequest{Prompt: "hi"})
	assert.Error(t, err)
}
