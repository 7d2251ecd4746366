package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	infraAI "github.com/felixgeelhaar/plancraft/pkg/ai"
	"github.com/felixgeelhaar/plancraft/pkg/domain/ai"
)

func TestAnthropicProvider_ID(t *testing.T) {
	p := infraAI.NewAnthropicProvider("claude-3-haiku", "test-key")
	if p.ID() != "anthropic:claude-3-haiku" {
		t.Errorf("expected ID 'anthropic:claude-3-haiku', got %q", p.ID())
	}
}

func TestAnthropicProvider_DefaultModel(t *testing.T) {
	p := infraAI.NewAnthropicProvider("", "test-key")
	if p.ID() != "anthropic:claude-3-5-sonnet-20240620" {
		t.Errorf("expected default model, got %q", p.ID())
	}
}

func TestAnthropicProvider_Complete_NoAPIKey(t *testing.T) {
	p := infraAI.NewAnthropicProvider("claude-3-haiku", "")
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "Hello"})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestAnthropicProvider_Complete_Success(t *testing.T) {
	var receivedBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("expected x-api-key 'test-key', got %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != "2023-06-01" {
			t.Errorf("expected anthropic-version '2023-06-01', got %q", r.Header.Get("anthropic-version"))
		}

		_ = json.NewDecoder(r.Body).Decode(&receivedBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{
				{"text": "Hello from Anthropic!"},
			},
			"usage": map[string]int{
				"input_tokens":  15,
				"output_tokens": 8,
			},
		})
	}))
	defer server.Close()

	p := infraAI.NewAnthropicProviderWithClient("claude-3-haiku", "test-key", server.URL, server.Client())
	resp, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "Hello", System: "plan"})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if resp.Text != "Hello from Anthropic!" {
		t.Errorf("unexpected text %q", resp.Text)
	}
	if resp.Usage.InputTokens != 15 || resp.Usage.OutputTokens != 8 {
		t.Errorf("unexpected usage %+v", resp.Usage)
	}
	if receivedBody["max_tokens"] != float64(4096) {
		t.Errorf("expected default max_tokens 4096, got %v", receivedBody["max_tokens"])
	}
	if receivedBody["system"] != "plan" {
		t.Errorf("expected system 'plan', got %v", receivedBody["system"])
	}
}

func TestAnthropicProvider_Complete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := infraAI.NewAnthropicProviderWithClient("", "test-key", server.URL, server.Client())
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "Hello"})
	if err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestAnthropicProvider_Complete_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	p := infraAI.NewAnthropicProviderWithClient("", "test-key", server.URL, server.Client())
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "Hello"})
	if err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestAnthropicProvider_Complete_ContextCancelled(t *testing.T) {
	p := infraAI.NewAnthropicProvider("claude-3-haiku", "test-key")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Complete(ctx, ai.CompletionRequest{Prompt: "Hello"})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
