package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/felixgeelhaar/plancraft/pkg/domain/ai"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider talks to Google's Gemini API through the GenAI SDK.
// The SDK client is built on first use so a missing key surfaces as a
// Complete error rather than a construction failure.
type GeminiProvider struct {
	Model  string
	APIKey string

	baseURL    string       // For testing - overrides the Gemini endpoint
	httpClient *http.Client // For testing - defaults to the SDK's client

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGeminiProvider(model string, apiKey string) *GeminiProvider {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{
		Model:  model,
		APIKey: apiKey,
	}
}

// NewGeminiProviderWithClient creates a provider with custom HTTP client and base URL (for testing).
func NewGeminiProviderWithClient(model, apiKey, baseURL string, client *http.Client) *GeminiProvider {
	p := NewGeminiProvider(model, apiKey)
	p.baseURL = baseURL
	p.httpClient = client
	return p
}

func (p *GeminiProvider) ID() string {
	return "gemini:" + p.Model
}

func (p *GeminiProvider) sdk(ctx context.Context) (*genai.Client, error) {
	p.once.Do(func() {
		cfg := &genai.ClientConfig{
			APIKey:     p.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: p.httpClient,
		}
		if p.baseURL != "" {
			cfg.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimSuffix(p.baseURL, "/") + "/"}
		}
		p.client, p.initErr = genai.NewClient(ctx, cfg)
	})
	return p.client, p.initErr
}

func (p *GeminiProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if p.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key not provided (set GEMINI_API_KEY)")
	}

	client, err := p.sdk(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(req.Temperature)
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	result, err := client.Models.GenerateContent(ctx, p.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, fmt.Errorf("Gemini generate failed: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("Gemini API returned no candidates")
	}

	resp := &ai.CompletionResponse{
		Text:  result.Text(),
		Model: p.Model,
	}
	if result.UsageMetadata != nil {
		resp.Usage = ai.TokenUsage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
		}
	}
	return resp, nil
}
