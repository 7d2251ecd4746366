package ai

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/plancraft/pkg/domain/ai"
)

// Environment variables read when providers are wired.
const (
	EnvProvider     = "PLANCRAFT_AI_PROVIDER"
	EnvModel        = "PLANCRAFT_AI_MODEL"
	EnvGeminiKey    = "GEMINI_API_KEY"
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
)

// SupportedProviders lists the provider names NewProvider accepts.
func SupportedProviders() []string {
	return []string{"gemini", "openai", "anthropic", "ollama", "mock"}
}

// NewProvider builds a provider by name. API keys are read from the
// environment here, once, and passed to the provider explicitly.
func NewProvider(providerName string, modelName string) (ai.Provider, error) {
	switch providerName {
	case "gemini", "":
		return NewGeminiProvider(modelName, os.Getenv(EnvGeminiKey)), nil
	case "openai":
		return NewOpenAIProvider(modelName, os.Getenv(EnvOpenAIKey)), nil
	case "anthropic":
		return NewAnthropicProvider(modelName, os.Getenv(EnvAnthropicKey)), nil
	case "ollama":
		return NewOllamaProvider(modelName), nil
	case "mock":
		return &MockProvider{Model: modelName}, nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", providerName)
	}
}

// GetDefaultProvider applies PLANCRAFT_AI_PROVIDER / PLANCRAFT_AI_MODEL overrides.
func GetDefaultProvider(providerName, modelName string) (ai.Provider, error) {
	if envProvider := os.Getenv(EnvProvider); envProvider != "" {
		providerName = envProvider
	}
	if envModel := os.Getenv(EnvModel); envModel != "" {
		modelName = envModel
	}

	return NewProvider(providerName, modelName)
}
