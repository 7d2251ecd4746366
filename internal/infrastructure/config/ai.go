package config

import (
	"fmt"
	"time"

	infraai "github.com/felixgeelhaar/plancraft/pkg/ai"
	"github.com/felixgeelhaar/plancraft/pkg/storage"
)

const aiConfigFile = "ai.yaml"

// AIConfig stores the plan backend selection and its resilience settings.
// Zero values fall back to the provider defaults; MaxRetries is a pointer so
// that an explicit 0 disables the retry.
type AIConfig struct {
	Provider          string `yaml:"provider"`
	Model             string `yaml:"model"`
	MaxRetries        *int   `yaml:"max_retries,omitempty"`
	RetryDelayMs      int    `yaml:"retry_delay_ms,omitempty"`
	TimeoutSec        int    `yaml:"timeout_sec,omitempty"`
	RequestsPerMinute int    `yaml:"requests_per_minute,omitempty"`
}

// Validate rejects unknown providers and negative settings.
func (c *AIConfig) Validate() error {
	if c.Provider != "" {
		known := false
		for _, p := range infraai.SupportedProviders() {
			if p == c.Provider {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unsupported AI provider %q (supported: %v)", c.Provider, infraai.SupportedProviders())
		}
	}
	if c.MaxRetries != nil && (*c.MaxRetries < 0 || *c.MaxRetries > infraai.MaxRetriesLimit) {
		return fmt.Errorf("max_retries must be between 0 and %d", infraai.MaxRetriesLimit)
	}
	if c.RetryDelayMs < 0 || c.TimeoutSec < 0 || c.RequestsPerMinute < 0 {
		return fmt.Errorf("retry_delay_ms, timeout_sec and requests_per_minute must not be negative")
	}
	return nil
}

// Resilience merges the configured values over the provider defaults.
func (c *AIConfig) Resilience() infraai.ResilienceConfig {
	rc := infraai.DefaultResilienceConfig()
	if c == nil {
		return rc
	}
	if c.MaxRetries != nil {
		rc.MaxRetries = *c.MaxRetries
	}
	if c.RetryDelayMs > 0 {
		rc.RetryDelay = time.Duration(c.RetryDelayMs) * time.Millisecond
	}
	if c.TimeoutSec > 0 {
		rc.Timeout = time.Duration(c.TimeoutSec) * time.Second
	}
	rc.RequestsPerMinute = c.RequestsPerMinute
	return rc
}

// LoadAIConfig reads <root>/.plancraft/ai.yaml. A missing file yields nil, nil.
func LoadAIConfig(root string) (*AIConfig, error) {
	var cfg AIConfig
	found, err := storage.NewWorkspace(root).LoadYAML(aiConfigFile, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load AI config: %w", err)
	}
	if !found {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI config: %w", err)
	}
	return &cfg, nil
}

func SaveAIConfig(root string, cfg *AIConfig) error {
	if cfg == nil {
		return fmt.Errorf("AI config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return storage.NewWorkspace(root).SaveYAML(aiConfigFile, cfg)
}
