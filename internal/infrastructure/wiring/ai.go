package wiring

import (
	"github.com/felixgeelhaar/plancraft/internal/infrastructure/config"
	infraai "github.com/felixgeelhaar/plancraft/pkg/ai"
)

const defaultProvider = "gemini"

// LoadAIProvider builds the resilient plan backend configured for root.
// An empty model lets the provider pick its default.
func LoadAIProvider(root string) (*infraai.ResilientProvider, error) {
	cfg, err := config.LoadAIConfig(root)
	if err != nil {
		return nil, err
	}

	providerName := defaultProvider
	modelName := ""
	if cfg != nil {
		if cfg.Provider != "" {
			providerName = cfg.Provider
		}
		modelName = cfg.Model
	}

	baseProvider, err := infraai.GetDefaultProvider(providerName, modelName)
	if err != nil {
		return nil, err
	}

	return infraai.NewResilientProviderWithConfig(baseProvider, cfg.Resilience()), nil
}
