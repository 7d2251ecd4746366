package ai

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
	"github.com/felixgeelhaar/plancraft/pkg/domain/ai"
	"golang.org/x/time/rate"
)

// MaxRetriesLimit bounds retries: a generation is attempted at most twice.
const MaxRetriesLimit = 1

// ResilienceConfig bounds a single completion.
type ResilienceConfig struct {
	// MaxRetries is the number of retries after the first attempt, clamped to [0, MaxRetriesLimit].
	MaxRetries int
	// RetryDelay is the initial backoff before a retry.
	RetryDelay time.Duration
	// Timeout caps the whole completion including the retry and any rate-limit wait.
	Timeout time.Duration
	// RequestsPerMinute throttles outbound calls; 0 disables throttling.
	RequestsPerMinute int
}

// DefaultResilienceConfig returns one retry after 1s within a 60s budget.
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		MaxRetries: 1,
		RetryDelay: time.Second,
		Timeout:    60 * time.Second,
	}
}

// ResilientProvider wraps a provider with timeout, retry and throttling.
type ResilientProvider struct {
	inner   ai.Provider
	config  ResilienceConfig
	limiter *rate.Limiter
}

func NewResilientProvider(inner ai.Provider) *ResilientProvider {
	return NewResilientProviderWithConfig(inner, DefaultResilienceConfig())
}

// NewResilientProviderWithConfig applies defaults for zero durations and clamps retries.
func NewResilientProviderWithConfig(inner ai.Provider, cfg ResilienceConfig) *ResilientProvider {
	defaults := DefaultResilienceConfig()
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaults.RetryDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.MaxRetries > MaxRetriesLimit {
		cfg.MaxRetries = MaxRetriesLimit
	}

	p := &ResilientProvider{inner: inner, config: cfg}
	if cfg.RequestsPerMinute > 0 {
		p.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	return p
}

func (p *ResilientProvider) ID() string {
	return p.inner.ID()
}

// Config returns the effective configuration after defaults and clamping.
func (p *ResilientProvider) Config() ResilienceConfig {
	return p.config
}

func (p *ResilientProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	r := retry.New[*ai.CompletionResponse](retry.Config{
		MaxAttempts:   p.config.MaxRetries + 1,
		InitialDelay:  p.config.RetryDelay,
		BackoffPolicy: retry.BackoffExponential,
	})

	t := timeout.New[*ai.CompletionResponse](timeout.Config{
		DefaultTimeout: p.config.Timeout,
	})

	return t.Execute(ctx, p.config.Timeout, func(ctx context.Context) (*ai.CompletionResponse, error) {
		return r.Do(ctx, func(ctx context.Context) (*ai.CompletionResponse, error) {
			if p.limiter != nil {
				if err := p.limiter.Wait(ctx); err != nil {
					return nil, err
				}
			}
			return p.inner.Complete(ctx, req)
		})
	})
}
