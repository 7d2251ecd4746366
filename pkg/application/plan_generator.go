package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/felixgeelhaar/plancraft/pkg/domain/ai"
	"github.com/felixgeelhaar/plancraft/pkg/domain/planning"
	"github.com/felixgeelhaar/plancraft/pkg/domain/project"
)

// Failure categories absorbed by the generator.
var (
	ErrTransport = errors.New("plan backend unavailable")
	ErrOutput    = errors.New("plan backend returned unusable output")
)

const (
	planTemperature = 0.7
	planMaxTokens   = 2048
)

// Generation is the outcome of one plan generation.
// Cause is nil unless Source is the fallback.
type Generation struct {
	Plan   *planning.ProjectPlan
	Source project.PlanSource
	Cause  error
}

// PlanGenerator turns a project intake into a project plan using a text backend.
type PlanGenerator struct {
	provider   ai.Provider
	logger     *zap.Logger
	extractors []Extractor
}

// PlanGeneratorOption configures a PlanGenerator.
type PlanGeneratorOption func(*PlanGenerator)

// WithLogger sets the logger used for fallback warnings.
func WithLogger(logger *zap.Logger) PlanGeneratorOption {
	return func(g *PlanGenerator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithExtractors replaces the extraction strategies.
func WithExtractors(extractors ...Extractor) PlanGeneratorOption {
	return func(g *PlanGenerator) {
		if len(extractors) > 0 {
			g.extractors = extractors
		}
	}
}

func NewPlanGenerator(provider ai.Provider, opts ...PlanGeneratorOption) *PlanGenerator {
	g := &PlanGenerator{
		provider:   provider,
		logger:     zap.NewNop(),
		extractors: DefaultExtractors(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a complete plan for the intake. It never fails: any backend
// or output problem is replaced by planning.FallbackPlan.
func (g *PlanGenerator) Generate(ctx context.Context, in planning.ProjectIntake) *planning.ProjectPlan {
	return g.GenerateDetailed(ctx, in).Plan
}

// GenerateDetailed behaves like Generate and also reports where the plan came from.
func (g *PlanGenerator) GenerateDetailed(ctx context.Context, in planning.ProjectIntake) Generation {
	plan, err := g.generate(ctx, in)
	if err == nil {
		return Generation{Plan: plan, Source: project.PlanSourceGenerated}
	}

	category := "output"
	if errors.Is(err, ErrTransport) {
		category = "transport"
	}
	g.logger.Warn("plan generation failed, using fallback plan",
		zap.String("category", category),
		zap.String("provider", g.providerID()),
		zap.String("project_type", in.ProjectType),
		zap.Error(err),
	)

	return Generation{
		Plan:   planning.FallbackPlan(in),
		Source: project.PlanSourceFallback,
		Cause:  err,
	}
}

func (g *PlanGenerator) generate(ctx context.Context, in planning.ProjectIntake) (*planning.ProjectPlan, error) {
	if g.provider == nil {
		return nil, fmt.Errorf("%w: no AI provider configured", ErrTransport)
	}

	resp, err := g.provider.Complete(ctx, ai.CompletionRequest{
		Prompt:      BuildPlanPrompt(in),
		System:      planSystemPrompt,
		Temperature: planTemperature,
		MaxTokens:   planMaxTokens,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrTransport)
	}

	candidate, strategy := extractCandidate(resp.Text, g.extractors)
	plan, err := decodePlan(candidate)
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %w", ErrOutput, strategy, err)
	}

	g.logger.Debug("plan generated",
		zap.String("provider", g.providerID()),
		zap.String("model", resp.Model),
		zap.String("extraction", strategy),
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
		zap.Int("tasks", len(plan.Tasks)),
	)
	return plan, nil
}

func (g *PlanGenerator) providerID() string {
	if g.provider == nil {
		return "none"
	}
	return g.provider.ID()
}
