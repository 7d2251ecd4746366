package wiring

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/felixgeelhaar/plancraft/pkg/ai"
	"github.com/felixgeelhaar/plancraft/pkg/application"
	domainai "github.com/felixgeelhaar/plancraft/pkg/domain/ai"
)

// AppServices exposes the application layer services wired together with a workspace.
type AppServices struct {
	Workspace *Workspace
	Provider  domainai.Provider
	Generator *application.PlanGenerator
	Projects  *application.ProjectService
	Tasks     *application.TaskService
}

// BuildAppServices wires the services for a repo root using the configured AI provider.
func BuildAppServices(root string, logger *zap.Logger) (*AppServices, error) {
	return BuildAppServicesWithProvider(root, logger, func(root string) (domainai.Provider, error) {
		return LoadAIProvider(root)
	})
}

// BuildAppServicesWithProvider allows callers to supply a custom AI provider resolver.
// A resolver failure falls back to the mock provider, so plan generation still
// produces fallback plans; the failure is returned alongside the services.
func BuildAppServicesWithProvider(root string, logger *zap.Logger, resolver func(string) (domainai.Provider, error)) (*AppServices, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	workspace, err := OpenWorkspace(root)
	if err != nil {
		return nil, err
	}

	provider, err := resolver(root)
	var loadErr error
	if err != nil {
		loadErr = fmt.Errorf("AI provider config fallback: %w", err)
		logger.Warn("AI provider unavailable, plans will use the fallback", zap.Error(err))
		provider = ai.NewResilientProvider(&ai.MockProvider{Model: "offline"})
	}

	generator := application.NewPlanGenerator(provider, application.WithLogger(logger.Named("planner")))

	return &AppServices{
		Workspace: workspace,
		Provider:  provider,
		Generator: generator,
		Projects:  application.NewProjectService(workspace.Repo, generator, logger.Named("projects")),
		Tasks:     application.NewTaskService(workspace.Repo, logger.Named("tasks")),
	}, loadErr
}

// Close releases the workspace resources.
func (s *AppServices) Close() error {
	if s == nil {
		return nil
	}
	return s.Workspace.Close()
}
