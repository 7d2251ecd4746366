package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/felixgeelhaar/plancraft/pkg/domain/planning"
	"github.com/felixgeelhaar/plancraft/pkg/domain/project"
)

// CreateProjectInput is the questionnaire payload for a new project.
type CreateProjectInput struct {
	Intake     planning.ProjectIntake
	ClientName string
	DueDate    *time.Time
}

// ProjectService creates projects from generated plans and reads them back.
type ProjectService struct {
	repo      project.Repository
	generator *PlanGenerator
	logger    *zap.Logger
}

func NewProjectService(repo project.Repository, generator *PlanGenerator, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{repo: repo, generator: generator, logger: logger}
}

// CreateProject generates a plan for the intake and persists the project with
// its tasks and resources. Task and resource inserts are best-effort: a
// failure is logged and the project is still returned.
func (s *ProjectService) CreateProject(ctx context.Context, userID string, input CreateProjectInput) (*project.Project, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, project.ErrNotAuthenticated
	}

	intake := input.Intake
	if intake.ExperienceLevel == "" {
		intake.ExperienceLevel = planning.LevelIntermediate
	}
	if err := intake.Validate(); err != nil {
		return nil, err
	}

	gen := s.generator.GenerateDetailed(ctx, intake)
	plan := gen.Plan

	techStack := make([]string, 0, 1+len(plan.TechRecommendations))
	techStack = append(techStack, intake.TechStack)
	techStack = append(techStack, plan.TechRecommendations...)

	p := &project.Project{
		UserID:          userID,
		Name:            intake.Name,
		Description:     intake.Description,
		ClientName:      input.ClientName,
		ProjectType:     intake.ProjectType,
		TechStack:       techStack,
		ExperienceLevel: intake.ExperienceLevel,
		Status:          project.StatusPlanning,
		DueDate:         input.DueDate,
		EstimatedTime:   plan.EstimatedTime,
		AIBreakdown:     plan.Breakdown,
		PlanSource:      gen.Source,
	}
	if err := s.repo.CreateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	log := s.logger.With(zap.String("project_id", p.ID), zap.String("user_id", userID))

	if tasks := project.TasksFromPlan(p.ID, userID, plan); len(tasks) > 0 {
		if err := s.repo.CreateTasks(ctx, tasks); err != nil {
			log.Error("failed to store plan tasks", zap.Int("count", len(tasks)), zap.Error(err))
		}
	}
	if resources := project.ResourcesFromPlan(p.ID, plan); len(resources) > 0 {
		if err := s.repo.CreateResources(ctx, resources); err != nil {
			log.Error("failed to store plan resources", zap.Int("count", len(resources)), zap.Error(err))
		}
	}

	log.Info("project created",
		zap.String("plan_source", string(gen.Source)),
		zap.Int("tasks", len(plan.Tasks)),
	)
	return p, nil
}

// ListProjects returns the user's projects, newest first.
func (s *ProjectService) ListProjects(ctx context.Context, userID string) ([]project.Project, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, project.ErrNotAuthenticated
	}
	projects, err := s.repo.ListProjects(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project with its tasks and resources.
func (s *ProjectService) GetProject(ctx context.Context, id string) (*project.Details, error) {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListTasks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	resources, err := s.repo.ListResources(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return &project.Details{Project: p, Tasks: tasks, Resources: resources}, nil
}
