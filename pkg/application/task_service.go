package application

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/felixgeelhaar/plancraft/pkg/domain/planning"
	"github.com/felixgeelhaar/plancraft/pkg/domain/project"
)

// TaskService manages tasks on a project board.
type TaskService struct {
	repo   project.Repository
	logger *zap.Logger
}

func NewTaskService(repo project.Repository, logger *zap.Logger) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{repo: repo, logger: logger}
}

// CreateTask adds a manual task to a project. An empty priority means Medium.
func (s *TaskService) CreateTask(ctx context.Context, userID, projectID, name, description string, priority planning.TaskPriority) (*project.Task, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, project.ErrNotAuthenticated
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", project.ErrInvalidTask)
	}
	if priority == "" {
		priority = planning.DefaultTaskPriority()
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", project.ErrInvalidTask, priority)
	}

	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	tasks := []project.Task{{
		ProjectID:   projectID,
		Name:        name,
		Description: description,
		Status:      project.TaskToDo,
		Priority:    priority,
		AssignedTo:  userID,
	}}
	if err := s.repo.CreateTasks(ctx, tasks); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &tasks[0], nil
}

// UpdateTaskStatus moves a task along the board workflow.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID string, status project.TaskStatus) (*project.Task, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	sm, err := project.NewTaskStateMachine(task.ID, task.Status)
	if err != nil {
		return nil, err
	}
	if err := sm.MoveTo(status); err != nil {
		return nil, err
	}
	if task.Status == status {
		return task, nil
	}

	if err := s.repo.UpdateTaskStatus(ctx, task.ID, status); err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	s.logger.Info("task status changed",
		zap.String("task_id", task.ID),
		zap.String("from", string(task.Status)),
		zap.String("to", string(status)),
	)
	task.Status = status
	return task, nil
}
