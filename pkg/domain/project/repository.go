package project

import "context"

// Repository persists projects, tasks and resources.
// Implementations assign ids and timestamps on create.
type Repository interface {
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context, userID string) ([]Project, error)

	CreateTasks(ctx context.Context, tasks []Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context, projectID string) ([]Task, error)
	UpdateTaskStatus(ctx context.Context, id string, status TaskStatus) error

	CreateResources(ctx context.Context, resources []Resource) error
	ListResources(ctx context.Context, projectID string) ([]Resource, error)
}
