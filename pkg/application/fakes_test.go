package application_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/felixgeelhaar/plancraft/pkg/domain/project"
)

// memRepo is an in-memory project.Repository.
type memRepo struct {
	mu        sync.Mutex
	seq       int
	projects  map[string]project.Project
	tasks     map[string]project.Task
	resources []project.Resource

	createProjectErr   error
	createTasksErr     error
	createResourcesErr error
}

func newMemRepo() *memRepo {
	return &memRepo{
		projects: map[string]project.Project{},
		tasks:    map[string]project.Task{},
	}
}

func (r *memRepo) nextID(prefix string) string {
	r.seq++
	return fmt.Sprintf("%s-%d", prefix, r.seq)
}

func (r *memRepo) CreateProject(ctx context.Context, p *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createProjectErr != nil {
		return r.createProjectErr
	}
	p.ID = r.nextID("proj")
	p.CreatedAt = time.Unix(int64(r.seq), 0).UTC()
	p.UpdatedAt = p.CreatedAt
	r.projects[p.ID] = *p
	return nil
}

func (r *memRepo) GetProject(ctx context.Context, id string) (*project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, project.ErrProjectNotFound
	}
	return &p, nil
}

func (r *memRepo) ListProjects(ctx context.Context, userID string) ([]project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []project.Project
	for _, p := range r.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) CreateTasks(ctx context.Context, tasks []project.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createTasksErr != nil {
		return r.createTasksErr
	}
	for i := range tasks {
		tasks[i].ID = r.nextID("task")
		r.tasks[tasks[i].ID] = tasks[i]
	}
	return nil
}

func (r *memRepo) GetTask(ctx context.Context, id string) (*project.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, project.ErrTaskNotFound
	}
	return &t, nil
}

func (r *memRepo) ListTasks(ctx context.Context, projectID string) ([]project.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []project.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) UpdateTaskStatus(ctx context.Context, id string, status project.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return project.ErrTaskNotFound
	}
	t.Status = status
	r.tasks[id] = t
	return nil
}

func (r *memRepo) CreateResources(ctx context.Context, resources []project.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createResourcesErr != nil {
		return r.createResourcesErr
	}
	for i := range resources {
		resources[i].ID = r.nextID("res")
		r.resources = append(r.resources, resources[i])
	}
	return nil
}

func (r *memRepo) ListResources(ctx context.Context, projectID string) ([]project.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []project.Resource
	for _, res := range r.resources {
		if res.ProjectID == projectID {
			out = append(out, res)
		}
	}
	return out, nil
}

var errStorage = errors.New("storage unavailable")
