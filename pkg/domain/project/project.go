package project

import (
	"slices"
	"time"

	"github.com/felixgeelhaar/plancraft/pkg/domain/planning"
)

// Status is the lifecycle stage of a project board card.
type Status string

const (
	StatusPlanning   Status = "Planning"
	StatusInProgress Status = "In Progress"
	StatusReview     Status = "Review"
	StatusCompleted  Status = "Completed"
)

// IsValid returns true if the status is a known project status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusReview, StatusCompleted:
		return true
	default:
		return false
	}
}

// PlanSource records whether a project's plan came from the backend or the fallback.
type PlanSource string

const (
	PlanSourceGenerated PlanSource = "generated"
	PlanSourceFallback  PlanSource = "fallback"
)

// Project is a persisted project owned by a user.
type Project struct {
	ID              string                   `json:"id"`
	UserID          string                   `json:"user_id"`
	Name            string                   `json:"name"`
	Description     string                   `json:"description"`
	ClientName      string                   `json:"client_name,omitempty"`
	ProjectType     string                   `json:"project_type"`
	TechStack       []string                 `json:"tech_stack"`
	ExperienceLevel planning.ExperienceLevel `json:"experience_level"`
	Status          Status                   `json:"status"`
	DueDate         *time.Time               `json:"due_date,omitempty"`
	EstimatedTime   string                   `json:"estimated_time"`
	AIBreakdown     string                   `json:"ai_breakdown"`
	PlanSource      PlanSource               `json:"plan_source"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// Task is a persisted unit of work inside a project.
type Task struct {
	ID                string                `json:"id"`
	ProjectID         string                `json:"project_id"`
	Name              string                `json:"name"`
	Description       string                `json:"description"`
	Status            TaskStatus            `json:"status"`
	Priority          planning.TaskPriority `json:"priority"`
	AssignedTo        string                `json:"assigned_to,omitempty"`
	EstimatedDuration string                `json:"estimated_duration,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// Resource is a persisted learning resource attached to a project.
type Resource struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Details is a project together with its tasks and resources.
type Details struct {
	Project   *Project   `json:"project"`
	Tasks     []Task     `json:"tasks"`
	Resources []Resource `json:"resources"`
}

// TasksByPriority returns a copy of the tasks ordered High to Low.
// Tasks of equal priority keep their stored order.
func (d *Details) TasksByPriority() []Task {
	tasks := slices.Clone(d.Tasks)
	slices.SortStableFunc(tasks, func(a, b Task) int {
		return b.Priority.Compare(a.Priority)
	})
	return tasks
}

// TasksFromPlan converts plan tasks into unsaved task records.
func TasksFromPlan(projectID, assignee string, plan *planning.ProjectPlan) []Task {
	tasks := make([]Task, 0, len(plan.Tasks))
	for _, t := range plan.Tasks {
		tasks = append(tasks, Task{
			ProjectID:         projectID,
			Name:              t.Name,
			Description:       t.Description,
			Status:            TaskToDo,
			Priority:          t.Priority,
			AssignedTo:        assignee,
			EstimatedDuration: t.EstimatedDuration,
		})
	}
	return tasks
}

// ResourcesFromPlan converts plan resources into unsaved resource records.
func ResourcesFromPlan(projectID string, plan *planning.ProjectPlan) []Resource {
	resources := make([]Resource, 0, len(plan.Resources))
	for _, r := range plan.Resources {
		resources = append(resources, Resource{
			ProjectID:   projectID,
			Title:       r.Title,
			URL:         r.URL,
			Description: r.Description,
		})
	}
	return resources
}
