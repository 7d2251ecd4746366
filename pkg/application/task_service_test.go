package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/plancraft/pkg/application"
	"github.com/felixgeelhaar/plancraft/pkg/domain/planning"
	"github.com/felixgeelhaar/plancraft/pkg/domain/project"
)

func seedProject(t *testing.T, repo *memRepo) string {
	t.Helper()
	p := &project.Project{UserID: "user-1", Name: "Shop", Status: project.StatusPlanning}
	require.NoError(t, repo.CreateProject(context.Background(), p))
	return p.ID
}

func TestTaskService_CreateTask(t *testing.T) {
	repo := newMemRepo()
	projectID := seedProject(t, repo)
	svc := application.NewTaskService(repo, nil)

	task, err := svc.CreateTask(context.Background(), "user-1", projectID, "Write copy", "Landing page text", "")
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, planning.PriorityMedium, task.Priority)
	assert.Equal(t, project.TaskToDo, task.Status)
	assert.Equal(t, "user-1", task.AssignedTo)

	stored, err := repo.GetTask(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, *task, *stored)
}

func TestTaskService_CreateTask_Errors(t *testing.T) {
	repo := newMemRepo()
	projectID := seedProject(t, repo)
	svc := application.NewTaskService(repo, nil)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, "", projectID, "x", "", planning.PriorityLow)
	assert.ErrorIs(t, err, project.ErrNotAuthenticated)

	_, err = svc.CreateTask(ctx, "user-1", projectID, "  ", "", planning.PriorityLow)
	assert.ErrorIs(t, err, project.ErrInvalidTask)

	_, err = svc.CreateTask(ctx, "user-1", projectID, "x", "", planning.TaskPriority("Urgent"))
	assert.ErrorIs(t, err, project.ErrInvalidTask)

	_, err = svc.CreateTask(ctx, "user-1", "missing", "x", "", planning.PriorityLow)
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestTaskService_UpdateTaskStatus(t *testing.T) {
	repo := newMemRepo()
	projectID := seedProject(t, repo)
	svc := application.NewTaskService(repo, nil)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "user-1", projectID, "Build", "", planning.PriorityHigh)
	require.NoError(t, err)

	steps := []project.TaskStatus{project.TaskInProgress, project.TaskToDo, project.TaskDone, project.TaskToDo}
	for _, status := range steps {
		updated, err := svc.UpdateTaskStatus(ctx, task.ID, status)
		require.NoError(t, err, "move to %s", status)
		assert.Equal(t, status, updated.Status)

		stored, err := repo.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, status, stored.Status)
	}
}

func TestTaskService_UpdateTaskStatus_SameStatus(t *testing.T) {
	repo := newMemRepo()
	projectID := seedProject(t, repo)
	svc := application.NewTaskService(repo, nil)

	task, err := svc.CreateTask(context.Background(), "user-1", projectID, "Build", "", "")
	require.NoError(t, err)

	updated, err := svc.UpdateTaskStatus(context.Background(), task.ID, project.TaskToDo)
	require.NoError(t, err)
	assert.Equal(t, project.TaskToDo, updated.Status)
}

func TestTaskService_UpdateTaskStatus_InvalidTransition(t *testing.T) {
	repo := newMemRepo()
	projectID := seedProject(t, repo)
	svc := application.NewTaskService(repo, nil)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "user-1", projectID, "Build", "", "")
	require.NoError(t, err)
	_, err = svc.UpdateTaskStatus(ctx, task.ID, project.TaskDone)
	require.NoError(t, err)

	_, err = svc.UpdateTaskStatus(ctx, task.ID, project.TaskInProgress)
	require.ErrorIs(t, err, project.ErrInvalidTransition)

	var te *project.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, project.TaskDone, te.FromStatus)

	stored, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, project.TaskDone, stored.Status)
}

func TestTaskService_UpdateTaskStatus_NotFound(t *testing.T) {
	svc := application.NewTaskService(newMemRepo(), nil)

	_, err := svc.UpdateTaskStatus(context.Background(), "nope", project.TaskDone)
	assert.ErrorIs(t, err, project.ErrTaskNotFound)
}
