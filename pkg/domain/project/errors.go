package project

import (
	"errors"
	"fmt"
)

// Domain errors for project persistence and task workflow.
var (
	// ErrNotAuthenticated indicates no acting user was supplied.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrProjectNotFound indicates the project does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrTaskNotFound indicates the task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTransition indicates the requested status transition is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidProject indicates a project record carries an unknown status.
	ErrInvalidProject = errors.New("invalid project")

	// ErrInvalidTask indicates a task is missing required data.
	ErrInvalidTask = errors.New("invalid task")
)

// TransitionError provides details about an invalid transition.
type TransitionError struct {
	TaskID     string
	FromStatus TaskStatus
	ToStatus   TaskStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move task %s from %q to %q", e.TaskID, e.FromStatus, e.ToStatus)
}

// Is allows errors.Is to work with TransitionError.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
