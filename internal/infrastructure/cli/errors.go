package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/plancraft/pkg/domain/planning"
	"github.com/felixgeelhaar/plancraft/pkg/domain/project"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var transErr *project.TransitionError
	if errors.As(err, &transErr) {
		return NewCLIError(
			transErr.Error(),
			fmt.Sprintf("Task '%s' is '%s'; valid moves are start, stop, complete and reopen", transErr.TaskID, transErr.FromStatus),
			err,
		)
	}

	switch {
	case errors.Is(err, project.ErrNotAuthenticated):
		return NewCLIError("no acting user", "Pass --user or set "+envUser, err)
	case errors.Is(err, planning.ErrInvalidIntake):
		return NewCLIError("invalid project details", "Provide --name, --description, --type and --stack", err)
	case errors.Is(err, project.ErrProjectNotFound):
		return NewCLIError("project not found", "Run 'plancraft project list' to see your projects", err)
	case errors.Is(err, project.ErrTaskNotFound):
		return NewCLIError("task not found", "Run 'plancraft project show <id>' to list a project's tasks", err)
	case errors.Is(err, project.ErrInvalidTask):
		return NewCLIError("invalid task", "Tasks need a name and a priority of Low, Medium or High", err)
	}

	return err
}
