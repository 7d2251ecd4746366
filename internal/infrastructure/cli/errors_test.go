package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/felixgeelhaar/plancraft/pkg/domain/planning"
	"github.com/felixgeelhaar/plancraft/pkg/domain/project"
)

func TestCLIError(t *testing.T) {
	t.Run("Error with cause", func(t *testing.T) {
		cause := errors.New("root cause")
		e := NewCLIError("something failed", "try this", cause)
		if e.Error() != "something failed: root cause" {
			t.Fatalf("unexpected: %s", e.Error())
		}
		if e.ExitCode != 1 {
			t.Fatalf("expected exit code 1, got %d", e.ExitCode)
		}
	})

	t.Run("Error without cause", func(t *testing.T) {
		e := NewCLIError("something failed", "try this", nil)
		if e.Error() != "something failed" {
			t.Fatalf("unexpected: %s", e.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root")
		e := NewCLIError("msg", "", cause)
		if !errors.Is(e, cause) {
			t.Fatal("errors.Is should match wrapped cause")
		}
	})
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
		wantCLI bool
	}{
		{name: "nil returns nil", err: nil},
		{name: "not authenticated", err: project.ErrNotAuthenticated, wantMsg: "no acting user", wantCLI: true},
		{name: "invalid intake", err: fmt.Errorf("%w: missing required fields: name", planning.ErrInvalidIntake), wantMsg: "invalid project details", wantCLI: true},
		{name: "project not found", err: fmt.Errorf("load: %w", project.ErrProjectNotFound), wantMsg: "project not found", wantCLI: true},
		{name: "task not found", err: project.ErrTaskNotFound, wantMsg: "task not found", wantCLI: true},
		{name: "invalid task", err: project.ErrInvalidTask, wantMsg: "invalid task", wantCLI: true},
		{
			name:    "transition",
			err:     &project.TransitionError{TaskID: "t1", FromStatus: project.TaskDone, ToStatus: project.TaskInProgress},
			wantMsg: `cannot move task t1 from "Done" to "In Progress"`,
			wantCLI: true,
		},
		{name: "unknown passes through", err: errors.New("disk full")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}

			var cliErr *CLIError
			isCLI := errors.As(got, &cliErr)
			if isCLI != tt.wantCLI {
				t.Fatalf("CLIError = %v, want %v (%v)", isCLI, tt.wantCLI, got)
			}
			if !tt.wantCLI {
				if got != tt.err {
					t.Fatalf("expected error to pass through unchanged, got %v", got)
				}
				return
			}
			if cliErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", cliErr.Message, tt.wantMsg)
			}
			if cliErr.Hint == "" {
				t.Error("expected a hint")
			}
			if !errors.Is(got, tt.err) {
				t.Error("mapped error should wrap the original")
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Error("nil error should exit 0")
	}
	if ExitCode(errors.New("x")) != 1 {
		t.Error("plain error should exit 1")
	}
	e := NewCLIError("x", "", nil)
	e.ExitCode = 3
	if ExitCode(fmt.Errorf("wrapped: %w", e)) != 3 {
		t.Error("expected CLIError exit code")
	}
}
