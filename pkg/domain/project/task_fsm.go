package project

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// statekit state ids; kept apart from the display values stored on tasks.
const (
	stateToDo       = "todo"
	stateInProgress = "in_progress"
	stateDone       = "done"
)

var stateByStatus = map[TaskStatus]string{
	TaskToDo:       stateToDo,
	TaskInProgress: stateInProgress,
	TaskDone:       stateDone,
}

var statusByState = map[string]TaskStatus{
	stateToDo:       TaskToDo,
	stateInProgress: TaskInProgress,
	stateDone:       TaskDone,
}

// TaskContext carries the task being driven through the machine.
type TaskContext struct {
	TaskID string
}

// TaskStateMachine enforces the task board workflow.
type TaskStateMachine struct {
	taskID      string
	interpreter *statekit.Interpreter[TaskContext]
}

// NewTaskStateMachine starts a machine for taskID in the given status.
func NewTaskStateMachine(taskID string, current TaskStatus) (*TaskStateMachine, error) {
	initial, ok := stateByStatus[current]
	if !ok {
		return nil, fmt.Errorf("invalid task status: %s", current)
	}

	builder := statekit.NewMachine[TaskContext]("task-board").
		WithInitial(statekit.StateID(initial)).
		WithContext(TaskContext{TaskID: taskID})

	builder.State(stateToDo).
		On("start").Target(stateInProgress).
		On("complete").Target(stateDone).
		Done()

	builder.State(stateInProgress).
		On("complete").Target(stateDone).
		On("stop").Target(stateToDo).
		Done()

	builder.State(stateDone).
		On("reopen").Target(stateToDo).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &TaskStateMachine{taskID: taskID, interpreter: interpreter}, nil
}

// Current returns the task status the machine is in.
func (sm *TaskStateMachine) Current() TaskStatus {
	return statusByState[string(sm.interpreter.State().Value)]
}

// MoveTo drives the machine to target. Moving to the current status is a no-op.
func (sm *TaskStateMachine) MoveTo(target TaskStatus) error {
	from := sm.Current()
	if from == target {
		return nil
	}

	event, ok := from.EventTo(target)
	if !ok {
		return &TransitionError{TaskID: sm.taskID, FromStatus: from, ToStatus: target}
	}

	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if sm.Current() != target {
		return &TransitionError{TaskID: sm.taskID, FromStatus: from, ToStatus: target}
	}
	return nil
}
