package project

import (
	"fmt"
	"strings"
)

// TaskStatus is the board column of a task.
type TaskStatus string

const (
	TaskToDo       TaskStatus = "To Do"
	TaskInProgress TaskStatus = "In Progress"
	TaskDone       TaskStatus = "Done"
)

// taskEvents maps currentStatus -> event -> targetStatus.
var taskEvents = map[TaskStatus]map[string]TaskStatus{
	TaskToDo: {
		"start":    TaskInProgress,
		"complete": TaskDone,
	},
	TaskInProgress: {
		"complete": TaskDone,
		"stop":     TaskToDo,
	},
	TaskDone: {
		"reopen": TaskToDo,
	},
}

// AllTaskStatuses returns all valid task statuses in board order.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskToDo, TaskInProgress, TaskDone}
}

// IsValid returns true if the status is a valid task status.
func (s TaskStatus) IsValid() bool {
	_, ok := taskEvents[s]
	return ok
}

func (s TaskStatus) String() string {
	return string(s)
}

// EventTo returns the event that moves s to target.
func (s TaskStatus) EventTo(target TaskStatus) (string, bool) {
	for event, to := range taskEvents[s] {
		if to == target {
			return event, true
		}
	}
	return "", false
}

// ParseTaskStatus accepts the display value or a slug ("todo", "in-progress", "done").
func ParseTaskStatus(s string) (TaskStatus, error) {
	key := statusKey(s)
	for _, status := range AllTaskStatuses() {
		if statusKey(string(status)) == key {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid task status: %s", s)
}

func statusKey(s string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}
