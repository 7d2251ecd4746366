package planning

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strings"
)

// TaskPriority is the urgency of a task. Values match the wire format of
// generated plans and the stored task rows.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// priorityRank ranks priorities from Low to High.
var priorityRank = map[TaskPriority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
}

// AllTaskPriorities returns all valid task priorities.
func AllTaskPriorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a valid task priority.
func (p TaskPriority) IsValid() bool {
	_, ok := priorityRank[p]
	return ok
}

func (p TaskPriority) String() string {
	return string(p)
}

// Compare returns -1, 0 or 1 as p ranks below, equal to or above other.
// Unknown priorities rank below Low.
func (p TaskPriority) Compare(other TaskPriority) int {
	return cmp.Compare(priorityRank[p], priorityRank[other])
}

// ParseTaskPriority parses user input case-insensitively ("high" -> High).
func ParseTaskPriority(s string) (TaskPriority, error) {
	for _, p := range AllTaskPriorities() {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid task priority: %s", s)
}

// DefaultTaskPriority returns the default priority for new tasks.
func DefaultTaskPriority() TaskPriority {
	return PriorityMedium
}

// MarshalJSON implements json.Marshaler interface.
func (p TaskPriority) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// UnmarshalJSON accepts only the exact wire values.
func (p *TaskPriority) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	priority := TaskPriority(str)
	if !priority.IsValid() {
		return fmt.Errorf("invalid task priority: %s", str)
	}

	*p = priority
	return nil
}
