package domain

import "time"

// Priority is one of the three task urgency levels.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority normalizes a priority value, defaulting empty input to medium.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", Validationf("invalid priority %q", s)
}

// Subtask is a checklist entry embedded in a task.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task represents a single board item.
type Task struct {
	ID          string    `json:"id"`
	BoardID     string    `json:"boardId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Column      string    `json:"column"`
	Priority    Priority  `json:"priority"`
	Tags        []string  `json:"tags"`
	DueDate     string    `json:"dueDate,omitempty"`
	Position    int       `json:"position"`
	Subtasks    []Subtask `json:"subtasks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Note is free text attached to a task.
type Note struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}
