package domain

import "time"

// TaskPriority enumerates task priorities.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// TaskStatus enumerates the lifecycle states of a task.
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is a unit of work belonging to a project.
type Task struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"projectId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     Date         `json:"dueDate"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	CreatedAt   time.Time    `json:"-"`
}
