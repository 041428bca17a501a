package domain

import "time"

// TaskStatus enumerates board columns for a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ValidTaskStatus reports whether s is one of the known statuses.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is a single to-do item owned by a user.
type Task struct {
	ID        string
	UserID    string
	Title     string
	Detail    string
	DueAt     time.Time
	Status    TaskStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
