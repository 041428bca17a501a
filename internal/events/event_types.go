package events

import (
	"time"

	"github.com/spec-kit/todo-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventUserLoggedIn           EventType = "user_logged_in"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventPasswordResetCompleted EventType = "password_reset_completed"
	EventTaskCreated            EventType = "task_created"
	EventTaskStatusChanged      EventType = "task_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
}

// PasswordResetRequestedPayload payload. Carries provenance only, never
// the secret.
type PasswordResetRequestedPayload struct {
	TokenID   string `json:"token_id"`
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// PasswordResetCompletedPayload payload.
type PasswordResetCompletedPayload struct {
	TokenID string `json:"token_id"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
}

// TaskStatusChangedPayload payload.
type TaskStatusChangedPayload struct {
	TaskID    string            `json:"task_id"`
	OldStatus domain.TaskStatus `json:"old_status"`
	NewStatus domain.TaskStatus `json:"new_status"`
}
