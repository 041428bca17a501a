package dto

import (
	"time"

	"github.com/spec-kit/todo-service/internal/domain"
)

// CreateTaskRequest payload for new tasks.
type CreateTaskRequest struct {
	Title    string `json:"title"`
	Detail   string `json:"detail,omitempty"`
	Datetime string `json:"datetime"`
	Status   string `json:"status,omitempty"`
}

// UpdateTaskRequest payload for task changes.
type UpdateTaskRequest struct {
	Title    *string `json:"title,omitempty"`
	Detail   *string `json:"detail,omitempty"`
	Datetime *string `json:"datetime,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// TaskResponse is the outward task representation.
type TaskResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail,omitempty"`
	Datetime  time.Time `json:"datetime"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTaskResponse maps a domain task to its API shape.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Detail:    task.Detail,
		Datetime:  task.DueAt,
		Status:    string(task.Status),
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}
