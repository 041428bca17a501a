package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/repository"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// TaskCreateInput carries fields for a new task.
type TaskCreateInput struct {
	Title  string
	Detail string
	DueAt  time.Time
	Status domain.TaskStatus
}

// TaskUpdateInput carries the mutable task fields. Nil means unchanged.
type TaskUpdateInput struct {
	Title  *string
	Detail *string
	DueAt  *time.Time
	Status *domain.TaskStatus
}

// TaskService manages per-user task CRUD. Ownership is enforced here:
// a task that exists but belongs to someone else reads as absent.
type TaskService struct {
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
}

// NewTaskService builds the service.
func NewTaskService(tasks repository.TaskRepository, dispatcher events.Dispatcher) *TaskService {
	return &TaskService{tasks: tasks, dispatcher: dispatcher}
}

// CreateTask creates a task owned by userID.
func (s *TaskService) CreateTask(ctx context.Context, userID string, input TaskCreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.DueAt.IsZero() {
		return nil, apperrors.NewValidationError("datetime required", nil)
	}
	status := input.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	if !domain.ValidTaskStatus(status) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": status})
	}

	task := &domain.Task{
		UserID: userID,
		Title:  title,
		Detail: strings.TrimSpace(input.Detail),
		DueAt:  input.DueAt,
		Status: status,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventTaskCreated, userID, events.TaskCreatedPayload{TaskID: task.ID, Title: task.Title})
	return task, nil
}

// ListTasks lists the caller's tasks, optionally filtered by status.
func (s *TaskService) ListTasks(ctx context.Context, userID string, filter repository.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tasks, nil
}

// GetTask returns a single owned task.
func (s *TaskService) GetTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return s.getOwned(ctx, userID, taskID)
}

// UpdateTask applies the patch to an owned task.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, input TaskUpdateInput) (*domain.Task, error) {
	task, err := s.getOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	oldStatus := task.Status

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title required", nil)
		}
		task.Title = title
	}
	if input.Detail != nil {
		task.Detail = strings.TrimSpace(*input.Detail)
	}
	if input.DueAt != nil {
		task.DueAt = *input.DueAt
	}
	if input.Status != nil {
		if !domain.ValidTaskStatus(*input.Status) {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *input.Status})
		}
		task.Status = *input.Status
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	if task.Status != oldStatus {
		s.publish(ctx, events.EventTaskStatusChanged, userID, events.TaskStatusChangedPayload{
			TaskID:    task.ID,
			OldStatus: oldStatus,
			NewStatus: task.Status,
		})
	}
	return task, nil
}

// DeleteTask removes an owned task.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	if _, err := s.getOwned(ctx, userID, taskID); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TaskService) getOwned(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("task", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if task.UserID != userID {
		return nil, apperrors.NewNotFound("task", nil)
	}
	return task, nil
}

func (s *TaskService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
