package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/events"
)

// AuditService writes a structured log line per security-relevant domain
// event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.logEvent)
	a.dispatcher.Subscribe(events.EventUserLoggedIn, a.logEvent)
	a.dispatcher.Subscribe(events.EventPasswordResetRequested, a.logEvent)
	a.dispatcher.Subscribe(events.EventPasswordResetCompleted, a.logEvent)
	a.dispatcher.Subscribe(events.EventTaskCreated, a.logEvent)
	a.dispatcher.Subscribe(events.EventTaskStatusChanged, a.logEvent)
}

func (a *AuditService) logEvent(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("user_id", event.UserID),
		zap.Any("payload", event.Payload))
	return nil
}
