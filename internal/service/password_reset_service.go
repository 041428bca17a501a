package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/config"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/repository"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// ResetRequestMeta carries caller provenance stored with the token.
type ResetRequestMeta struct {
	IP        string
	UserAgent string
}

// PasswordResetService owns the reset-token lifecycle: issuance, delivery
// and single-use consumption.
type PasswordResetService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	mailer     Mailer
	dispatcher events.Dispatcher
	clientURL  string
	resetTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

// PasswordResetDependencies bundles collaborators.
type PasswordResetDependencies struct {
	UserRepo   repository.UserRepository
	ResetRepo  repository.PasswordResetRepository
	Mailer     Mailer
	Dispatcher events.Dispatcher
}

// NewPasswordResetService builds the service.
func NewPasswordResetService(cfg *config.Config, deps PasswordResetDependencies) *PasswordResetService {
	return &PasswordResetService{
		users:      deps.UserRepo,
		resets:     deps.ResetRepo,
		mailer:     deps.Mailer,
		dispatcher: deps.Dispatcher,
		clientURL:  strings.TrimRight(cfg.Client.BaseURL, "/"),
		resetTTL:   cfg.Auth.ResetTokenTTL(),
		bcryptCost: cfg.Auth.BcryptCost,
		now:        time.Now,
	}
}

// RequestReset issues a reset token for the account behind email and mails
// the link. The raw secret leaves the process only inside the email; a
// delivery failure fails the whole request.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string, meta ResetRequestMeta) error {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("email", nil)
		}
		return apperrors.MapError(err)
	}

	secret, err := auth.NewResetSecret()
	if err != nil {
		return apperrors.MapError(err)
	}
	tokenHash, err := auth.HashPassword(secret, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}

	token := &domain.PasswordReset{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: s.now().Add(s.resetTTL),
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return apperrors.MapError(err)
	}

	link := s.resetLink(secret, user.ID)
	if err := s.mailer.Send(user.Email, "Reset your password", resetEmailBody(user.DisplayName(), link)); err != nil {
		return apperrors.NewDependencyFailure("mail relay", err)
	}

	s.publish(ctx, events.EventPasswordResetRequested, user.ID, events.PasswordResetRequestedPayload{
		TokenID:   token.ID,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	})
	return nil
}

// ConsumeReset validates the emailed secret and rotates the password. The
// token consumption and the hash rotation commit together; of two racing
// calls exactly one can win.
func (s *PasswordResetService) ConsumeReset(ctx context.Context, userID, rawSecret, newPassword string) error {
	token, err := s.resets.GetActiveByUser(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("active reset token", nil)
		}
		return apperrors.MapError(err)
	}

	if !s.now().Before(token.ExpiresAt) {
		return apperrors.NewTokenExpired("reset token expired")
	}
	if err := auth.ComparePassword(token.TokenHash, rawSecret); err != nil {
		// Failed attempt; the token stays usable until expiry.
		return apperrors.NewTokenInvalid("invalid reset token")
	}

	newHash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}

	consumed, err := s.resets.Consume(ctx, token.ID, userID, newHash)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !consumed {
		return apperrors.NewTokenInvalid("invalid reset token")
	}

	s.publish(ctx, events.EventPasswordResetCompleted, userID, events.PasswordResetCompletedPayload{TokenID: token.ID})
	return nil
}

func (s *PasswordResetService) resetLink(secret, userID string) string {
	return fmt.Sprintf("%s/reset-password?token=%s&id=%s",
		s.clientURL, url.QueryEscape(secret), url.QueryEscape(userID))
}

func resetEmailBody(name, link string) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Click <a href=%q>here</a> to reset your password. The link expires in 2 hours.</p><p>If you did not request this, ignore this email.</p>",
		name, link)
}

func (s *PasswordResetService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
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
