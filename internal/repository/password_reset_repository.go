package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/todo-service/internal/domain"
)

// PasswordResetRepository manages password reset token persistence.
type PasswordResetRepository interface {
	Create(ctx context.Context, token *domain.PasswordReset) error
	// GetActiveByUser returns the most recent unconsumed token for a user.
	GetActiveByUser(ctx context.Context, userID string) (*domain.PasswordReset, error)
	// Consume marks the token used and rotates the user's password hash in
	// one transaction. Returns false without side effects when the token
	// was already consumed by a concurrent request.
	Consume(ctx context.Context, tokenID, userID, newPasswordHash string) (bool, error)
}

type passwordResetRepository struct {
	pool *pgxpool.Pool
}

// NewPasswordResetRepository constructs repository.
func NewPasswordResetRepository(pool *pgxpool.Pool) PasswordResetRepository {
	return &passwordResetRepository{pool: pool}
}

func (r *passwordResetRepository) Create(ctx context.Context, token *domain.PasswordReset) error {
	const query = `
        INSERT INTO password_reset_tokens (user_id, token_hash, expires_at, ip, user_agent)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt,
		token.IP,
		token.UserAgent,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *passwordResetRepository) GetActiveByUser(ctx context.Context, userID string) (*domain.PasswordReset, error) {
	const query = `
        SELECT id, user_id, token_hash, expires_at, used, used_at, ip, user_agent, created_at
        FROM password_reset_tokens
        WHERE user_id=$1 AND used=FALSE
        ORDER BY created_at DESC
        LIMIT 1`
	var token domain.PasswordReset
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.Used,
		&token.UsedAt,
		&token.IP,
		&token.UserAgent,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *passwordResetRepository) Consume(ctx context.Context, tokenID, userID, newPasswordHash string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Conditional update is the serialization point: of two racing
	// requests only one matches used=FALSE.
	cmd, err := tx.Exec(ctx, `
        UPDATE password_reset_tokens SET used=TRUE, used_at=NOW()
        WHERE id=$1 AND used=FALSE`, tokenID)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `
        UPDATE users SET password_hash=$1, updated_at=NOW()
        WHERE id=$2`, newPasswordHash, userID); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
