package domain

import "time"

// PasswordReset is a single-use, expiring reset token record. Only the
// bcrypt hash of the emailed secret is ever stored.
type PasswordReset struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	UsedAt    *time.Time
	IP        string
	UserAgent string
	CreatedAt time.Time
}

// Usable reports whether the token can still authorize a password change at
// the given instant. The secret comparison happens separately.
func (p *PasswordReset) Usable(now time.Time) bool {
	return !p.Used && now.Before(p.ExpiresAt)
}
