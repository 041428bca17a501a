package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/todo-service/internal/config"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		ResetTokenTTLMinutes:  120,
		BcryptCost:            bcrypt.MinCost,
	}
}

func newTestAuthService(users *fakeUserRepo, revoked *fakeRevocationList) *AuthService {
	return NewAuthService(testAuthConfig(), AuthDependencies{
		UserRepo: users,
		Revoked:  revoked,
	})
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserRepo(), nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "A@X.com", Password: "Secret123!"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email, "email stored normalized")
	assert.Equal(t, []string{domain.RoleUser}, user.Roles)
	assert.NotEqual(t, "Secret123!", user.PasswordHash, "plaintext never stored")

	loggedIn, token, exp, err := svc.Login(ctx, "a@x.com", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.False(t, exp.IsZero())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID())
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, []string{domain.RoleUser}, claims.Roles)
}

func TestRegisterDuplicateEmailDifferentCase(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserRepo(), nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw-one-111"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "A@X.COM", Password: "pw-two-222"})
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserRepo(), nil)
	ctx := context.Background()
	username := "ana"

	_, err := svc.Register(ctx, RegisterInput{Email: "one@x.com", Username: &username, Password: "pw-one-111"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "two@x.com", Username: &username, Password: "pw-two-222"})
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserRepo(), nil)

	_, _, _, err := svc.Login(context.Background(), "nobody@x.com", "whatever1")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserRepo(), nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "a@x.com", "WrongPass!")
	assert.Equal(t, "UNAUTHORIZED", errCode(t, err))
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	revoked := newFakeRevocationList()
	svc := newTestAuthService(newFakeUserRepo(), revoked)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)
	_, token, _, err := svc.Login(ctx, "a@x.com", "Secret123!")
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, isRevoked)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := newTestAuthService(users, nil)
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterInput{Email: "first@x.com", Password: "pw-one-111"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Email: "second@x.com", Password: "pw-two-222"})
	require.NoError(t, err)

	taken := "Second@X.com"
	_, err = svc.UpdateProfile(ctx, first.ID, repository.ProfilePatch{Email: &taken})
	assert.Equal(t, "CONFLICT", errCode(t, err))

	fresh := "fresh@x.com"
	updated, err := svc.UpdateProfile(ctx, first.ID, repository.ProfilePatch{Email: &fresh})
	require.NoError(t, err)
	assert.Equal(t, "fresh@x.com", updated.Email)
}
