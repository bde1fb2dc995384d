package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/repository/repositorytest"
	pkgauth "github.com/hospitalms/hospital-api/pkg/auth"
	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
	"github.com/hospitalms/hospital-api/pkg/security"
)

func newTestService(t *testing.T, opts ...pkgauth.Option) (*Service, *repositorytest.UserStore) {
	t.Helper()
	users := repositorytest.NewUserStore()
	hasher := security.NewBcryptHasher(4)
	tokens := pkgauth.NewTokenService("test-secret", time.Minute, opts...)
	return NewService(users, hasher, tokens, time.Minute), users
}

func registerAlice(t *testing.T, svc *Service) *model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice Adams",
	})
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService(t)

	user := registerAlice(t, svc)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.True(t, user.Active)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrDuplicateValue))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrDuplicateValue))
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	registerAlice(t, svc)

	token, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	registerAlice(t, svc)

	_, err := svc.Login(context.Background(), "alice", "wrong-password")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody", "secret123")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestResolveToken(t *testing.T) {
	svc, _ := newTestService(t)
	registerAlice(t, svc)

	token, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	user, err := svc.ResolveToken(context.Background(), token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestResolveTokenExpired(t *testing.T) {
	current := time.Now()
	svc, _ := newTestService(t, pkgauth.WithClock(func() time.Time { return current }))
	registerAlice(t, svc)

	token, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)

	_, err = svc.ResolveToken(context.Background(), token.AccessToken)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidToken))
}

func TestResolveTokenUserDeleted(t *testing.T) {
	svc, users := newTestService(t)
	alice := registerAlice(t, svc)

	token, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	// Simulate the account disappearing between token issue and use.
	alice.Username = "renamed"
	require.NoError(t, users.Update(context.Background(), alice))

	_, err = svc.ResolveToken(context.Background(), token.AccessToken)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUserNotFound))
}

func TestResolveTokenInactiveUser(t *testing.T) {
	svc, users := newTestService(t)
	alice := registerAlice(t, svc)

	token, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	alice.Active = false
	require.NoError(t, users.Update(context.Background(), alice))

	_, err = svc.ResolveToken(context.Background(), token.AccessToken)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUserInactive))
}

func TestResolveTokenGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ResolveToken(context.Background(), "garbage")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidToken))
}
