package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgauth "github.com/rmartelo/freightops-backend/pkg/auth"
	"github.com/rmartelo/freightops-backend/pkg/auth/session"
	"github.com/rmartelo/freightops-backend/pkg/config"
	"github.com/rmartelo/freightops-backend/pkg/db/models"
	pkgerrors "github.com/rmartelo/freightops-backend/pkg/errors"
	"github.com/rmartelo/freightops-backend/pkg/security"
)

type stubUserRepo struct {
	users map[string]*models.User
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

type stubSessions struct {
	tokens  map[string]string
	revoked []string
}

func newStubSessions() *stubSessions {
	return &stubSessions{tokens: map[string]string{}}
}

func (s *stubSessions) Generate(_ context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.tokens[accessID] = token
	return token, nil
}

func (s *stubSessions) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.tokens, oldAccessID)
	newID := uuid.NewString()
	newToken := "refresh-" + newID
	s.tokens[newID] = newToken
	return newID, newToken, nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	delete(s.tokens, accessID)
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "freightops",
		ExpirationMinutes: 30,
		RefreshTTLHours:   24,
	}
}

func testFixture(t *testing.T) (Service, *stubSessions, *models.User) {
	t.Helper()

	hashed, err := security.HashPassword("password1", config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)

	role := "ops"
	user := &models.User{
		UserID:         uuid.New(),
		Name:           "Ana Ops",
		Email:          "ana@example.com",
		RoleID:         &role,
		HashedPassword: hashed,
	}
	sessions := newStubSessions()
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{users: map[string]*models.User{user.Email: user}},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	require.NoError(t, err)
	return svc, sessions, user
}

func TestLoginSuccess(t *testing.T) {
	svc, _, user := testFixture(t)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "Ana@Example.com", Password: "password1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(1800), resp.ExpiresIn)
	require.NotNil(t, resp.User)
	assert.Equal(t, user.UserID, resp.User.UserID)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.UserID)
	require.NotNil(t, claims.RoleID)
	assert.Equal(t, "ops", *claims.RoleID)
}

func TestLoginRejectsUnknownEmailAndBadPassword(t *testing.T) {
	svc, _, _ := testFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password1"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
	unknownMsg := err.Error()

	_, err = svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
	assert.Equal(t, unknownMsg, err.Error())
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	svc, _, user := testFixture(t)
	user.Disabled = true

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "password1"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, sessions, _ := testFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "password1"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The original pair is single-use.
	_, err = svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	require.Len(t, sessions.tokens, 1)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, sessions, _ := testFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, LogoutRequest{AccessToken: login.AccessToken}))
	require.Len(t, sessions.revoked, 1)

	_, err = svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}
