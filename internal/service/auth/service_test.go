package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/auth"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/user"
	"github.com/vigilo-hq/vigilo-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
	byID    map[string]user.User
	linked  map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]user.User),
		byID:    make(map[string]user.User),
		linked:  make(map[string]string),
	}
}

func (f *fakeUserRepo) put(u user.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.put(u)
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) LinkGoogleID(ctx context.Context, id string, googleID string) error {
	f.linked[id] = googleID
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	hashedStr := string(hashed)

	account := user.User{
		ID:           "user-1",
		Email:        email,
		PasswordHash: &hashedStr,
		FullName:     "Test Operator",
		Role:         user.RoleOperator,
	}
	repo.put(account)
	return account
}

func newTestAuthService(repo *fakeUserRepo) (auth.AuthService, jwt.Service) {
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(repo, jwtService, nil), jwtService
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "operator@example.com", "password123")
	authService, _ := newTestAuthService(repo)

	response, err := authService.Login(context.Background(), auth.LoginRequest{
		Email:    "operator@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Greater(t, response.ExpiresAt, int64(0))
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "operator@example.com", "password123")
	authService, _ := newTestAuthService(repo)

	_, err := authService.Login(context.Background(), auth.LoginRequest{
		Email:    "operator@example.com",
		Password: "wrongpassword",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	authService, _ := newTestAuthService(newFakeUserRepo())

	_, err := authService.Login(context.Background(), auth.LoginRequest{
		Email:    "nonexistent@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_GoogleOnlyAccount(t *testing.T) {
	repo := newFakeUserRepo()
	googleID := "google-id-123"
	repo.put(user.User{
		ID:       "user-2",
		Email:    "sso-only@example.com",
		Role:     user.RoleOperator,
		GoogleID: &googleID,
	})
	authService, _ := newTestAuthService(repo)

	_, err := authService.Login(context.Background(), auth.LoginRequest{
		Email:    "sso-only@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "operator@example.com", "password123")
	authService, jwtService := newTestAuthService(repo)

	loginResp, err := authService.Login(context.Background(), auth.LoginRequest{
		Email:    "operator@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := authService.Refresh(context.Background(), loginResp.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	// The old refresh token died with the rotation.
	assert.True(t, jwtService.IsTokenRevoked(loginResp.RefreshToken))
	_, err = authService.Refresh(context.Background(), loginResp.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "operator@example.com", "password123")
	authService, _ := newTestAuthService(repo)

	loginResp, err := authService.Login(context.Background(), auth.LoginRequest{
		Email:    "operator@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = authService.Refresh(context.Background(), loginResp.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Logout_RevokesRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "operator@example.com", "password123")
	authService, jwtService := newTestAuthService(repo)

	loginResp, err := authService.Login(context.Background(), auth.LoginRequest{
		Email:    "operator@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	authService.Logout(context.Background(), loginResp.RefreshToken)
	assert.True(t, jwtService.IsTokenRevoked(loginResp.RefreshToken))
}
