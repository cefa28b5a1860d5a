package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

type fakeAuthRepo struct {
	users     []models.UserRecord
	lastLogin *time.Time
}

func (f *fakeAuthRepo) FindByUsername(_ context.Context, username string) (*models.UserRecord, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			return &f.users[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAuthRepo) FindByID(_ context.Context, id int64) (*models.UserRecord, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAuthRepo) UpdateLastLogin(_ context.Context, _ int64, ts time.Time) error {
	f.lastLogin = &ts
	return nil
}

func newAuthService(t *testing.T, active bool) (*AuthService, *fakeAuthRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	name := "Juan Cruz"
	repo := &fakeAuthRepo{users: []models.UserRecord{{
		ID: 7, Username: "jcruz", PasswordHash: string(hash), FullName: &name,
		Role: models.RoleStudent, Active: active,
	}}}
	svc := NewAuthService(repo, nil, zap.NewNop(), AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "campus-portal-api",
	})
	return svc, repo
}

func TestLoginIssuesToken(t *testing.T) {
	svc, repo := newAuthService(t, true)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "jcruz", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "jcruz", resp.User.Username)
	assert.Equal(t, "Juan Cruz", resp.User.FullName)
	assert.NotNil(t, repo.lastLogin)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t, true)
	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "jcruz", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthService(t, true)
	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, _ := newAuthService(t, false)
	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "jcruz", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newAuthService(t, true)
	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "", Password: ""})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t, true)
	_, err := svc.ValidateToken("garbage")
	require.Error(t, err)
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newAuthService(t, true)
	info, err := svc.CurrentUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "jcruz", info.Username)

	_, err = svc.CurrentUser(context.Background(), 99)
	require.Error(t, err)
}
