package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookhive/bookhive-api/internal/models"
	"github.com/bookhive/bookhive-api/internal/repository"
	appErrors "github.com/bookhive/bookhive-api/pkg/errors"
)

type mockAuthRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == identifier || u.Email == identifier {
			copy := *u
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	if m.users == nil {
		m.users = make(map[int64]*models.User)
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	user.ID = m.nextID
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{TokenSecret: "test-secret", TokenExpiry: time.Hour, Issuer: "bookhive-test"}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthServiceRegisterCreatesUnapprovedAccount(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FirstName:       "Alice",
	})
	require.NoError(t, err)
	assert.False(t, user.IsApproved)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	require.NotNil(t, user.FirstName)
	assert.Equal(t, "Alice", *user.FirstName)
}

func TestAuthServiceRegisterPasswordMismatch(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, nil, nil, testAuthConfig())

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret123",
		ConfirmPassword: "different",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRegisterDuplicate(t *testing.T) {
	repo := &mockAuthRepo{users: map[int64]*models.User{
		1: {ID: 1, Username: "alice", Email: "alice@example.com"},
	}, nextID: 1}
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username:        "alice",
		Email:           "other@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicate.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginNotApprovedBeforePasswordCheck(t *testing.T) {
	repo := &mockAuthRepo{users: map[int64]*models.User{
		1: {ID: 1, Username: "bob", Email: "bob@example.com", PasswordHash: hashPassword(t, "secret123"), IsApproved: false},
	}}
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	// Even a wrong password reports the approval state, not a credentials
	// failure, for an unapproved account.
	_, err := svc.Login(context.Background(), models.LoginRequest{Identifier: "bob", Password: "wrong"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotApproved.Code, appErr.Code)
	assert.Equal(t, appErrors.CategoryWarning, appErr.Category)
}

func TestAuthServiceLoginInvalidCredentials(t *testing.T) {
	repo := &mockAuthRepo{users: map[int64]*models.User{
		1: {ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: hashPassword(t, "secret123"), IsApproved: true},
	}}
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Identifier: "alice", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	_, err = svc.Login(context.Background(), models.LoginRequest{Identifier: "nobody", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginByEmailAndTokenRoundTrip(t *testing.T) {
	repo := &mockAuthRepo{users: map[int64]*models.User{
		1: {ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: hashPassword(t, "secret123"), IsApproved: true, IsLibrarian: true},
	}}
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Identifier: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleLibrarian, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsLibrarian)
}

func TestAuthServiceValidateTokenRejectsTampered(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, nil, nil, testAuthConfig())

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	other := NewAuthService(&mockAuthRepo{}, nil, nil, AuthConfig{TokenSecret: "other-secret", TokenExpiry: time.Hour})
	signed, _, err := other.generateToken(&models.User{ID: 9, Username: "mallory"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	require.Error(t, err)
}
