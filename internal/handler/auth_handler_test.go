package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookhive/bookhive-api/internal/models"
	"github.com/bookhive/bookhive-api/internal/repository"
	"github.com/bookhive/bookhive-api/internal/service"
)

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func (f *fakeUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserStore) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == identifier || u.Email == identifier {
			copy := *u
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	if f.users == nil {
		f.users = make(map[int64]*models.User)
	}
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	user.ID = f.nextID
	copy := *user
	f.users[user.ID] = &copy
	return nil
}

func newAuthHandlerForTest(store *fakeUserStore) *AuthHandler {
	svc := service.NewAuthService(store, nil, nil, service.AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "bookhive-test",
	})
	return NewAuthHandler(svc)
}

func postJSON(t *testing.T, h gin.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	h(c)
	return rec
}

func TestAuthHandlerRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandlerForTest(&fakeUserStore{})

	rec := postJSON(t, handler.Register, "/auth/register", models.RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "approve")
}

func TestAuthHandlerRegisterDuplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, Username: "alice", Email: "alice@example.com"},
	}, nextID: 1}
	handler := newAuthHandlerForTest(store)

	rec := postJSON(t, handler.Register, "/auth/register", models.RegisterRequest{
		Username:        "alice",
		Email:           "new@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandlerLoginUnapproved(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	store := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, Username: "bob", Email: "bob@example.com", PasswordHash: string(hash)},
	}}
	handler := newAuthHandlerForTest(store)

	rec := postJSON(t, handler.Login, "/auth/login", models.LoginRequest{
		Identifier: "bob",
		Password:   "secret123",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "warning")
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	store := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: string(hash), IsApproved: true},
	}}
	handler := newAuthHandlerForTest(store)

	rec := postJSON(t, handler.Login, "/auth/login", models.LoginRequest{
		Identifier: "alice@example.com",
		Password:   "secret123",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")
}
