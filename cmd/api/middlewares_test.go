package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/services"
	"reviewhub/proj/internal/services/auth"
	"reviewhub/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserStorage struct {
	user *models.User
}

func (s *stubUserStorage) Get(_ context.Context, id int64) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, storage.ErrNotFound
}

func (s *stubUserStorage) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, storage.ErrNotFound
}

func (s *stubUserStorage) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, storage.ErrNotFound
}

func (s *stubUserStorage) Insert(_ context.Context, username, email, role string) (*models.User, error) {
	return nil, storage.ErrConflict
}

func (s *stubUserStorage) SetConfirmationCode(_ context.Context, id int64, code string) error {
	s.user.ConfirmationCode = code
	return nil
}

func newAuthedApp(t *testing.T, user *models.User) *Application {
	t.Helper()
	app := NewTestApplication(&services.Services{}, t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app.services.Auth = auth.New(log, app.cfg.Auth, &stubUserStorage{user: user}, nil)
	return app
}

func requestWithUser(user *models.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(context.WithValue(req.Context(), CtxKeyUser, user))
}

func TestAuthenticate(t *testing.T) {
	user := &models.User{
		ID:               1,
		Username:         "booklover",
		Email:            "booklover@example.com",
		Role:             models.RoleUser,
		ConfirmationCode: "ABC123",
	}
	app := newAuthedApp(t, user)

	var actor *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = app.contextGetUser(r)
	})

	t.Run("no header resolves anonymous", func(t *testing.T) {
		actor = nil
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		app.Authenticate(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, actor)
		assert.True(t, actor.IsAnonymous())
	})

	t.Run("malformed header", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		app.Authenticate(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		app.Authenticate(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token resolves user", func(t *testing.T) {
		token, err := app.services.Auth.ExchangeCode(context.Background(), user.Username, "ABC123")
		require.NoError(t, err)
		actor = nil
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		app.Authenticate(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, actor)
		assert.Equal(t, user.Username, actor.Username)
	})
}

func TestRequireAuthenticatedUser(t *testing.T) {
	app := NewTestApplication(nil, t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		rr := httptest.NewRecorder()
		app.requireAuthenticatedUser(next).ServeHTTP(rr, requestWithUser(models.AnonymousUser))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("authenticated passes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		user := &models.User{ID: 1, Username: "booklover", Role: models.RoleUser}
		app.requireAuthenticatedUser(next).ServeHTTP(rr, requestWithUser(user))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	app := NewTestApplication(nil, t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name     string
		user     *models.User
		wantCode int
	}{
		{"anonymous", models.AnonymousUser, http.StatusUnauthorized},
		{"plain user", &models.User{ID: 1, Role: models.RoleUser}, http.StatusForbidden},
		{"moderator", &models.User{ID: 2, Role: models.RoleModerator}, http.StatusForbidden},
		{"admin role", &models.User{ID: 3, Role: models.RoleAdmin}, http.StatusOK},
		{"staff", &models.User{ID: 4, Role: models.RoleUser, IsStaff: true}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			app.requireAdmin(next).ServeHTTP(rr, requestWithUser(tc.user))
			assert.Equal(t, tc.wantCode, rr.Code)
		})
	}
}
