package users

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsersStorage struct {
	users map[string]*models.User
}

func (s *fakeUsersStorage) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := s.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, storage.ErrNotFound
}

func (s *fakeUsersStorage) List(_ context.Context, f filters.Filters) ([]models.User, int, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (s *fakeUsersStorage) Update(_ context.Context, user *models.User) (*models.User, error) {
	for name, existing := range s.users {
		if existing.ID == user.ID {
			delete(s.users, name)
			copied := *user
			s.users[user.Username] = &copied
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeUsersStorage) Delete(_ context.Context, username string) error {
	if _, ok := s.users[username]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, username)
	return nil
}

func newTestService() (*UserService, *fakeUsersStorage) {
	store := &fakeUsersStorage{users: map[string]*models.User{
		"alice": {ID: 1, Username: "alice", Email: "alice@example.com", Role: models.RoleUser},
	}}
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), store), store
}

func strPtr(s string) *string { return &s }

func TestUpdateIgnoresRoleWithoutPermission(t *testing.T) {
	svc, store := newTestService()
	updated, err := svc.Update(
		context.Background(),
		"alice",
		UpdateParams{Bio: strPtr("hi"), Role: strPtr(models.RoleAdmin)},
		false,
	)
	require.NoError(t, err)
	assert.Equal(t, "hi", updated.Bio)
	assert.Equal(t, models.RoleUser, updated.Role)
	assert.Equal(t, models.RoleUser, store.users["alice"].Role)
}

func TestUpdateAppliesRoleForAdminPath(t *testing.T) {
	svc, _ := newTestService()
	updated, err := svc.Update(
		context.Background(),
		"alice",
		UpdateParams{Role: strPtr(models.RoleModerator)},
		true,
	)
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, updated.Role)
}

func TestGetUnknownUser(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDelete(t *testing.T) {
	svc, store := newTestService()
	require.NoError(t, svc.Delete(context.Background(), "alice"))
	assert.Empty(t, store.users)
	assert.ErrorIs(t, svc.Delete(context.Background(), "alice"), ErrUserNotFound)
}
