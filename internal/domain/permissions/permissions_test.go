package permissions

import (
	"net/http"
	"reviewhub/proj/internal/domain/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	assert.False(t, IsAdmin(models.AnonymousUser))
	assert.False(t, IsAdmin(&models.User{ID: 1, Role: models.RoleUser}))
	assert.False(t, IsAdmin(&models.User{ID: 1, Role: models.RoleModerator}))
	assert.True(t, IsAdmin(&models.User{ID: 1, Role: models.RoleAdmin}))
	// the staff flag grants admin on its own
	assert.True(t, IsAdmin(&models.User{ID: 1, Role: models.RoleUser, IsStaff: true}))
}

func TestCanModifyMessage(t *testing.T) {
	const authorID = 42
	cases := []struct {
		name string
		user *models.User
		want bool
	}{
		{"anonymous", models.AnonymousUser, false},
		{"author", &models.User{ID: authorID, Role: models.RoleUser}, true},
		{"other user", &models.User{ID: 7, Role: models.RoleUser}, false},
		{"moderator", &models.User{ID: 7, Role: models.RoleModerator}, true},
		{"admin", &models.User{ID: 7, Role: models.RoleAdmin}, true},
		{"staff", &models.User{ID: 7, Role: models.RoleUser, IsStaff: true}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanModifyMessage(tc.user, authorID))
		})
	}
}

func TestCanManageCatalog(t *testing.T) {
	assert.False(t, CanManageCatalog(&models.User{ID: 7, Role: models.RoleModerator}))
	assert.True(t, CanManageCatalog(&models.User{ID: 7, Role: models.RoleAdmin}))
	assert.False(t, CanManageCatalog(models.AnonymousUser))
}

func TestIsSafeMethod(t *testing.T) {
	assert.True(t, IsSafeMethod(http.MethodGet))
	assert.True(t, IsSafeMethod(http.MethodHead))
	assert.False(t, IsSafeMethod(http.MethodPost))
	assert.False(t, IsSafeMethod(http.MethodPatch))
	assert.False(t, IsSafeMethod(http.MethodDelete))
}
