package permissions

import (
	"net/http"
	"reviewhub/proj/internal/domain/models"
)

// IsAdmin reports whether the user has full administrative access.
// Either the admin role or the staff flag suffices.
func IsAdmin(u *models.User) bool {
	if u.IsAnonymous() {
		return false
	}
	return u.IsStaff || u.Role == models.RoleAdmin
}

func IsModerator(u *models.User) bool {
	if u.IsAnonymous() {
		return false
	}
	return u.Role == models.RoleModerator
}

// IsSafeMethod reports whether the request method cannot mutate state.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// CanModifyMessage is the object-level check for reviews and comments:
// the author may edit their own, moderators and admins may edit anything.
func CanModifyMessage(u *models.User, authorID int64) bool {
	if u.IsAnonymous() {
		return false
	}
	return u.ID == authorID || IsModerator(u) || IsAdmin(u)
}

// CanManageCatalog gates writes to titles, categories and genres.
// Catalog resources have no author, so there is no ownership path.
func CanManageCatalog(u *models.User) bool {
	return IsAdmin(u)
}

// CanManageUsers gates the /users collection (listing, editing others,
// assigning roles).
func CanManageUsers(u *models.User) bool {
	return IsAdmin(u)
}
