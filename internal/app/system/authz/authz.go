// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/danahub/internal/app/system/auth"
)

// UserCtx returns the current user's role, name, ID and a found flag.
// With no signed-in user it returns RoleNone, "", "", false.
func UserCtx(r *http.Request) (role Role, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return RoleNone, "", "", false
	}
	return ParseRole(user.Role), user.Name, user.ID, true
}

// RoleOf returns the current request's role (RoleNone when signed out).
func RoleOf(r *http.Request) Role {
	role, _, _, _ := UserCtx(r)
	return role
}

// CanDeleteRequest reports whether the current request's user may delete.
func CanDeleteRequest(r *http.Request) bool {
	return CanDelete(RoleOf(r))
}

// HasAnyRole reports whether the current request's user has any of the given roles.
func HasAnyRole(r *http.Request, roles ...Role) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == want && want != RoleNone {
			return true
		}
	}
	return false
}
