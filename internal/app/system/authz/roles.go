// internal/app/system/authz/roles.go
package authz

import "strings"

// Role is the caller's access level. The zero value, RoleNone, stands for an
// absent or unrecognized role tag and grants nothing.
type Role string

const (
	RoleNone     Role = ""
	RoleAdmin    Role = "admin"
	RoleHeadMonk Role = "headmonk"
	RoleHelper   Role = "helper"
	RoleMember   Role = "member"
)

// ParseRole maps a session role tag onto a Role. Matching ignores case and
// surrounding space; "administrator" and "head-monk"/"head_monk" are accepted
// spellings. Anything else is RoleNone.
func ParseRole(tag string) Role {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "admin", "administrator":
		return RoleAdmin
	case "headmonk", "head-monk", "head_monk", "head monk":
		return RoleHeadMonk
	case "helper":
		return RoleHelper
	case "member":
		return RoleMember
	}
	return RoleNone
}

// CanDelete reports whether role may perform a destructive mutation.
func CanDelete(role Role) bool {
	switch role {
	case RoleAdmin, RoleHeadMonk, RoleHelper:
		return true
	}
	return false
}

// DisplayName is the profile label for the role. Unknown roles display as Member.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleHeadMonk:
		return "Head Monk"
	case RoleHelper:
		return "Helper"
	}
	return "Member"
}
