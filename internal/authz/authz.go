// Package authz implements the advisory authorization predicates.
// They are pure membership tests over the session's flattened permission and
// role lists, used to decide what the UI shows; the backend remains the
// actual enforcement point for every call.
package authz

import (
	"github.com/go-rbac-admin/go-rbac-admin/internal/session"
)

// HasPermission reports whether the session carries the exact permission
// string. A nil session never has a permission.
func HasPermission(s *session.Session, permission string) bool {
	if s == nil {
		return false
	}

	for _, p := range s.Permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// HasAnyPermission reports whether the session carries at least one of the
// given permissions.
func HasAnyPermission(s *session.Session, permissions []string) bool {
	if s == nil {
		return false
	}

	for _, p := range permissions {
		if HasPermission(s, p) {
			return true
		}
	}

	return false
}

// HasAllPermissions reports whether the session carries every one of the
// given permissions. An empty list is vacuously satisfied by any non-nil
// session.
func HasAllPermissions(s *session.Session, permissions []string) bool {
	if s == nil {
		return false
	}

	for _, p := range permissions {
		if !HasPermission(s, p) {
			return false
		}
	}

	return true
}

// HasRole reports whether the session carries the exact role name.
func HasRole(s *session.Session, role string) bool {
	if s == nil {
		return false
	}

	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}

	return false
}

// HasAnyRole reports whether the session carries at least one of the given
// role names.
func HasAnyRole(s *session.Session, roles []string) bool {
	if s == nil {
		return false
	}

	for _, r := range roles {
		if HasRole(s, r) {
			return true
		}
	}

	return false
}
