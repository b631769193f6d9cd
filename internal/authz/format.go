package authz

import (
	"strings"
)

// FormatPermission turns a permission string into readable text,
// e.g. "users:create" becomes "Create users".
func FormatPermission(permission string) string {
	resource, action, found := strings.Cut(permission, ":")
	if !found || action == "" {
		return permission
	}

	return strings.ToUpper(action[:1]) + action[1:] + " " + resource
}

// Initials returns the avatar initials for a name pair, "U" when both are empty.
func Initials(firstName, lastName string) string {
	var b strings.Builder

	if firstName != "" {
		b.WriteString(strings.ToUpper(firstName[:1]))
	}

	if lastName != "" {
		b.WriteString(strings.ToUpper(lastName[:1]))
	}

	if b.Len() == 0 {
		return "U"
	}

	return b.String()
}

// FullName joins a name pair, falling back to "Unknown User".
func FullName(firstName, lastName string) string {
	name := strings.TrimSpace(firstName + " " + lastName)
	if name == "" {
		return "Unknown User"
	}

	return name
}
