// Package session holds the authenticated actor's identity between requests.
// The session lives in a signed, expiring cookie; it carries the backend's
// access and refresh tokens plus the flattened role and permission lists the
// UI needs for conditional rendering.
package session

// Session is the client held record of the authenticated actor.
// Role names and permission strings are normalized flat lists; permission
// strings are opaque resource:action identifiers compared by exact match.
type Session struct {
	UserID        string   `json:"uid"`
	Email         string   `json:"email"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Name          string   `json:"name,omitempty"`
	AvatarURL     string   `json:"avatarUrl,omitempty"`
	EmailVerified bool     `json:"emailVerified"`
	Roles         []string `json:"roles"`
	Permissions   []string `json:"permissions"`
	AccessToken   string   `json:"accessToken"`
	RefreshToken  string   `json:"refreshToken"`
}

// ProfileUpdate is a partial set of profile fields merged into an existing
// session after a profile edit, without re-authentication.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	AvatarURL *string
}

// Apply shallow-merges the non-nil fields into the session and refreshes
// the derived display name.
func (s *Session) Apply(u ProfileUpdate) {
	if u.FirstName != nil {
		s.FirstName = *u.FirstName
	}

	if u.LastName != nil {
		s.LastName = *u.LastName
	}

	if u.AvatarURL != nil {
		s.AvatarURL = *u.AvatarURL
	}

	s.Name = displayName(s.FirstName, s.LastName)
}

func displayName(firstName, lastName string) string {
	switch {
	case firstName == "" && lastName == "":
		return ""
	case lastName == "":
		return firstName
	case firstName == "":
		return lastName
	default:
		return firstName + " " + lastName
	}
}
