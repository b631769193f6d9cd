package rbac

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

// User represents a user account as delivered by the backend.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Roles         []Role    `json:"roles,omitempty"`
	Permissions   []string  `json:"permissions,omitempty"`
}

// RoleNames returns the names of the user's roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}

	return names
}

// RoleCounts carries the backend's reference counters for a role.
type RoleCounts struct {
	UserRoles   int `json:"userRoles"`
	Permissions int `json:"permissions"`
}

// Role represents a named bundle of permissions.
type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Permissions []Permission `json:"permissions,omitempty"`
	Counts      *RoleCounts  `json:"_count,omitempty"`

	UserCount       int `json:"userCount"`
	PermissionCount int `json:"permissionCount"`
}

// UnmarshalJSON accepts both a full role object and a bare role name string.
// Some backend payloads (profile display) deliver roles as plain strings;
// normalizing here keeps every caller on one canonical shape.
func (r *Role) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}

		*r = Role{Name: name}

		return nil
	}

	type plain Role

	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	*r = Role(p)

	return nil
}

// AssignedUsers returns the number of users holding this role,
// preferring the explicit counter over the _count block.
func (r *Role) AssignedUsers() int {
	if r.UserCount > 0 {
		return r.UserCount
	}

	if r.Counts != nil {
		return r.Counts.UserRoles
	}

	return 0
}

// AssignedPermissions returns the number of permissions attached to this role.
func (r *Role) AssignedPermissions() int {
	if r.PermissionCount > 0 {
		return r.PermissionCount
	}

	if r.Counts != nil {
		return r.Counts.Permissions
	}

	return len(r.Permissions)
}

// PermissionCounts carries the backend's reference counters for a permission.
type PermissionCounts struct {
	Roles int `json:"roles"`
}

// Permission represents a resource:action access right.
type Permission struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Resource    string            `json:"resource"`
	Action      string            `json:"action"`
	Description string            `json:"description,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Counts      *PermissionCounts `json:"_count,omitempty"`
}

// ReferencingRoles returns the number of roles carrying this permission.
func (p *Permission) ReferencingRoles() int {
	if p.Counts != nil {
		return p.Counts.Roles
	}

	return 0
}

// Meta is the pagination block of a list response.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// ListParams are the query parameters accepted by every list endpoint.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// Values encodes the parameters as a URL query, omitting zero values.
func (p ListParams) Values() url.Values {
	v := url.Values{}

	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}

	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}

	if p.Search != "" {
		v.Set("search", p.Search)
	}

	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
	}

	if p.SortOrder != "" {
		v.Set("sortOrder", p.SortOrder)
	}

	return v
}

// CreateUserInput is the payload for creating a user.
type CreateUserInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// UpdateUserInput is the partial payload for editing a user.
// Nil fields are left untouched by the backend.
type UpdateUserInput struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// UpdateProfileInput is the partial payload for editing the caller's own profile.
type UpdateProfileInput struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// RegisterInput is the payload for self registration.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CreateRoleInput is the payload for creating a role.
type CreateRoleInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateRoleInput is the partial payload for editing a role.
type UpdateRoleInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreatePermissionInput is the payload for creating a permission.
// The permission name is derived server side as resource:action.
type CreatePermissionInput struct {
	Resource    string `json:"resource"`
	Action      string `json:"action"`
	Description string `json:"description,omitempty"`
}

// UpdatePermissionInput is the partial payload for editing a permission.
type UpdatePermissionInput struct {
	Resource    *string `json:"resource,omitempty"`
	Action      *string `json:"action,omitempty"`
	Description *string `json:"description,omitempty"`
}

// LoginResult is the credential exchange result.
type LoginResult struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
