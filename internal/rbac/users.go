package rbac

import (
	"context"
)

// ListUsers fetches a page of users.
func (c *Client) ListUsers(ctx context.Context, params ListParams) ([]User, *Meta, error) {
	var users []User

	meta, err := c.get(ctx, "/users", params.Values(), &users)
	if err != nil {
		return nil, nil, err
	}

	return users, meta, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if _, err := c.get(ctx, "/users/"+id, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// CreateUser creates a user account.
func (c *Client) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	var user User
	if err := c.post(ctx, "/users", input, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateUser patches a user. The email is immutable and not part of the input.
func (c *Client) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*User, error) {
	var user User
	if err := c.patch(ctx, "/users/"+id, input, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/users/"+id, nil)
}

// AssignRoles replaces the user's full role set in one call.
func (c *Client) AssignRoles(ctx context.Context, id string, roleIDs []string) (*User, error) {
	body := map[string][]string{"roleIds": roleIDs}

	var user User
	if err := c.post(ctx, "/users/"+id+"/roles", body, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// RemoveRole removes a single role from a user.
func (c *Client) RemoveRole(ctx context.Context, id, roleID string) (*User, error) {
	var user User
	if err := c.delete(ctx, "/users/"+id+"/roles/"+roleID, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// UserPermissions fetches the user's effective permission strings
// (the union over its roles, computed server side).
func (c *Client) UserPermissions(ctx context.Context, id string) ([]string, error) {
	var permissions []string
	if _, err := c.get(ctx, "/users/"+id+"/permissions", nil, &permissions); err != nil {
		return nil, err
	}

	return permissions, nil
}
