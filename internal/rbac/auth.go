package rbac

import (
	"context"
)

// Login exchanges credentials for the user and its token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var result LoginResult
	if err := c.post(ctx, "/auth/login", body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Register creates a new account through self registration.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*User, error) {
	var wrapper struct {
		User User `json:"user"`
	}

	if err := c.post(ctx, "/auth/register", input, &wrapper); err != nil {
		return nil, err
	}

	return &wrapper.User, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if _, err := c.get(ctx, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateProfile patches the authenticated user's own profile fields.
func (c *Client) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*User, error) {
	var user User
	if err := c.patch(ctx, "/auth/profile", input, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ChangePassword changes the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}

	return c.post(ctx, "/auth/change-password", body, nil)
}

// Logout invalidates the session server side.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// RefreshToken exchanges a refresh token for a fresh token pair.
// Note: the console treats a 401 as terminal and never calls this in the
// request path; it exists for completeness of the auth surface.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*LoginResult, error) {
	body := map[string]string{"refreshToken": refreshToken}

	var result LoginResult
	if err := c.post(ctx, "/auth/refresh-token", body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
