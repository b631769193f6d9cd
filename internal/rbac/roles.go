package rbac

import (
	"context"
)

// ListRoles fetches a page of roles.
func (c *Client) ListRoles(ctx context.Context, params ListParams) ([]Role, *Meta, error) {
	var roles []Role

	meta, err := c.get(ctx, "/roles", params.Values(), &roles)
	if err != nil {
		return nil, nil, err
	}

	return roles, meta, nil
}

// GetRole fetches a single role by id, including its permissions.
func (c *Client) GetRole(ctx context.Context, id string) (*Role, error) {
	var role Role
	if _, err := c.get(ctx, "/roles/"+id, nil, &role); err != nil {
		return nil, err
	}

	return &role, nil
}

// CreateRole creates a role.
func (c *Client) CreateRole(ctx context.Context, input CreateRoleInput) (*Role, error) {
	var role Role
	if err := c.post(ctx, "/roles", input, &role); err != nil {
		return nil, err
	}

	return &role, nil
}

// UpdateRole patches a role.
func (c *Client) UpdateRole(ctx context.Context, id string, input UpdateRoleInput) (*Role, error) {
	var role Role
	if err := c.patch(ctx, "/roles/"+id, input, &role); err != nil {
		return nil, err
	}

	return &role, nil
}

// DeleteRole removes a role. The backend guards against unsafe cascades;
// the console only warns about assigned users beforehand.
func (c *Client) DeleteRole(ctx context.Context, id string) error {
	return c.delete(ctx, "/roles/"+id, nil)
}

// AssignPermissions replaces the role's full permission set in one call.
func (c *Client) AssignPermissions(ctx context.Context, id string, permissionIDs []string) (*Role, error) {
	body := map[string][]string{"permissionIds": permissionIDs}

	var role Role
	if err := c.post(ctx, "/roles/"+id+"/permissions", body, &role); err != nil {
		return nil, err
	}

	return &role, nil
}

// AddPermission attaches a single permission to a role.
func (c *Client) AddPermission(ctx context.Context, id, permissionID string) (*Role, error) {
	body := map[string]string{"permissionId": permissionID}

	var role Role
	if err := c.post(ctx, "/roles/"+id+"/permissions/add", body, &role); err != nil {
		return nil, err
	}

	return &role, nil
}

// RemovePermission detaches a single permission from a role.
func (c *Client) RemovePermission(ctx context.Context, id, permissionID string) (*Role, error) {
	var role Role
	if err := c.delete(ctx, "/roles/"+id+"/permissions/"+permissionID, &role); err != nil {
		return nil, err
	}

	return &role, nil
}
