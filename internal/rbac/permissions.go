package rbac

import (
	"context"
)

// ListPermissions fetches a page of permissions.
func (c *Client) ListPermissions(ctx context.Context, params ListParams) ([]Permission, *Meta, error) {
	var permissions []Permission

	meta, err := c.get(ctx, "/permissions", params.Values(), &permissions)
	if err != nil {
		return nil, nil, err
	}

	return permissions, meta, nil
}

// GroupedPermissions fetches all permissions grouped by resource.
func (c *Client) GroupedPermissions(ctx context.Context) (map[string][]Permission, error) {
	grouped := make(map[string][]Permission)
	if _, err := c.get(ctx, "/permissions/grouped", nil, &grouped); err != nil {
		return nil, err
	}

	return grouped, nil
}

// GetPermission fetches a single permission by id.
func (c *Client) GetPermission(ctx context.Context, id string) (*Permission, error) {
	var permission Permission
	if _, err := c.get(ctx, "/permissions/"+id, nil, &permission); err != nil {
		return nil, err
	}

	return &permission, nil
}

// CreatePermission creates a permission from resource, action, and
// description. The backend derives the name as resource:action.
func (c *Client) CreatePermission(ctx context.Context, input CreatePermissionInput) (*Permission, error) {
	var permission Permission
	if err := c.post(ctx, "/permissions", input, &permission); err != nil {
		return nil, err
	}

	return &permission, nil
}

// UpdatePermission patches a permission.
func (c *Client) UpdatePermission(ctx context.Context, id string, input UpdatePermissionInput) (*Permission, error) {
	var permission Permission
	if err := c.patch(ctx, "/permissions/"+id, input, &permission); err != nil {
		return nil, err
	}

	return &permission, nil
}

// DeletePermission removes a permission.
func (c *Client) DeletePermission(ctx context.Context, id string) error {
	return c.delete(ctx, "/permissions/"+id, nil)
}

// ResourceActions fetches the known actions for one resource.
func (c *Client) ResourceActions(ctx context.Context, resource string) ([]string, error) {
	var actions []string
	if _, err := c.get(ctx, "/permissions/resources/"+resource+"/actions", nil, &actions); err != nil {
		return nil, err
	}

	return actions, nil
}
