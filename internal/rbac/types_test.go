package rbac

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_UnmarshalJSON_ObjectAndString(t *testing.T) {
	var user User

	// mixed role shapes in a single payload must normalize to one shape
	payload := `{
		"id": "u1",
		"email": "a@b.c",
		"roles": ["viewer", {"id": "r2", "name": "admin", "description": "full access"}]
	}`

	err := json.Unmarshal([]byte(payload), &user)
	assert.NoError(t, err)
	assert.Len(t, user.Roles, 2)
	assert.Equal(t, "viewer", user.Roles[0].Name)
	assert.Empty(t, user.Roles[0].ID)
	assert.Equal(t, "admin", user.Roles[1].Name)
	assert.Equal(t, "r2", user.Roles[1].ID)
	assert.Equal(t, []string{"viewer", "admin"}, user.RoleNames())
}

func TestRole_AssignedUsers(t *testing.T) {
	r := Role{UserCount: 3}
	assert.Equal(t, 3, r.AssignedUsers())

	r = Role{Counts: &RoleCounts{UserRoles: 5, Permissions: 2}}
	assert.Equal(t, 5, r.AssignedUsers())
	assert.Equal(t, 2, r.AssignedPermissions())

	r = Role{}
	assert.Zero(t, r.AssignedUsers())
}

func TestPermission_ReferencingRoles(t *testing.T) {
	p := Permission{Counts: &PermissionCounts{Roles: 4}}
	assert.Equal(t, 4, p.ReferencingRoles())

	p = Permission{}
	assert.Zero(t, p.ReferencingRoles())
}

func TestListParams_Values_OmitsZeroValues(t *testing.T) {
	v := ListParams{}.Values()
	assert.Empty(t, v)

	v = ListParams{Page: 1, Limit: 10}.Values()
	assert.Equal(t, "1", v.Get("page"))
	assert.Equal(t, "10", v.Get("limit"))
	assert.Empty(t, v.Get("search"))
}
