package authz

// Permission constants define the permission strings known to the console.
// They are opaque resource:action identifiers compared by exact match; the
// backend owns the authoritative set and may grow it without a UI change.
const (
	// PermUsersCreate allows creating user accounts.
	PermUsersCreate = "users:create"
	// PermUsersRead allows listing and viewing users.
	PermUsersRead = "users:read"
	// PermUsersUpdate allows editing users and their role assignments.
	PermUsersUpdate = "users:update"
	// PermUsersDelete allows deleting users.
	PermUsersDelete = "users:delete"

	// PermRolesCreate allows creating roles.
	PermRolesCreate = "roles:create"
	// PermRolesRead allows listing and viewing roles.
	PermRolesRead = "roles:read"
	// PermRolesUpdate allows editing roles and their permission assignments.
	PermRolesUpdate = "roles:update"
	// PermRolesDelete allows deleting roles.
	PermRolesDelete = "roles:delete"

	// PermPermissionsCreate allows creating permissions.
	PermPermissionsCreate = "permissions:create"
	// PermPermissionsRead allows listing and viewing permissions.
	PermPermissionsRead = "permissions:read"
	// PermPermissionsUpdate allows editing permissions.
	PermPermissionsUpdate = "permissions:update"
	// PermPermissionsDelete allows deleting permissions.
	PermPermissionsDelete = "permissions:delete"
)
