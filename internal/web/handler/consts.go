package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path of the route group.
	RootPath = "/"

	// LoginPath is the login page path.
	LoginPath = "/login"

	// RegisterPath is the self registration page path.
	RegisterPath = "/register"

	// LogoutPath is the logout action path.
	LogoutPath = "/logout"

	// DashboardPath is the main authenticated area path.
	DashboardPath = "/dashboard"

	// UsersPath is the user management page path.
	UsersPath = DashboardPath + "/users"

	// RolesPath is the role management page path.
	RolesPath = DashboardPath + "/roles"

	// PermissionsPath is the permission management page path.
	PermissionsPath = DashboardPath + "/permissions"

	// ProfilePath is the own-profile page path.
	ProfilePath = DashboardPath + "/profile"

	// ErrNilDepsFatalLogMsg is used if the app or deps pointer is nil.
	ErrNilDepsFatalLogMsg = "app or deps is nil"

	// DefaultPageSize is the default number of rows per list page.
	DefaultPageSize = 10

	// MaxPageSize caps the rows per list page.
	MaxPageSize = 100
)
