// Package roles provides the role management pages: paginated listing,
// create/edit forms, delete confirmation with the assigned-user warning and
// the grouped permission checklist.
package roles

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/go-rbac-admin/go-rbac-admin/internal/rbac"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/navigation"
)

const (
	// Path is the path to the role management pages.
	Path = handler.RolesPath

	// Resource is the cache resource key for role data.
	Resource = "roles"

	listTemplate   = "roles/list"
	formTemplate   = "roles/form"
	assignTemplate = "roles/assign"
	deleteTemplate = "roles/delete"
)

// Service is the roles handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the roles handler.
var Handler = Service{}

// Init initializes the roles handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.List)
		router.Get("/new", s.New)
		router.Post(handler.RootPath, s.Create)
		router.Get("/:id/edit", s.Edit)
		router.Post("/:id", s.Update)
		router.Get("/:id/delete", s.ConfirmDelete)
		router.Post("/:id/delete", s.Delete)
		router.Get("/:id/permissions", s.AssignForm)
		router.Post("/:id/permissions", s.Assign)
	})

	return nil
}

type listPage struct {
	Roles []rbac.Role
	Meta  *rbac.Meta
}

// List renders the paginated role table.
func (s *Service) List(c *fiber.Ctx) error {
	params := handler.ListParamsFromQuery(c)
	query := params.Values().Encode()
	owner := handler.CacheOwner(c, s.deps)

	var page listPage
	if !s.deps.Cache.Get(owner, Resource, query, &page) {
		roles, meta, err := s.deps.Store.Client(c).ListRoles(c.Context(), params)
		if err != nil {
			return handler.HandleAPIError(c, s.deps, err, handler.DashboardPath)
		}

		page = listPage{Roles: roles, Meta: meta}
		s.deps.Cache.Set(owner, Resource, query, page)
	}

	nav := navigation.NewContext("Roles", "dashboard", "roles").
		AddBreadcrumb("Dashboard", handler.DashboardPath, false).
		AddBreadcrumb("Roles", Path, true)

	data := handler.ViewData(c, s.deps, nav)
	data["Roles"] = page.Roles
	data["Pagination"] = handler.NewPagination(page.Meta, params)

	return c.Render(listTemplate, data, handler.BaseLayout)
}

// New renders the empty creation form.
func (s *Service) New(c *fiber.Ctx) error {
	nav := navigation.NewContext("Create Role", "dashboard", "roles").
		AddBreadcrumb("Roles", Path, false).
		AddBreadcrumb("Create", Path+"/new", true)

	data := handler.ViewData(c, s.deps, nav)
	data["Form"] = &roleForm{}

	return c.Render(formTemplate, data, handler.BaseLayout)
}

type roleForm struct {
	ID          string `form:"-"`
	Name        string `form:"name"        validate:"required,min=2,max=50"`
	Description string `form:"description" validate:"max=200"`
}

// Create submits a new role and invalidates the cached role lists.
func (s *Service) Create(c *fiber.Ctx) error {
	form := new(roleForm)

	if err := c.BodyParser(form); err != nil {
		return s.renderForm(c, form, map[string]string{"": "Invalid form data"})
	}

	if err := s.deps.Validate.Struct(form); err != nil {
		return s.renderForm(c, form, handler.ValidationMessages(err))
	}

	_, err := s.deps.Store.Client(c).CreateRole(c.Context(), rbac.CreateRoleInput{
		Name:        form.Name,
		Description: form.Description,
	})
	if err != nil {
		if fields := handler.BackendFieldErrors(err); fields != nil {
			return s.renderForm(c, form, fields)
		}

		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	s.deps.Cache.Invalidate(Resource)
	handler.SetFlash(c, handler.FlashSuccess, "Role created")

	return c.Redirect(Path, fiber.StatusFound)
}

// Edit renders the edit form seeded with the current role.
func (s *Service) Edit(c *fiber.Ctx) error {
	role, err := s.deps.Store.Client(c).GetRole(c.Context(), c.Params("id"))
	if err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	nav := navigation.NewContext("Edit Role", "dashboard", "roles").
		AddBreadcrumb("Roles", Path, false).
		AddBreadcrumb(role.Name, "", true)

	data := handler.ViewData(c, s.deps, nav)
	data["Form"] = &roleForm{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
	}

	return c.Render(formTemplate, data, handler.BaseLayout)
}

// Update patches the role's name and description.
func (s *Service) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	form := new(roleForm)

	if err := c.BodyParser(form); err != nil {
		return s.renderForm(c, form, map[string]string{"": "Invalid form data"})
	}

	form.ID = id

	if err := s.deps.Validate.Struct(form); err != nil {
		return s.renderForm(c, form, handler.ValidationMessages(err))
	}

	_, err := s.deps.Store.Client(c).UpdateRole(c.Context(), id, rbac.UpdateRoleInput{
		Name:        &form.Name,
		Description: &form.Description,
	})
	if err != nil {
		if fields := handler.BackendFieldErrors(err); fields != nil {
			return s.renderForm(c, form, fields)
		}

		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	s.deps.Cache.Invalidate(Resource)
	handler.SetFlash(c, handler.FlashSuccess, "Role updated")

	return c.Redirect(Path, fiber.StatusFound)
}

// ConfirmDelete renders the confirmation page. The assigned-user count is
// shown as a warning but never blocks the delete, the backend is the guard
// against unsafe cascades.
func (s *Service) ConfirmDelete(c *fiber.Ctx) error {
	role, err := s.deps.Store.Client(c).GetRole(c.Context(), c.Params("id"))
	if err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	nav := navigation.NewContext("Delete Role", "dashboard", "roles").
		AddBreadcrumb("Roles", Path, false).
		AddBreadcrumb(role.Name, "", true)

	data := handler.ViewData(c, s.deps, nav)
	data["Role"] = role
	data["UserCount"] = role.AssignedUsers()

	return c.Render(deleteTemplate, data, handler.BaseLayout)
}

// Delete removes the role after confirmation.
func (s *Service) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := s.deps.Store.Client(c).DeleteRole(c.Context(), id); err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	log.Info().Str("role_id", id).Msg("role deleted")

	s.deps.Cache.Invalidate(Resource)
	handler.SetFlash(c, handler.FlashSuccess, "Role deleted")

	return c.Redirect(Path, fiber.StatusFound)
}

// AssignForm renders the permission checklist grouped by resource, seeded
// with the role's current assignments.
func (s *Service) AssignForm(c *fiber.Ctx) error {
	api := s.deps.Store.Client(c)

	role, err := api.GetRole(c.Context(), c.Params("id"))
	if err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	grouped, err := api.GroupedPermissions(c.Context())
	if err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	assigned := make(map[string]bool, len(role.Permissions))
	for _, p := range role.Permissions {
		assigned[p.ID] = true
	}

	nav := navigation.NewContext("Manage Permissions", "dashboard", "roles").
		AddBreadcrumb("Roles", Path, false).
		AddBreadcrumb(role.Name, "", true)

	data := handler.ViewData(c, s.deps, nav)
	data["Role"] = role
	data["Grouped"] = grouped
	data["Assigned"] = assigned

	return c.Render(assignTemplate, data, handler.BaseLayout)
}

// Assign replaces the role's permission set with the checked entries in one
// call.
func (s *Service) Assign(c *fiber.Ctx) error {
	id := c.Params("id")

	form := struct {
		PermissionIDs []string `form:"permissionIds"`
	}{}

	if err := c.BodyParser(&form); err != nil {
		handler.SetFlash(c, handler.FlashError, "Invalid form data")

		return c.Redirect(Path+"/"+id+"/permissions", fiber.StatusFound)
	}

	if _, err := s.deps.Store.Client(c).AssignPermissions(c.Context(), id, form.PermissionIDs); err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	s.deps.Cache.Invalidate(Resource)
	handler.SetFlash(c, handler.FlashSuccess, "Permissions updated")

	return c.Redirect(Path, fiber.StatusFound)
}

func (s *Service) renderForm(c *fiber.Ctx, form *roleForm, fields map[string]string) error {
	title := "Create Role"
	if form.ID != "" {
		title = "Edit Role"
	}

	nav := navigation.NewContext(title, "dashboard", "roles").
		AddBreadcrumb("Roles", Path, false).
		AddBreadcrumb(title, "", true)

	data := handler.ViewData(c, s.deps, nav)
	data["Form"] = form
	data["Fields"] = fields

	if msg, ok := fields[""]; ok {
		data["error"] = msg
	}

	return c.Render(formTemplate, data, handler.BaseLayout)
}
