// Package permissions provides the permission management pages. Creation
// takes a resource and an action, the backend derives the resource:action
// name.
package permissions

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/go-rbac-admin/go-rbac-admin/internal/rbac"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/navigation"
)

const (
	// Path is the path to the permission management pages.
	Path = handler.PermissionsPath

	// Resource is the cache resource key for permission data.
	Resource = "permissions"

	listTemplate   = "permissions/list"
	formTemplate   = "permissions/form"
	deleteTemplate = "permissions/delete"
)

// Service is the permissions handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the permissions handler.
var Handler = Service{}

// Init initializes the permissions handler.
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
	})

	return nil
}

type listPage struct {
	Permissions []rbac.Permission
	Meta        *rbac.Meta
}

// List renders the paginated permission table.
func (s *Service) List(c *fiber.Ctx) error {
	params := handler.ListParamsFromQuery(c)
	query := params.Values().Encode()
	owner := handler.CacheOwner(c, s.deps)

	var page listPage
	if !s.deps.Cache.Get(owner, Resource, query, &page) {
		permissions, meta, err := s.deps.Store.Client(c).ListPermissions(c.Context(), params)
		if err != nil {
			return handler.HandleAPIError(c, s.deps, err, handler.DashboardPath)
		}

		page = listPage{Permissions: permissions, Meta: meta}
		s.deps.Cache.Set(owner, Resource, query, page)
	}

	nav := navigation.NewContext("Permissions", "dashboard", "permissions").
		AddBreadcrumb("Dashboard", handler.DashboardPath, false).
		AddBreadcrumb("Permissions", Path, true)

	data := handler.ViewData(c, s.deps, nav)
	data["Permissions"] = page.Permissions
	data["Pagination"] = handler.NewPagination(page.Meta, params)

	return c.Render(listTemplate, data, handler.BaseLayout)
}

// New renders the empty creation form.
func (s *Service) New(c *fiber.Ctx) error {
	nav := navigation.NewContext("Create Permission", "dashboard", "permissions").
		AddBreadcrumb("Permissions", Path, false).
		AddBreadcrumb("Create", Path+"/new", true)

	data := handler.ViewData(c, s.deps, nav)
	data["Form"] = &permissionForm{}

	return c.Render(formTemplate, data, handler.BaseLayout)
}

type permissionForm struct {
	ID          string `form:"-"`
	Resource    string `form:"resource"    validate:"required,min=2,max=50,lowercase"`
	Action      string `form:"action"      validate:"required,min=2,max=50,lowercase"`
	Description string `form:"description" validate:"max=200"`
}

// Create submits a new permission and invalidates the cached lists. The
// displayed name (e.g. users:update) is derived by the backend from the
// resource and action.
func (s *Service) Create(c *fiber.Ctx) error {
	form := new(permissionForm)

	if err := c.BodyParser(form); err != nil {
		return s.renderForm(c, form, map[string]string{"": "Invalid form data"})
	}

	if err := s.deps.Validate.Struct(form); err != nil {
		return s.renderForm(c, form, handler.ValidationMessages(err))
	}

	_, err := s.deps.Store.Client(c).CreatePermission(c.Context(), rbac.CreatePermissionInput{
		Resource:    form.Resource,
		Action:      form.Action,
		Description: form.Description,
	})
	if err != nil {
		if fields := handler.BackendFieldErrors(err); fields != nil {
			return s.renderForm(c, form, fields)
		}

		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	s.deps.Cache.Invalidate(Resource)
	handler.SetFlash(c, handler.FlashSuccess, "Permission created")

	return c.Redirect(Path, fiber.StatusFound)
}

// Edit renders the edit form seeded with the current permission.
func (s *Service) Edit(c *fiber.Ctx) error {
	permission, err := s.deps.Store.Client(c).GetPermission(c.Context(), c.Params("id"))
	if err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	nav := navigation.NewContext("Edit Permission", "dashboard", "permissions").
		AddBreadcrumb("Permissions", Path, false).
		AddBreadcrumb(permission.Name, "", true)

	data := handler.ViewData(c, s.deps, nav)
	data["Form"] = &permissionForm{
		ID:          permission.ID,
		Resource:    permission.Resource,
		Action:      permission.Action,
		Description: permission.Description,
	}

	return c.Render(formTemplate, data, handler.BaseLayout)
}

// Update patches the permission.
func (s *Service) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	form := new(permissionForm)

	if err := c.BodyParser(form); err != nil {
		return s.renderForm(c, form, map[string]string{"": "Invalid form data"})
	}

	form.ID = id

	if err := s.deps.Validate.Struct(form); err != nil {
		return s.renderForm(c, form, handler.ValidationMessages(err))
	}

	_, err := s.deps.Store.Client(c).UpdatePermission(c.Context(), id, rbac.UpdatePermissionInput{
		Resource:    &form.Resource,
		Action:      &form.Action,
		Description: &form.Description,
	})
	if err != nil {
		if fields := handler.BackendFieldErrors(err); fields != nil {
			return s.renderForm(c, form, fields)
		}

		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	s.deps.Cache.Invalidate(Resource)
	handler.SetFlash(c, handler.FlashSuccess, "Permission updated")

	return c.Redirect(Path, fiber.StatusFound)
}

// ConfirmDelete renders the confirmation page with the referencing-role
// count.
func (s *Service) ConfirmDelete(c *fiber.Ctx) error {
	permission, err := s.deps.Store.Client(c).GetPermission(c.Context(), c.Params("id"))
	if err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	nav := navigation.NewContext("Delete Permission", "dashboard", "permissions").
		AddBreadcrumb("Permissions", Path, false).
		AddBreadcrumb(permission.Name, "", true)

	data := handler.ViewData(c, s.deps, nav)
	data["Permission"] = permission
	data["RoleCount"] = permission.ReferencingRoles()

	return c.Render(deleteTemplate, data, handler.BaseLayout)
}

// Delete removes the permission after confirmation.
func (s *Service) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := s.deps.Store.Client(c).DeletePermission(c.Context(), id); err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	log.Info().Str("permission_id", id).Msg("permission deleted")

	s.deps.Cache.Invalidate(Resource)
	handler.SetFlash(c, handler.FlashSuccess, "Permission deleted")

	return c.Redirect(Path, fiber.StatusFound)
}

func (s *Service) renderForm(c *fiber.Ctx, form *permissionForm, fields map[string]string) error {
	title := "Create Permission"
	if form.ID != "" {
		title = "Edit Permission"
	}

	nav := navigation.NewContext(title, "dashboard", "permissions").
		AddBreadcrumb("Permissions", Path, false).
		AddBreadcrumb(title, "", true)

	data := handler.ViewData(c, s.deps, nav)
	data["Form"] = form
	data["Fields"] = fields

	if msg, ok := fields[""]; ok {
		data["error"] = msg
	}

	return c.Render(formTemplate, data, handler.BaseLayout)
}
