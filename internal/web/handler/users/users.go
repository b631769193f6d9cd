// Package users provides the user management pages: paginated listing,
// create/edit forms, delete confirmation and the role assignment checklist.
package users

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/go-rbac-admin/go-rbac-admin/internal/rbac"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/navigation"
)

const (
	// Path is the path to the user management pages.
	Path = handler.UsersPath

	// Resource is the cache resource key for user data.
	Resource = "users"

	listTemplate   = "users/list"
	formTemplate   = "users/form"
	assignTemplate = "users/assign"
	deleteTemplate = "users/delete"
)

// Service is the users handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the users handler.
var Handler = Service{}

// Init initializes the users handler.
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
		router.Get("/:id/roles", s.AssignForm)
		router.Post("/:id/roles", s.Assign)
	})

	return nil
}

// listPage is the cache value for one rendered page of the user table.
type listPage struct {
	Users []rbac.User
	Meta  *rbac.Meta
}

// List renders the paginated user table.
func (s *Service) List(c *fiber.Ctx) error {
	params := handler.ListParamsFromQuery(c)
	query := params.Values().Encode()
	owner := handler.CacheOwner(c, s.deps)

	var page listPage
	if !s.deps.Cache.Get(owner, Resource, query, &page) {
		users, meta, err := s.deps.Store.Client(c).ListUsers(c.Context(), params)
		if err != nil {
			return handler.HandleAPIError(c, s.deps, err, handler.DashboardPath)
		}

		page = listPage{Users: users, Meta: meta}
		s.deps.Cache.Set(owner, Resource, query, page)
	}

	nav := navigation.NewContext("Users", "dashboard", "users").
		AddBreadcrumb("Dashboard", handler.DashboardPath, false).
		AddBreadcrumb("Users", Path, true)

	data := handler.ViewData(c, s.deps, nav)
	data["Users"] = page.Users
	data["Pagination"] = handler.NewPagination(page.Meta, params)

	return c.Render(listTemplate, data, handler.BaseLayout)
}

// New renders the empty creation form.
func (s *Service) New(c *fiber.Ctx) error {
	nav := navigation.NewContext("Create User", "dashboard", "users").
		AddBreadcrumb("Users", Path, false).
		AddBreadcrumb("Create", Path+"/new", true)

	data := handler.ViewData(c, s.deps, nav)
	data["Form"] = &userForm{IsActive: true}

	return c.Render(formTemplate, data, handler.BaseLayout)
}

type userForm struct {
	ID        string `form:"-"`
	Email     string `form:"email"     validate:"required,email"`
	Password  string `form:"password"  validate:"omitempty,password"`
	FirstName string `form:"firstName" validate:"required,min=2,max=50"`
	LastName  string `form:"lastName"  validate:"required,min=2,max=50"`
	AvatarURL string `form:"avatarUrl" validate:"omitempty,url"`
	IsActive  bool   `form:"isActive"`
}

// Create submits a new user and invalidates the cached user lists.
func (s *Service) Create(c *fiber.Ctx) error {
	form := new(userForm)

	if err := c.BodyParser(form); err != nil {
		return s.renderForm(c, form, map[string]string{"": "Invalid form data"})
	}

	if form.Password == "" {
		return s.renderForm(c, form, map[string]string{"password": "This field is required"})
	}

	if err := s.deps.Validate.Struct(form); err != nil {
		return s.renderForm(c, form, handler.ValidationMessages(err))
	}

	_, err := s.deps.Store.Client(c).CreateUser(c.Context(), rbac.CreateUserInput{
		Email:     form.Email,
		Password:  form.Password,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		AvatarURL: form.AvatarURL,
	})
	if err != nil {
		if fields := handler.BackendFieldErrors(err); fields != nil {
			return s.renderForm(c, form, fields)
		}

		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	s.deps.Cache.Invalidate(Resource)
	handler.SetFlash(c, handler.FlashSuccess, "User created")

	return c.Redirect(Path, fiber.StatusFound)
}

// Edit renders the edit form seeded with the current user.
func (s *Service) Edit(c *fiber.Ctx) error {
	user, err := s.deps.Store.Client(c).GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	nav := navigation.NewContext("Edit User", "dashboard", "users").
		AddBreadcrumb("Users", Path, false).
		AddBreadcrumb(user.Email, "", true)

	data := handler.ViewData(c, s.deps, nav)
	data["Form"] = &userForm{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AvatarURL: user.AvatarURL,
		IsActive:  user.IsActive,
	}

	return c.Render(formTemplate, data, handler.BaseLayout)
}

// Update patches the user's editable fields. The email is immutable and
// never sent.
func (s *Service) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	form := new(userForm)

	if err := c.BodyParser(form); err != nil {
		return s.renderForm(c, form, map[string]string{"": "Invalid form data"})
	}

	form.ID = id

	if err := s.deps.Validate.StructPartial(form, "FirstName", "LastName", "AvatarURL"); err != nil {
		return s.renderForm(c, form, handler.ValidationMessages(err))
	}

	_, err := s.deps.Store.Client(c).UpdateUser(c.Context(), id, rbac.UpdateUserInput{
		FirstName: &form.FirstName,
		LastName:  &form.LastName,
		AvatarURL: &form.AvatarURL,
		IsActive:  &form.IsActive,
	})
	if err != nil {
		if fields := handler.BackendFieldErrors(err); fields != nil {
			return s.renderForm(c, form, fields)
		}

		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	s.deps.Cache.Invalidate(Resource)
	handler.SetFlash(c, handler.FlashSuccess, "User updated")

	return c.Redirect(Path, fiber.StatusFound)
}

// ConfirmDelete renders the confirmation page with the dependent role count.
func (s *Service) ConfirmDelete(c *fiber.Ctx) error {
	user, err := s.deps.Store.Client(c).GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	nav := navigation.NewContext("Delete User", "dashboard", "users").
		AddBreadcrumb("Users", Path, false).
		AddBreadcrumb(user.Email, "", true)

	data := handler.ViewData(c, s.deps, nav)
	data["User"] = user
	data["RoleCount"] = len(user.Roles)

	return c.Render(deleteTemplate, data, handler.BaseLayout)
}

// Delete removes the user after confirmation. The dependent-count warning
// never blocks the action, the backend guards against unsafe cascades.
func (s *Service) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := s.deps.Store.Client(c).DeleteUser(c.Context(), id); err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	log.Info().Str("user_id", id).Msg("user deleted")

	s.deps.Cache.Invalidate(Resource)
	handler.SetFlash(c, handler.FlashSuccess, "User deleted")

	return c.Redirect(Path, fiber.StatusFound)
}

// AssignForm renders the role checklist seeded with the user's current
// assignments.
func (s *Service) AssignForm(c *fiber.Ctx) error {
	api := s.deps.Store.Client(c)

	user, err := api.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	roles, _, err := api.ListRoles(c.Context(), rbac.ListParams{Page: 1, Limit: handler.MaxPageSize})
	if err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	assigned := make(map[string]bool, len(user.Roles))
	for _, r := range user.Roles {
		assigned[r.ID] = true
	}

	nav := navigation.NewContext("Assign Roles", "dashboard", "users").
		AddBreadcrumb("Users", Path, false).
		AddBreadcrumb(user.Email, "", true)

	data := handler.ViewData(c, s.deps, nav)
	data["User"] = user
	data["Roles"] = roles
	data["Assigned"] = assigned

	return c.Render(assignTemplate, data, handler.BaseLayout)
}

// Assign replaces the user's role set with the checked entries in one call.
func (s *Service) Assign(c *fiber.Ctx) error {
	id := c.Params("id")

	form := struct {
		RoleIDs []string `form:"roleIds"`
	}{}

	if err := c.BodyParser(&form); err != nil {
		handler.SetFlash(c, handler.FlashError, "Invalid form data")

		return c.Redirect(Path+"/"+id+"/roles", fiber.StatusFound)
	}

	if _, err := s.deps.Store.Client(c).AssignRoles(c.Context(), id, form.RoleIDs); err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	s.deps.Cache.Invalidate(Resource)
	handler.SetFlash(c, handler.FlashSuccess, "Roles updated")

	return c.Redirect(Path, fiber.StatusFound)
}

func (s *Service) renderForm(c *fiber.Ctx, form *userForm, fields map[string]string) error {
	title := "Create User"
	if form.ID != "" {
		title = "Edit User"
	}

	nav := navigation.NewContext(title, "dashboard", "users").
		AddBreadcrumb("Users", Path, false).
		AddBreadcrumb(title, "", true)

	data := handler.ViewData(c, s.deps, nav)
	data["Form"] = form
	data["Fields"] = fields

	if msg, ok := fields[""]; ok {
		data["error"] = msg
	}

	return c.Render(formTemplate, data, handler.BaseLayout)
}
