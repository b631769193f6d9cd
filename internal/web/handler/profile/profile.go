// Package profile provides the own-profile page: viewing the identity with
// its roles and permissions, editing profile fields and changing the
// password. A profile edit is merged into the session without
// re-authentication.
package profile

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/go-rbac-admin/go-rbac-admin/internal/authz"
	"github.com/go-rbac-admin/go-rbac-admin/internal/rbac"
	"github.com/go-rbac-admin/go-rbac-admin/internal/session"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/navigation"
)

const (
	// Path is the path to the own-profile page.
	Path = handler.ProfilePath

	// TemplateName is the name of the profile template.
	TemplateName = "profile/profile"
)

// Service is the profile handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the profile handler.
var Handler = Service{}

// Init initializes the profile handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, s.Update)
		router.Post("/password", s.ChangePassword)
	})

	return nil
}

// Get renders the profile page with the identity card, the editable form
// and the roles/permissions overview.
func (s *Service) Get(c *fiber.Ctx) error {
	user, err := s.deps.Store.Client(c).Profile(c.Context())
	if err != nil {
		return handler.HandleAPIError(c, s.deps, err, handler.DashboardPath)
	}

	nav := navigation.NewContext("Profile", "dashboard", "profile").
		AddBreadcrumb("Dashboard", handler.DashboardPath, false).
		AddBreadcrumb("Profile", Path, true)

	data := handler.ViewData(c, s.deps, nav)
	data["User"] = user
	data["FullName"] = authz.FullName(user.FirstName, user.LastName)

	return c.Render(TemplateName, data, handler.BaseLayout)
}

type profileForm struct {
	FirstName string `form:"firstName" validate:"required,min=2,max=50"`
	LastName  string `form:"lastName"  validate:"required,min=2,max=50"`
	AvatarURL string `form:"avatarUrl" validate:"omitempty,url"`
}

// Update patches the profile on the backend and merges the result into the
// session, so the header shows the new name on the very next render.
func (s *Service) Update(c *fiber.Ctx) error {
	form := new(profileForm)

	if err := c.BodyParser(form); err != nil {
		handler.SetFlash(c, handler.FlashError, "Invalid form data")

		return c.Redirect(Path, fiber.StatusFound)
	}

	if err := s.deps.Validate.Struct(form); err != nil {
		msgs := handler.ValidationMessages(err)
		for _, msg := range msgs {
			handler.SetFlash(c, handler.FlashError, msg)

			break
		}

		return c.Redirect(Path, fiber.StatusFound)
	}

	_, err := s.deps.Store.Client(c).UpdateProfile(c.Context(), rbac.UpdateProfileInput{
		FirstName: &form.FirstName,
		LastName:  &form.LastName,
		AvatarURL: &form.AvatarURL,
	})
	if err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	if _, err := s.deps.Store.Update(c, session.ProfileUpdate{
		FirstName: &form.FirstName,
		LastName:  &form.LastName,
		AvatarURL: &form.AvatarURL,
	}); err != nil {
		log.Error().Err(err).Msg("failed to merge profile edit into session")
	}

	handler.SetFlash(c, handler.FlashSuccess, "Profile updated")

	return c.Redirect(Path, fiber.StatusFound)
}

type passwordForm struct {
	CurrentPassword string `form:"currentPassword" validate:"required"`
	NewPassword     string `form:"newPassword"     validate:"required,password"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// ChangePassword submits a password change. The session stays valid, the
// backend rotates credentials without invalidating the access token.
func (s *Service) ChangePassword(c *fiber.Ctx) error {
	form := new(passwordForm)

	if err := c.BodyParser(form); err != nil {
		handler.SetFlash(c, handler.FlashError, "Invalid form data")

		return c.Redirect(Path, fiber.StatusFound)
	}

	if err := s.deps.Validate.Struct(form); err != nil {
		msgs := handler.ValidationMessages(err)
		for _, msg := range msgs {
			handler.SetFlash(c, handler.FlashError, msg)

			break
		}

		return c.Redirect(Path, fiber.StatusFound)
	}

	err := s.deps.Store.Client(c).ChangePassword(c.Context(), form.CurrentPassword, form.NewPassword)
	if err != nil {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	handler.SetFlash(c, handler.FlashSuccess, "Password changed")

	return c.Redirect(Path, fiber.StatusFound)
}
