package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/go-rbac-admin/go-rbac-admin/internal/rbac"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
)

const (
	// Path is the path to the login page.
	Path = handler.LoginPath

	// TemplateName is the name of the login template.
	TemplateName = "login"
)

// Service is the login handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.deps.Cfg.Title,
		"Flash": handler.TakeFlash(c),
	})
}

type loginForm struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// Post handles the login form submission. On success a session cookie is
// written and the browser is sent to the dashboard; on failure the page is
// re-rendered with the backend's message (e.g. "Invalid credentials").
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(loginForm)

	if err := c.BodyParser(form); err != nil {
		return s.renderError(c, form.Email, "Invalid form data")
	}

	if err := s.deps.Validate.Struct(form); err != nil {
		msgs := handler.ValidationMessages(err)

		return c.Render(TemplateName, fiber.Map{
			"Title":  s.deps.Cfg.Title,
			"Email":  form.Email,
			"Fields": msgs,
		})
	}

	sess, err := s.deps.Store.Establish(c.Context(), form.Email, form.Password)
	if err != nil {
		log.Info().Str("email", form.Email).Msg("login rejected")

		return s.renderError(c, form.Email, rbac.UserMessage(err))
	}

	if err := s.deps.Store.Write(c, sess); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return s.renderError(c, form.Email, "Internal server error")
	}

	return c.Redirect(handler.DashboardPath, fiber.StatusFound)
}

func (s *Service) renderError(c *fiber.Ctx, email, message string) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.deps.Cfg.Title,
		"Email": email,
		"error": message,
	})
}
