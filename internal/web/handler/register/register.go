package register

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/go-rbac-admin/go-rbac-admin/internal/rbac"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
)

const (
	// Path is the path to the self registration page.
	Path = handler.RegisterPath

	// TemplateName is the name of the registration template.
	TemplateName = "register"
)

// Service is the registration handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the registration handler.
var Handler = Service{}

// Init initializes the registration handler.
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

// Get handles the registration page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.deps.Cfg.Title,
	})
}

type registerForm struct {
	FirstName       string `form:"firstName"       validate:"required,min=2,max=50"`
	LastName        string `form:"lastName"        validate:"required,min=2,max=50"`
	Email           string `form:"email"           validate:"required,email"`
	Password        string `form:"password"        validate:"required,password"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
}

// Post handles the registration form submission. A fresh account starts
// without a session: the browser is sent to the login page to sign in.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(registerForm)

	if err := c.BodyParser(form); err != nil {
		return s.render(c, form, map[string]string{"": "Invalid form data"})
	}

	if err := s.deps.Validate.Struct(form); err != nil {
		return s.render(c, form, handler.ValidationMessages(err))
	}

	_, err := s.deps.API.Register(c.Context(), rbac.RegisterInput{
		Email:     form.Email,
		Password:  form.Password,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		log.Info().Str("email", form.Email).Msg("registration rejected")

		return s.render(c, form, map[string]string{"": rbac.UserMessage(err)})
	}

	handler.SetFlash(c, handler.FlashSuccess, "Account created. Please log in.")

	return c.Redirect(handler.LoginPath, fiber.StatusFound)
}

func (s *Service) render(c *fiber.Ctx, form *registerForm, fields map[string]string) error {
	data := fiber.Map{
		"Title":     s.deps.Cfg.Title,
		"FirstName": form.FirstName,
		"LastName":  form.LastName,
		"Email":     form.Email,
		"Fields":    fields,
	}

	if msg, ok := fields[""]; ok {
		data["error"] = msg
	}

	return c.Render(TemplateName, data)
}
