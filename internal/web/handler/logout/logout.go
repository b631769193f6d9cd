package logout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
)

// Path is the path of the logout action.
const Path = handler.LogoutPath

// Service is the logout handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, s.Get)
	})

	return nil
}

// Get tears down the session and sends the browser to the login page.
// The backend is told first so it can invalidate the token pair; a failure
// there does not keep the local session alive.
func (s *Service) Get(c *fiber.Ctx) error {
	sess := s.deps.Store.Current(c)

	if sess != nil {
		if err := s.deps.Store.Client(c).Logout(c.Context()); err != nil {
			log.Warn().Err(err).Msg("backend logout failed")
		}
	}

	s.deps.Store.Teardown(c)

	if sess != nil {
		s.deps.Cache.Clear(sess.UserID)
	}

	return c.Redirect(handler.LoginPath, fiber.StatusFound)
}
