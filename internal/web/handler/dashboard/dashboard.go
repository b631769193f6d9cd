// Package dashboard provides the landing page of the authenticated area with
// per-resource stat cards.
package dashboard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/go-rbac-admin/go-rbac-admin/internal/authz"
	"github.com/go-rbac-admin/go-rbac-admin/internal/rbac"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.DashboardPath

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"
)

// Stats holds the resource totals shown on the stat cards.
type Stats struct {
	Users       int
	Roles       int
	Permissions int

	// Sessions counts active sessions. The backend exposes no session
	// listing, so this is the viewer's own session.
	Sessions int
}

// Service is the dashboard handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps

	app.Get(Path, s.Get)

	return nil
}

// Get renders the dashboard. Totals come from the list endpoints' meta
// blocks and are cached per resource; only resources the actor may read
// are counted, the other cards are hidden by the template. A 401 ends the
// session; any other backend failure hides the affected card instead of
// redirecting, the dashboard is the fallback target of every other page.
func (s *Service) Get(c *fiber.Ctx) error {
	sess := s.deps.Store.Current(c)
	api := s.deps.Store.Client(c)

	stats := Stats{Users: -1, Roles: -1, Permissions: -1, Sessions: 1}

	probe := rbac.ListParams{Page: 1, Limit: 1}

	var loadErr error

	owner := ""
	if sess != nil {
		owner = sess.UserID
	}

	load := func(allowed bool, resource string, target *int) error {
		if !allowed {
			return nil
		}

		total, err := s.total(c, api, owner, resource, probe)
		if err != nil {
			loadErr = err

			return err
		}

		*target = total

		return nil
	}

	if err := load(authz.HasPermission(sess, authz.PermUsersRead), "users", &stats.Users); rbac.IsUnauthenticated(err) {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	if err := load(authz.HasPermission(sess, authz.PermRolesRead), "roles", &stats.Roles); rbac.IsUnauthenticated(err) {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	if err := load(authz.HasPermission(sess, authz.PermPermissionsRead), "permissions", &stats.Permissions); rbac.IsUnauthenticated(err) {
		return handler.HandleAPIError(c, s.deps, err, Path)
	}

	nav := navigation.NewContext("Dashboard", "dashboard", "overview").
		AddBreadcrumb("Dashboard", Path, true)

	data := handler.ViewData(c, s.deps, nav)
	data["Stats"] = stats

	if loadErr != nil {
		log.Error().Err(loadErr).Msg("failed to load dashboard stats")

		data["error"] = rbac.UserMessage(loadErr)
	}

	return c.Render(TemplateName, data, handler.BaseLayout)
}

// total resolves a resource count, preferring the value the same identity
// cached earlier.
func (s *Service) total(c *fiber.Ctx, api *rbac.Client, owner, resource string, probe rbac.ListParams) (int, error) {
	query := probe.Values().Encode()

	var cached int
	if s.deps.Cache.Get(owner, resource, "total?"+query, &cached) {
		return cached, nil
	}

	var meta *rbac.Meta

	var err error

	switch resource {
	case "users":
		_, meta, err = api.ListUsers(c.Context(), probe)
	case "roles":
		_, meta, err = api.ListRoles(c.Context(), probe)
	case "permissions":
		_, meta, err = api.ListPermissions(c.Context(), probe)
	}

	if err != nil {
		return 0, err
	}

	total := 0
	if meta != nil {
		total = meta.Total
	}

	s.deps.Cache.Set(owner, resource, "total?"+query, total)

	return total, nil
}
