package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/go-rbac-admin/go-rbac-admin/internal/session"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
)

// guardExempt lists path prefixes the guard never touches: assets,
// operational endpoints and the logout action.
var guardExempt = []string{
	"/static",
	"/metrics",
	"/checkalive",
	"/favicon.ico",
	handler.LogoutPath,
}

// publicOnly pages are for unauthenticated visitors; an established
// session gets bounced to the dashboard instead.
var publicOnly = []string{
	handler.LoginPath,
	handler.RegisterPath,
}

func isPublicOnly(path string) bool {
	for _, p := range publicOnly {
		if path == p {
			return true
		}
	}

	return false
}

// Decide returns the redirect target for a request, or "" when the
// request may pass. The checks are ordered: missing session on any
// non-public page wins over everything else, so an unauthenticated
// visit to "/" lands on the login page rather than falling through.
// An established session is kept off the public-only pages and the
// bare root resolves to the dashboard.
func Decide(hasSession bool, path string) string {
	switch {
	case !hasSession && !isPublicOnly(path):
		return handler.LoginPath
	case hasSession && path == handler.RootPath:
		return handler.DashboardPath
	case hasSession && isPublicOnly(path):
		return handler.DashboardPath
	default:
		return ""
	}
}

// Guard returns the middleware enforcing session-based page access.
func Guard(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		for _, prefix := range guardExempt {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		if target := Decide(store.Current(c) != nil, path); target != "" {
			return c.Redirect(target, fiber.StatusFound)
		}

		return c.Next()
	}
}
