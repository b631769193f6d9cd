package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/go-rbac-admin/go-rbac-admin/internal/cache"
	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	"github.com/go-rbac-admin/go-rbac-admin/internal/rbac"
	"github.com/go-rbac-admin/go-rbac-admin/internal/session"
)

// Deps bundles what every page handler works with: the config, the session
// store, the backend API client, the response cache and the form validator.
type Deps struct {
	Cfg      *config.Config
	Store    *session.Store
	API      *rbac.Client
	Cache    *cache.Cache
	Validate *validator.Validate
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps) error
}
