// Package daemon wires the configured building blocks together: logging,
// the backend client, the session store, the response cache and the web
// service.
package daemon

import (
	"strconv"

	"github.com/gofiber/storage/memory/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/go-rbac-admin/go-rbac-admin/internal/cache"
	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	"github.com/go-rbac-admin/go-rbac-admin/internal/logger"
	"github.com/go-rbac-admin/go-rbac-admin/internal/rbac"
	"github.com/go-rbac-admin/go-rbac-admin/internal/session"
	"github.com/go-rbac-admin/go-rbac-admin/internal/uniuri"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	addr := ":" + strconv.Itoa(d.cfg.Webserver.Port)

	log.Info().Str("addr", addr).Msg("starting web service")

	return errors.Wrap(d.webService.Start(addr), "web service failed")
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}

	secret := cfg.Webserver.Session.Secret
	if secret == "" {
		// only reachable in dev mode, config validation requires a secret
		// otherwise; a random secret invalidates all sessions on restart
		secret = uniuri.NewSecret()

		log.Warn().Msg("dev mode: using a generated session secret, sessions will not survive a restart")
	}

	api := rbac.New(cfg.Backend.URL, cfg.Backend.Timeout)
	codec := session.NewCodec(secret, cfg.Webserver.Session.ExpiryTime)
	store := session.NewStore(api, codec, cfg.Webserver.Session.CookieName, !cfg.DevMode)

	deps := &handler.Deps{
		Cfg:      cfg,
		Store:    store,
		API:      api,
		Cache:    cache.New(memory.New(), cfg.Backend.CacheTTL),
		Validate: handler.NewValidator(),
	}

	return &Daemon{
		cfg:        cfg,
		webService: web.New(deps),
	}, nil
}
