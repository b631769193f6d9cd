package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/go-rbac-admin/go-rbac-admin/internal/authz"
	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	fiberlogger "github.com/go-rbac-admin/go-rbac-admin/internal/logger/adapter/fiber"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/dashboard"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/login"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/logout"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/permissions"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/profile"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/register"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/roles"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/users"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	s.alive.Store(true)

	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and stops the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration and shared
// handler dependencies.
func New(deps *handler.Deps) *Service {
	if deps == nil || deps.Cfg == nil || deps.Store == nil || deps.API == nil || deps.Cache == nil {
		panic("handler dependencies cannot be nil")
	}

	cfg := deps.Cfg

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// Add template helper functions
	templateEngine.AddFunc("iterate", func(count int) []int {
		result := make([]int, count)
		for i := range result {
			result[i] = i
		}

		return result
	})
	templateEngine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	templateEngine.AddFunc("sub", func(a, b int) int {
		return a - b
	})
	templateEngine.AddFunc("formatPermission", authz.FormatPermission)
	templateEngine.AddFunc("initials", authz.Initials)

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// access logging with per-request IDs
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: "/checkalive",
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     false,
			},
		),
	)

	service := &Service{
		cfg: cfg,
		App: app,
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/checkalive", func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("alive")
	})

	// session-based page access
	app.Use(Guard(deps.Store))

	// init handlers (they register their own routes)
	for _, h := range []handler.Service{
		&login.Handler,
		&register.Handler,
		&logout.Handler,
		&dashboard.Handler,
		&users.Handler,
		&roles.Handler,
		&permissions.Handler,
		&profile.Handler,
	} {
		if err := h.Init(app, deps); err != nil {
			log.Fatal().Err(err).Msg("handler init failed")
		}
	}

	return service
}
