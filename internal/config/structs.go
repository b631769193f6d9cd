package config

import (
	"time"

	"github.com/go-rbac-admin/go-rbac-admin/internal/logger"
)

// Session settings for the signed session cookie.
type Session struct {
	CookieName string        // name of the session cookie
	Secret     string        // HMAC signing secret for the session token
	ExpiryTime time.Duration // absolute session lifetime
}

// Backend holds connection settings for the external RBAC backend service.
type Backend struct {
	URL       string        // internal base URL, e.g. http://localhost:5000/api/v1
	PublicURL string        // public-facing base URL (reverse proxy variant)
	Timeout   time.Duration // per-request timeout for backend calls
	CacheTTL  time.Duration // lifetime of cached list/detail responses
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	Log       logger.Log
	Webserver Webserver
	Backend   Backend
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	DisableRecover bool    // disable recover middleware
	Session        Session // session settings
}
