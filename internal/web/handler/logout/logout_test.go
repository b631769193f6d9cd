package logout

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"

	"github.com/go-rbac-admin/go-rbac-admin/internal/cache"
	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	"github.com/go-rbac-admin/go-rbac-admin/internal/rbac"
	"github.com/go-rbac-admin/go-rbac-admin/internal/session"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
)

func TestGet_TearsDownSessionAndClearsCache(t *testing.T) {
	var backendSawLogout bool
	var backendAuth string

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/logout" {
			backendSawLogout = true
			backendAuth = r.Header.Get("Authorization")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(backend.Close)

	api := rbac.New(backend.URL, 5*time.Second)
	codec := session.NewCodec("logout-test-secret", time.Hour)
	store := session.NewStore(api, codec, "rbac_session", false)
	c := cache.New(memory.New(), time.Minute)
	c.Set("u1", "users", "page=1", []string{"cached"})
	c.Set("u2", "users", "page=1", []string{"other session"})

	deps := &handler.Deps{
		Cfg:      &config.Config{Title: "RBAC Admin"},
		Store:    store,
		API:      api,
		Cache:    c,
		Validate: handler.NewValidator(),
	}

	app := fiber.New()

	var s Service
	if err := s.Init(app, deps); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	token, err := codec.Encode(&session.Session{UserID: "u1", AccessToken: "at-999"})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, Path, nil)
	req.AddCookie(&http.Cookie{Name: "rbac_session", Value: token})

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}

	if loc := resp.Header.Get("Location"); loc != handler.LoginPath {
		t.Fatalf("expected redirect to %s, got %s", handler.LoginPath, loc)
	}

	if !backendSawLogout {
		t.Fatal("expected backend logout call")
	}

	if backendAuth != "Bearer at-999" {
		t.Fatalf("expected bearer token on backend logout, got %q", backendAuth)
	}

	// cookie must be expired
	setCookie := resp.Header.Get("Set-Cookie")
	if !strings.Contains(setCookie, "rbac_session=") || !strings.Contains(strings.ToLower(setCookie), "expires") {
		t.Fatalf("expected expiring session cookie, got %q", setCookie)
	}

	// cached identity data must be gone
	var out []string
	if c.Get("u1", "users", "page=1", &out) {
		t.Fatal("cache must be cleared on logout")
	}

	// another identity's cache survives this logout
	if !c.Get("u2", "users", "page=1", &out) {
		t.Fatal("other sessions' cache entries must survive")
	}
}

func TestGet_WithoutSession_StillRedirects(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("backend must not be called without a session")
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(backend.Close)

	api := rbac.New(backend.URL, 5*time.Second)
	codec := session.NewCodec("logout-test-secret", time.Hour)

	deps := &handler.Deps{
		Cfg:      &config.Config{Title: "RBAC Admin"},
		Store:    session.NewStore(api, codec, "rbac_session", false),
		API:      api,
		Cache:    cache.New(memory.New(), time.Minute),
		Validate: handler.NewValidator(),
	}

	app := fiber.New()

	var s Service
	if err := s.Init(app, deps); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path, nil), -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}
}
