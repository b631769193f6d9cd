package dashboard

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
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

type captureViews struct {
	data fiber.Map
}

func (*captureViews) Load() error { return nil }

func (v *captureViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if m, ok := data.(fiber.Map); ok {
		v.data = m
	}

	_, _ = io.WriteString(w, name)

	return nil
}

func newTestDeps(backendURL string) *handler.Deps {
	api := rbac.New(backendURL, 5*time.Second)
	codec := session.NewCodec("dashboard-test-secret", time.Hour)

	return &handler.Deps{
		Cfg:      &config.Config{Title: "RBAC Admin"},
		Store:    session.NewStore(api, codec, "rbac_session", false),
		API:      api,
		Cache:    cache.New(memory.New(), time.Minute),
		Validate: handler.NewValidator(),
	}
}

func adminCookie(t *testing.T, perms []string) *http.Cookie {
	t.Helper()

	codec := session.NewCodec("dashboard-test-secret", time.Hour)

	token, err := codec.Encode(&session.Session{
		UserID:      "u1",
		Email:       "admin@rbac.com",
		Roles:       []string{"admin"},
		Permissions: perms,
		AccessToken: "at-1",
	})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	return &http.Cookie{Name: "rbac_session", Value: token}
}

func listEnvelope(total int) string {
	return `{"success":true,"data":[],"meta":{"total":` + strconv.Itoa(total) +
		`,"page":1,"limit":1,"totalPages":` + strconv.Itoa(total) + `}}`
}

func TestGet_CountsOnlyReadableResources(t *testing.T) {
	hits := map[string]int{}

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits[r.URL.Path]++

		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/users":
			_, _ = io.WriteString(w, listEnvelope(57))
		case "/roles":
			_, _ = io.WriteString(w, listEnvelope(4))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"success":false,"message":"Resource not found"}`)
		}
	}))
	t.Cleanup(backend.Close)

	views := &captureViews{}
	app := fiber.New(fiber.Config{Views: views})
	deps := newTestDeps(backend.URL)

	var s Service
	if err := s.Init(app, deps); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	// no permissions:read, so that card is skipped and the API never asked
	req := httptest.NewRequest(http.MethodGet, Path, nil)
	req.AddCookie(adminCookie(t, []string{"users:read", "roles:read"}))

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	stats, ok := views.data["Stats"].(Stats)
	if !ok {
		t.Fatalf("expected Stats in view data, got %T", views.data["Stats"])
	}

	if stats.Users != 57 || stats.Roles != 4 || stats.Permissions != -1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if hits["/permissions"] != 0 {
		t.Fatal("permissions endpoint must not be called without read permission")
	}
}

func TestGet_SecondLoadServedFromCache(t *testing.T) {
	var userCalls int

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users" {
			userCalls++
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, listEnvelope(12))
	}))
	t.Cleanup(backend.Close)

	app := fiber.New(fiber.Config{Views: &captureViews{}})
	deps := newTestDeps(backend.URL)

	var s Service
	if err := s.Init(app, deps); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, Path, nil)
		req.AddCookie(adminCookie(t, []string{"users:read"}))

		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("app.Test failed: %v", err)
		}

		_ = resp.Body.Close()
	}

	if userCalls != 1 {
		t.Fatalf("expected 1 backend call with warm cache, got %d", userCalls)
	}
}

func TestGet_401ClearsSessionAndRedirectsOnce(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"success":false,"message":"Please log in to continue"}`)
	}))
	t.Cleanup(backend.Close)

	app := fiber.New(fiber.Config{Views: &captureViews{}})
	deps := newTestDeps(backend.URL)

	var s Service
	if err := s.Init(app, deps); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, Path, nil)
	req.AddCookie(adminCookie(t, []string{"users:read"}))

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

	// the session cookie is expired in the same response
	found := false

	for _, ck := range resp.Cookies() {
		if ck.Name == "rbac_session" && ck.Value == "" {
			found = true
		}
	}

	if !found {
		t.Fatal("expected session cookie teardown on 401")
	}
}
