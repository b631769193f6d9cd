package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestFlash_RoundTripAndOneShot(t *testing.T) {
	app := fiber.New()

	app.Get("/set", func(c *fiber.Ctx) error {
		SetFlash(c, FlashSuccess, "Role created")

		return c.SendStatus(http.StatusOK)
	})

	var first *Flash

	app.Get("/take", func(c *fiber.Ctx) error {
		first = TakeFlash(c)

		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil), -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	_ = resp.Body.Close()

	var cookie *http.Cookie

	for _, ck := range resp.Cookies() {
		if ck.Name == "flash" {
			cookie = ck
		}
	}

	if cookie == nil {
		t.Fatal("expected flash cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/take", nil)
	req.AddCookie(cookie)

	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	_ = resp.Body.Close()

	if first == nil || first.Kind != FlashSuccess || first.Message != "Role created" {
		t.Fatalf("unexpected flash: %+v", first)
	}

	// response must expire the cookie
	cleared := false

	for _, ck := range resp.Cookies() {
		if ck.Name == "flash" && ck.Value == "" {
			cleared = true
		}
	}

	if !cleared {
		t.Fatal("expected flash cookie cleared after take")
	}
}

func TestTakeFlash_NoCookie(t *testing.T) {
	app := fiber.New()

	var got *Flash

	app.Get("/", func(c *fiber.Ctx) error {
		got = TakeFlash(c)

		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	_ = resp.Body.Close()

	if got != nil {
		t.Fatalf("expected nil flash, got %+v", got)
	}
}

func TestFlash_MessageWithSeparator(t *testing.T) {
	app := fiber.New()

	app.Get("/set", func(c *fiber.Ctx) error {
		SetFlash(c, FlashError, "a|b|c")

		return c.SendStatus(http.StatusOK)
	})

	var got *Flash

	app.Get("/take", func(c *fiber.Ctx) error {
		got = TakeFlash(c)

		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil), -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	_ = resp.Body.Close()

	req := httptest.NewRequest(http.MethodGet, "/take", nil)

	for _, ck := range resp.Cookies() {
		if ck.Name == "flash" {
			req.AddCookie(ck)
		}
	}

	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	_ = resp.Body.Close()

	if got == nil || got.Kind != FlashError || got.Message != "a|b|c" {
		t.Fatalf("separator must survive inside the message, got %+v", got)
	}
}
