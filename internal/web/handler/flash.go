package handler

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "flash"

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot notification surfaced on the next rendered page,
// the console's stand-in for a toast.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// SetFlash queues a notification for the next page render.
func SetFlash(c *fiber.Ctx, kind, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		MaxAge:   60,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// TakeFlash reads and clears the queued notification, if any.
func TakeFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}

	kind, message, found := strings.Cut(decoded, "|")
	if !found {
		return &Flash{Kind: "info", Message: decoded}
	}

	return &Flash{Kind: kind, Message: message}
}
