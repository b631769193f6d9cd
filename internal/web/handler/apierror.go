package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/go-rbac-admin/go-rbac-admin/internal/rbac"
)

// HandleAPIError is the single reaction point for failed backend calls
// issued from page handlers.
//
// A 401 means the access token is no longer usable: the session cookie
// is torn down, the identity's cached backend data is dropped, and the
// browser is sent to the login page. Because teardown removes the cookie, a repeated 401
// cannot trigger a second teardown cycle.
//
// Every other failure keeps the session, queues the user-facing message
// as a flash, and returns to fallbackPath.
func HandleAPIError(c *fiber.Ctx, deps *Deps, err error, fallbackPath string) error {
	if rbac.IsUnauthenticated(err) {
		log.Info().Str("path", c.Path()).Msg("backend rejected token, ending session")

		sess := deps.Store.Current(c)

		deps.Store.Teardown(c)

		if sess != nil {
			deps.Cache.Clear(sess.UserID)
		}

		return c.Redirect(LoginPath, fiber.StatusFound)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("backend request failed")

	SetFlash(c, FlashError, rbac.UserMessage(err))

	return c.Redirect(fallbackPath, fiber.StatusFound)
}

// BackendFieldErrors flattens backend validation failures into per-field
// messages, or nil when the error carries none.
func BackendFieldErrors(err error) map[string]string {
	fields := rbac.FieldErrors(err)
	if len(fields) == 0 {
		return nil
	}

	out := make(map[string]string, len(fields))
	for _, fe := range fields {
		out[fe.Field] = fe.Message
	}

	return out
}
