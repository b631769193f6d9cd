package session

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/go-rbac-admin/go-rbac-admin/internal/rbac"
)

// Store is the single source of truth for "who is the current actor and what
// can they do". It is an injectable object: handlers receive it from the web
// service and tests substitute one with a throwaway codec and a fake backend.
type Store struct {
	codec      *Codec
	api        *rbac.Client
	cookieName string
	secure     bool
}

// NewStore creates a session store.
func NewStore(api *rbac.Client, codec *Codec, cookieName string, secure bool) *Store {
	return &Store{
		codec:      codec,
		api:        api,
		cookieName: cookieName,
		secure:     secure,
	}
}

// CookieName returns the name of the session cookie.
func (st *Store) CookieName() string {
	return st.cookieName
}

// Establish exchanges credentials with the backend and, on success, builds
// a session from the returned user and token pair. Nothing is persisted on
// failure; the backend's message (e.g. "Invalid credentials") is carried in
// the returned error.
func (st *Store) Establish(ctx context.Context, email, password string) (*Session, error) {
	result, err := st.api.Login(ctx, email, password)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return FromLogin(result), nil
}

// FromLogin normalizes a backend login result into a session. Role shapes
// (name strings or role objects) have already been canonicalized by the
// client's decoder, so only names are carried from here on.
func FromLogin(result *rbac.LoginResult) *Session {
	user := result.User

	s := &Session{
		UserID:        user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Name:          displayName(user.FirstName, user.LastName),
		AvatarURL:     user.AvatarURL,
		EmailVerified: user.EmailVerified,
		Roles:         user.RoleNames(),
		Permissions:   user.Permissions,
		AccessToken:   result.AccessToken,
		RefreshToken:  result.RefreshToken,
	}

	if s.Roles == nil {
		s.Roles = []string{}
	}

	if s.Permissions == nil {
		s.Permissions = []string{}
	}

	return s
}

// Current returns the session carried by the request, or nil before
// establishment, after teardown, or when the token is expired or tampered.
// Each call decodes the cookie fresh; callers must not cache the result past
// a single request.
func (st *Store) Current(c *fiber.Ctx) *Session {
	cookie := c.Cookies(st.cookieName)
	if cookie == "" {
		return nil
	}

	s, err := st.codec.Decode(cookie)
	if err != nil {
		log.Debug().Err(err).Msg("session cookie rejected")
		return nil
	}

	return s
}

// Write signs the session and sets the cookie on the response.
func (st *Store) Write(c *fiber.Ctx, s *Session) error {
	token, err := st.codec.Encode(s)
	if err != nil {
		return err //nolint:wrapcheck
	}

	c.Cookie(&fiber.Cookie{
		Name:     st.cookieName,
		Value:    token,
		MaxAge:   int(st.codec.MaxAge().Seconds()),
		Secure:   st.secure,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return nil
}

// Update shallow-merges profile fields into the current session and re-signs
// it, without requiring re-authentication.
func (st *Store) Update(c *fiber.Ctx, u ProfileUpdate) (*Session, error) {
	s := st.Current(c)
	if s == nil {
		return nil, ErrNoSession
	}

	s.Apply(u)

	if err := st.Write(c, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Teardown invalidates the session cookie. Callers also drop cached backend
// data belonging to the prior identity (see the cache package's Clear).
// fasthttp only writes max-age for positive values, so expiry is signalled
// with an Expires timestamp in the past.
func (st *Store) Teardown(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     st.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Secure:   st.secure,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// Client returns the request scoped backend client carrying the session's
// access token, or the unauthenticated client when no session is present.
func (st *Store) Client(c *fiber.Ctx) *rbac.Client {
	if s := st.Current(c); s != nil {
		return st.api.WithToken(s.AccessToken)
	}

	return st.api
}
