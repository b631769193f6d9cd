package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec signs sessions into compact JWTs and verifies them on the way back.
// Expiry is enforced here, at decode time; the store never re-checks
// timestamps itself.
type Codec struct {
	secret []byte
	maxAge time.Duration
}

// NewCodec creates a codec signing with HMAC-SHA256.
func NewCodec(secret string, maxAge time.Duration) *Codec {
	return &Codec{secret: []byte(secret), maxAge: maxAge}
}

// MaxAge returns the absolute session lifetime.
func (c *Codec) MaxAge() time.Duration {
	return c.maxAge
}

type sessionClaims struct {
	Session
	jwt.RegisteredClaims
}

// Encode signs the session into a token expiring after the codec's max age.
func (c *Codec) Encode(s *Session) (string, error) {
	now := time.Now()

	claims := sessionClaims{
		Session: *s,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.maxAge)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies signature and expiry and returns the embedded session.
// Tampered or expired tokens yield an error.
func (c *Codec) Decode(token string) (*Session, error) {
	var claims sessionClaims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedSigningMethod
		}

		return c.secret, nil
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return &claims.Session, nil
}
