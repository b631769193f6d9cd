package session

import "errors"

var (
	// ErrInvalidToken is returned when a session token fails verification.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrUnexpectedSigningMethod is returned when a token is signed with
	// anything other than the HMAC family the codec issues.
	ErrUnexpectedSigningMethod = errors.New("unexpected session token signing method")

	// ErrNoSession is returned when an operation requires an established
	// session and none is present.
	ErrNoSession = errors.New("no session established")
)
