package rbac

import (
	"errors"
	"fmt"
	"net/http"
)

// User facing messages for backend failures without a backend supplied message.
const (
	MsgNotFound        = "Resource not found"
	MsgForbidden       = "You do not have permission to perform this action"
	MsgUnauthenticated = "Please log in to continue"
	MsgServerError     = "Server error. Please try again later"
	MsgUnexpected      = "An unexpected error occurred"
)

// FieldError is a single field level validation failure reported by the backend.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string // backend supplied, may be empty
	Fields     []FieldError
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.UserMessage())
}

// UserMessage returns the message to surface in the UI. A backend supplied
// message takes precedence over the generic per-status mapping.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}

	switch e.StatusCode {
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusForbidden:
		return MsgForbidden
	case http.StatusUnauthorized:
		return MsgUnauthenticated
	case http.StatusInternalServerError:
		return MsgServerError
	default:
		return MsgUnexpected
	}
}

// UserMessage maps any error from a client call to a user facing message.
// Transport failures fall through to the generic message.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}

	return MsgUnexpected
}

// IsUnauthenticated reports whether err is a 401 from the backend.
// A 401 is terminal for the current session: callers tear the session down
// instead of retrying with a refreshed token.
func IsUnauthenticated(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 from the backend.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// FieldErrors returns the backend's field level validation errors, if any.
func FieldErrors(err error) []FieldError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}

	return nil
}
