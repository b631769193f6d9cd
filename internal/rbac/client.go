// Package rbac implements the typed HTTP client for the external RBAC
// backend service. All business rules (password hashing, token issuance,
// cascade checks) live behind this API; the client only shapes requests,
// attaches the bearer token, and maps failures to user facing messages.
package rbac

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultTimeout = 30 * time.Second

// envelope is the uniform backend response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Meta    *Meta           `json:"meta,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
}

// Client issues JSON requests against the backend API.
// The zero value is not usable; create instances with New.
// A Client is safe for concurrent use; WithToken returns a request scoped
// copy carrying the session's access token.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for the given base URL (including the /api/v1 prefix).
func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of the client that sends the given access token
// as a bearer credential on every request. An empty token means requests go
// out unauthenticated.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token

	return &clone
}

// do sends one request and decodes the enveloped response into out (if non-nil).
// Non-2xx statuses and success=false envelopes become *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*Meta, error) {
	var reqBody io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}

		reqBody = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}

	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "backend request failed")
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read backend response")
	}

	var env envelope
	// a broken body on an error status must still yield the status mapping
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("message", env.Message).
			Msg("backend call failed")

		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Fields:     env.Errors,
		}
	}

	if !env.Success && env.Message != "" {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message, Fields: env.Errors}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, errors.Wrap(err, "failed to decode backend response data")
		}
	}

	return env.Meta, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (*Meta, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPost, path, nil, body, out)
	return err
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPatch, path, nil, body, out)
	return err
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, out)
	return err
}
