package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyBackendURL error if config backend.url is empty.
	ErrEmptyBackendURL = errors.New("toml config backend.url can not be empty")

	// ErrEmptySessionSecret error if no session signing secret was configured outside dev mode.
	ErrEmptySessionSecret = errors.New("webserver.session.secret can not be empty (set it in the config or via RBAC_ADMIN_SESSION_SECRET)")
)
