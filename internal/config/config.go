// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"
)

const (
	// EnvConfigJSON overrides the file based config with a full JSON document.
	EnvConfigJSON = "RBAC_ADMIN_CONFIG_JSON"

	// EnvSessionSecret overrides only the session signing secret.
	EnvSessionSecret = "RBAC_ADMIN_SESSION_SECRET"

	defaultSessionExpiry = 7 * 24 * time.Hour
	defaultCookieName    = "rbac_session"
	defaultTimeout       = 30 * time.Second
	defaultCacheTTL      = 30 * time.Second
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c   Config
		err error
	)

	// .env values become regular environment variables, missing file is fine
	_ = godotenv.Load()

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	if jsonConfigEnv := os.Getenv(EnvConfigJSON); jsonConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, jsonConfigEnv)
		if err != nil {
			return c, err
		}
	}

	if secret := os.Getenv(EnvSessionSecret); secret != "" {
		c.Webserver.Session.Secret = secret
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to merge config from environment")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings and fill defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Backend.URL == "" {
		return errors.Wrap(ErrEmptyBackendURL, invalidErrMessage)
	}

	if c.Webserver.Session.Secret == "" && !c.DevMode {
		return errors.Wrap(ErrEmptySessionSecret, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.Webserver.Session.CookieName == "" {
		c.Webserver.Session.CookieName = defaultCookieName
	}

	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = defaultTimeout
	}

	if c.Backend.CacheTTL == 0 {
		c.Backend.CacheTTL = defaultCacheTTL
	}

	if c.Backend.PublicURL == "" {
		c.Backend.PublicURL = c.Backend.URL
	}

	return nil
}
