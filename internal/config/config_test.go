package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testTOML = `
Title = "Go-RBAC-Admin Test"

[Webserver]
URL = "http://localhost"
Port = 3000

[Webserver.Session]
Secret = "test-secret"

[Backend]
URL = "http://localhost:5000/api/v1"

[Log]
LogLevel = "info"
AppName = "go-rbac-admin"
ServiceName = "web"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.toml"), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	return dir + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(writeTestConfig(t, testTOML))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port != 3000 {
		t.Errorf("Webserver.Port = %d, want 3000", cfg.Webserver.Port)
	}

	if cfg.Backend.URL != "http://localhost:5000/api/v1" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}

	// defaults filled in by validate
	if cfg.Webserver.Session.ExpiryTime != 7*24*time.Hour {
		t.Errorf("Session.ExpiryTime = %v, want 168h", cfg.Webserver.Session.ExpiryTime)
	}

	if cfg.Webserver.Session.CookieName != defaultCookieName {
		t.Errorf("Session.CookieName = %q, want %q", cfg.Webserver.Session.CookieName, defaultCookieName)
	}

	if cfg.Webserver.ShutDownTime != 5 {
		t.Errorf("Webserver.ShutDownTime = %d, want 5", cfg.Webserver.ShutDownTime)
	}

	if cfg.Backend.PublicURL != cfg.Backend.URL {
		t.Errorf("Backend.PublicURL should default to Backend.URL, got %q", cfg.Backend.PublicURL)
	}
}

func TestReadConfig_SecretFromEnv(t *testing.T) {
	content := `
Title = "t"

[Webserver]
URL = "http://localhost"
Port = 3000

[Backend]
URL = "http://localhost:5000/api/v1"
`
	t.Setenv(EnvSessionSecret, "env-secret")

	cfg, err := ReadConfig(writeTestConfig(t, content))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Webserver.Session.Secret != "env-secret" {
		t.Errorf("Session.Secret = %q, want env-secret", cfg.Webserver.Session.Secret)
	}
}

func TestReadConfig_MissingSecretFailsOutsideDevMode(t *testing.T) {
	content := `
Title = "t"

[Webserver]
URL = "http://localhost"
Port = 3000

[Backend]
URL = "http://localhost:5000/api/v1"
`
	_, err := ReadConfig(writeTestConfig(t, content))
	if err == nil {
		t.Fatal("expected error for missing session secret")
	}
}

func TestReadConfig_JSONEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Webserver":{"Port":8081}}`)

	cfg, err := ReadConfig(writeTestConfig(t, testTOML))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Webserver.Port != 8081 {
		t.Errorf("Webserver.Port = %d, want 8081 from env override", cfg.Webserver.Port)
	}

	// values not present in the override keep their file values
	if cfg.Webserver.URL != "http://localhost" {
		t.Errorf("Webserver.URL = %q, want file value", cfg.Webserver.URL)
	}
}
