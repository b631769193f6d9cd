package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	adapter "github.com/go-rbac-admin/go-rbac-admin/internal/logger/adapter/fiber"

	"github.com/go-rbac-admin/go-rbac-admin/internal/logger"
)

// expectedLoggerJSONFormat implements loggers default json format.
type expectedLoggerJSONFormat struct {
	IP           net.IP    `json:"IP"`
	Status       int       `json:"status"`
	XPerformance float32   `json:"X-Performance"`
	URI          string    `json:"URI"`
	Method       string    `json:"method"`
	Host         string    `json:"host"`
	RequestID    string    `json:"request_id"`
	Time         time.Time `json:"time"`
}

func consoleConfig() adapter.Config {
	return adapter.Config{
		Config: logger.Log{
			EnableAccessLogToConsole: true,
			Console:                  logger.Console{Enabled: true},
		},
	}
}

func TestNew(t *testing.T) {
	type arguments struct {
		config     adapter.Config
		targetPath string
	}

	type want struct {
		output *expectedLoggerJSONFormat
	}

	tests := []struct {
		name string
		args arguments
		want want
	}{
		{
			name: "empty config no output at all",
			args: arguments{
				targetPath: "/",
			},
			want: want{
				output: nil,
			},
		},
		{
			name: "get / log to console json",
			args: arguments{
				targetPath: "/",
				config:     consoleConfig(),
			},
			want: want{
				output: &expectedLoggerJSONFormat{
					IP:     net.ParseIP("0.0.0.0"),
					Status: 200,
					URI:    "/",
					Method: fiber.MethodGet,
					Host:   "example.com",
				},
			},
		},
		{
			name: "get unknown path logs 404",
			args: arguments{
				targetPath: "/nope",
				config:     consoleConfig(),
			},
			want: want{
				output: &expectedLoggerJSONFormat{
					IP:     net.ParseIP("0.0.0.0"),
					Status: 404,
					URI:    "/nope",
					Method: fiber.MethodGet,
					Host:   "example.com",
				},
			},
		},
		{
			name: "get log with params",
			args: arguments{
				targetPath: "/?search=ada&page=2",
				config:     consoleConfig(),
			},
			want: want{
				output: &expectedLoggerJSONFormat{
					IP:     net.ParseIP("0.0.0.0"),
					Status: 200,
					URI:    "/?search=ada&page=2",
					Method: fiber.MethodGet,
					Host:   "example.com",
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := testMiddlewareHelper(t, tt.args.targetPath, tt.args.config)
			assert.NoError(t, err)

			if tt.want.output == nil && output != "" {
				t.Errorf("expected no output, but got output %s", output)
			}

			if tt.want.output != nil && output == "" {
				t.Error("expected output but got no output")
			}

			if tt.want.output != nil && output != "" {
				var decodedOutput expectedLoggerJSONFormat
				if err = json.Unmarshal([]byte(output), &decodedOutput); err != nil {
					t.Error(err)
					return
				}

				assert.Equal(t, tt.want.output.Host, decodedOutput.Host)
				assert.Equal(t, tt.want.output.Method, decodedOutput.Method)
				assert.Equal(t, tt.want.output.Status, decodedOutput.Status)
				assert.Equal(t, tt.want.output.IP, decodedOutput.IP)
				assert.Equal(t, tt.want.output.URI, decodedOutput.URI)
				assert.NotEmpty(t, decodedOutput.RequestID)
			}
		})
	}
}

func TestNew_CheckAliveSuppressed(t *testing.T) {
	cfg := consoleConfig()
	cfg.Config.DisableCheckAlive = true
	cfg.CheckAliveURI = "/checkalive"

	output, err := testMiddlewareHelper(t, "/checkalive", cfg)
	assert.NoError(t, err)

	if output != "" {
		t.Errorf("expected checkalive request to be suppressed, got %s", output)
	}
}

func TestNew_SetsRequestIDHeader(t *testing.T) {
	app := fiber.New(fiber.Config{CaseSensitive: true, Immutable: true})
	app.Use(adapter.New(adapter.Config{}))
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	if resp.Header.Get(adapter.HeaderRequestID) == "" {
		t.Error("expected X-Request-Id response header to be set")
	}
}

func testMiddlewareHelper(t *testing.T, targetPath string, adapterConfig adapter.Config) (string, error) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	// capture stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(adapter.New(adapterConfig))

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	})
	app.Get("/checkalive", func(ctx *fiber.Ctx) error {
		return ctx.SendString("alive")
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), 100000)
	if err != nil {
		_ = w.Close()
		return "", err
	}

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			return
		}

		outC <- buf.String()
	}()

	// back to normal state
	_ = w.Close()
	os.Stdout = stdout // restoring the real stdout
	os.Stderr = stderr // restoring the real stderr
	out := <-outC

	return out, err
}
