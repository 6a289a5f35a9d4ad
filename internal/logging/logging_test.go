package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog/internal/apperrors"
	"catalog/internal/config"
	"catalog/internal/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LogConfig{Level: "warn", Format: "json"}, "1.2.3")

	logger.Info("dropped")
	logger.Warn("kept", "key", "value")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "catalog", entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, "value", entry["key"])
}

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LogConfig{Level: "info", Format: "text"}, "dev")

	logger.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "service=catalog")
}

func newLoggedApp(buf *bytes.Buffer, format string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if appErr, ok := apperrors.As(err); ok {
				return c.SendStatus(appErr.StatusCode)
			}
			return fiber.DefaultErrorHandler(c, err)
		},
	})
	app.Use(requestid.New())
	app.Use(logging.AccessLog(buf, format))
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NotFound("Product", 7)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "down")
	})
	return app
}

func lastLine(buf *bytes.Buffer) string {
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	return lines[len(lines)-1]
}

func TestAccessLog_JSON(t *testing.T) {
	tests := []struct {
		path   string
		status float64
		level  string
	}{
		{"/ok", 200, "INFO"},
		{"/missing", 404, "INFO"},
		{"/boom", 503, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var buf bytes.Buffer
			app := newLoggedApp(&buf, "json")

			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, int(tt.status), resp.StatusCode)

			var entry map[string]any
			require.NoError(t, json.Unmarshal([]byte(lastLine(&buf)), &entry))
			assert.Equal(t, "http request", entry["msg"])
			assert.Equal(t, "catalog", entry["service"])
			assert.Equal(t, "GET", entry["method"])
			assert.Equal(t, tt.status, entry["status"])
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.path, entry["path"])
			assert.Contains(t, entry, "duration_ms")
			assert.NotEmpty(t, entry["trace_id"])
			assert.Equal(t, resp.Header.Get(fiber.HeaderXRequestID), entry["trace_id"])
		})
	}
}

func TestAccessLog_Text(t *testing.T) {
	var buf bytes.Buffer
	app := newLoggedApp(&buf, "text")

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	line := lastLine(&buf)
	assert.Contains(t, line, "level=ERROR")
	assert.Contains(t, line, `msg="http request"`)
	assert.Contains(t, line, `path="/boom"`)
	assert.Contains(t, line, "status=503")
	assert.Contains(t, line, "trace_id="+resp.Header.Get(fiber.HeaderXRequestID))
}
