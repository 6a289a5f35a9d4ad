package logging

import (
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const (
	jsonAccessFormat = `{"time":"${time}","level":"${level}","msg":"http request","service":"catalog",` +
		`"method":"${method}","path":${quotedPath},"status":${status},"duration_ms":${durationMs},` +
		`"trace_id":"${locals:requestid}","remote_addr":"${ip}"}` + "\n"
	textAccessFormat = `time=${time} level=${level} msg="http request" service=catalog method=${method} ` +
		`path=${quotedPath} status=${status} duration_ms=${durationMs} trace_id=${locals:requestid} remote_addr=${ip}` + "\n"
)

// TraceID returns the request id assigned by the requestid middleware.
func TraceID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}

// AccessLog returns fiber's logger middleware writing one line per request
// to w, shaped like the slog output selected by format ("json" or "text").
// It must run after the requestid middleware.
func AccessLog(w io.Writer, format string) fiber.Handler {
	layout := jsonAccessFormat
	if format == "text" {
		layout = textAccessFormat
	}

	return logger.New(logger.Config{
		Output:        w,
		Format:        layout,
		TimeFormat:    time.RFC3339,
		DisableColors: true,
		CustomTags: map[string]logger.LogFunc{
			"level": func(output logger.Buffer, c *fiber.Ctx, _ *logger.Data, _ string) (int, error) {
				if c.Response().StatusCode() >= fiber.StatusInternalServerError {
					return output.WriteString("ERROR")
				}
				return output.WriteString("INFO")
			},
			"quotedPath": func(output logger.Buffer, c *fiber.Ctx, _ *logger.Data, _ string) (int, error) {
				path, err := json.Marshal(c.Path())
				if err != nil {
					return 0, err
				}
				return output.Write(path)
			},
			"durationMs": func(output logger.Buffer, _ *fiber.Ctx, data *logger.Data, _ string) (int, error) {
				return output.WriteString(strconv.FormatInt(data.Stop.Sub(data.Start).Milliseconds(), 10))
			},
		},
	})
}
