package graph

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"catalog/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

const defaultKeepAlive = 15 * time.Second

// Request is a GraphQL-over-HTTP request.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Handler serves the schema over HTTP.
type Handler struct {
	schema    graphql.Schema
	logger    *slog.Logger
	keepAlive time.Duration

	// ctx bounds every open subscription stream; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithKeepAlive sets the interval of the comment lines sent on idle streams.
func WithKeepAlive(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.keepAlive = d
		}
	}
}

func NewHandler(schema graphql.Schema, logger *slog.Logger, opts ...HandlerOption) *Handler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handler{
		schema:    schema,
		logger:    logger,
		keepAlive: defaultKeepAlive,
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes mounts the GraphQL endpoints.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Post("/graphql", h.HandleQuery)
	router.Get("/graphql", h.HandleQuery)
	router.Post("/graphql/subscriptions", h.HandleSubscription)
	router.Get("/graphql/subscriptions", h.HandleSubscription)
}

// Close ends every open subscription stream.
func (h *Handler) Close() {
	h.cancel()
}

// HandleQuery executes a query or mutation and returns the GraphQL result.
// Field errors are part of a 200 response.
func (h *Handler) HandleQuery(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return err
	}
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.UserContext(),
	})
	return c.JSON(result)
}

// HandleSubscription runs a subscription and streams every result as a
// Server-Sent Event until the client goes away, the subscription ends or
// the handler is closed.
func (h *Handler) HandleSubscription(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return err
	}

	// The stream outlives this handler call, so it cannot use the request context.
	ctx, cancel := context.WithCancel(h.ctx)
	results := graphql.Subscribe(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			cancel()
			// The executor may still be blocked sending a result.
			go func() {
				for range results {
				}
			}()
		}()

		ticker := time.NewTicker(h.keepAlive)
		defer ticker.Stop()

		if err := writeComment(w, "connected"); err != nil {
			return
		}
		for {
			select {
			case <-ctx.Done():
				_ = writeEvent(w, "complete", nil)
				return
			case res, ok := <-results:
				if !ok {
					_ = writeEvent(w, "complete", nil)
					return
				}
				data, err := json.Marshal(res)
				if err != nil {
					h.logger.Error("failed to encode subscription result", "error", err)
					continue
				}
				if err := writeEvent(w, "next", data); err != nil {
					return
				}
			case <-ticker.C:
				if err := writeComment(w, "ping"); err != nil {
					return
				}
			}
		}
	})
	return nil
}

func writeComment(w *bufio.Writer, text string) error {
	if _, err := fmt.Fprintf(w, ": %s\n\n", text); err != nil {
		return err
	}
	return w.Flush()
}

func writeEvent(w *bufio.Writer, event string, data []byte) error {
	if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
		return err
	}
	if data != nil {
		if _, err := fmt.Fprintf(w, "data: %s\n", data); err != nil {
			return err
		}
	}
	if _, err := w.WriteString("\n"); err != nil {
		return err
	}
	return w.Flush()
}

// parseRequest reads the request from the JSON body, or from the query
// string on GET.
func parseRequest(c *fiber.Ctx) (*Request, error) {
	var req Request
	if c.Method() == fiber.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				return nil, apperrors.BadRequest("Invalid variables").WithHint(err.Error())
			}
		}
	} else if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.BadRequest("Invalid GraphQL request body").WithHint(err.Error())
	}

	if strings.TrimSpace(req.Query) == "" {
		return nil, apperrors.BadRequest("query is required")
	}
	return &req, nil
}
