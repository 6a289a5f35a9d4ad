package handlers

import (
	"context"
	"time"

	"catalog/internal/apperrors"
	"catalog/internal/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	ping      func(ctx context.Context) error
	responses *response.Builder
}

func NewHealthHandler(ping func(ctx context.Context) error, responses *response.Builder) *HealthHandler {
	return &HealthHandler{ping: ping, responses: responses}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "Database is unreachable")
	}

	return respond(c, h.responses, fiber.StatusOK, "Service is healthy", fiber.Map{
		"status":   "healthy",
		"database": "up",
		"time":     time.Now().UTC().Format(time.RFC3339),
	}, &response.Links{Self: c.Path()}, nil)
}
