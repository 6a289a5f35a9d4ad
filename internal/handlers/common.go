package handlers

import (
	"net/url"
	"strconv"

	"catalog/internal/logging"
	"catalog/internal/models"
	"catalog/internal/response"

	"github.com/gofiber/fiber/v2"
)

// parseID reads the :id path parameter as a positive integer.
func parseID(c *fiber.Ctx, resource string) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, invalidID(resource, raw)
	}
	return uint(id), nil
}

// pathParam returns the unescaped value of a path parameter.
func pathParam(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// extraQuery returns the request query parameters except page, to be
// repeated on pagination links.
func extraQuery(c *fiber.Ctx) url.Values {
	values := url.Values{}
	for k, v := range c.Queries() {
		if k != "page" {
			values.Set(k, v)
		}
	}
	return values
}

func respond(c *fiber.Ctx, responses *response.Builder, status int, message string, data any, links *response.Links, pagination *models.Pagination) error {
	return c.Status(status).JSON(responses.Success(data, message, status, logging.TraceID(c), links, pagination))
}

// optionalQuery returns a query parameter, or nil when it is absent.
func optionalQuery(c *fiber.Ctx, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}
