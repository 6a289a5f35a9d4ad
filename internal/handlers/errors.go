package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"catalog/internal/apperrors"
	"catalog/internal/logging"
	"catalog/internal/response"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error returned by a route as an error envelope.
func ErrorHandler(responses *response.Builder, logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		appErr := toAppError(err)
		if appErr.Code == apperrors.ErrCodeInternal {
			logger.ErrorContext(c.UserContext(), "request failed",
				"method", c.Method(),
				"path", c.Path(),
				"trace_id", logging.TraceID(c),
				"error", err,
			)
		}

		links := &response.Links{Self: c.OriginalURL()}
		return c.Status(appErr.StatusCode).JSON(responses.Error(appErr, logging.TraceID(c), links))
	}
}

func toAppError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := apperrors.ErrCodeBadRequest
		switch {
		case fe.Code == http.StatusNotFound:
			code = apperrors.ErrCodeNotFound
		case fe.Code >= http.StatusInternalServerError:
			return apperrors.Internal(err)
		}
		return &apperrors.AppError{Code: code, Message: fe.Message, StatusCode: fe.Code}
	}

	return apperrors.Internal(err)
}

// invalidID is returned for path ids that are not positive integers.
func invalidID(resource, raw string) error {
	return apperrors.Validation([]apperrors.FieldError{{
		Field:      "id",
		Message:    resource + " ID must be a positive integer",
		Value:      raw,
		Constraint: "positiveInt",
	}})
}

func invalidBody(err error) error {
	return apperrors.BadRequest("Invalid request body").WithHint(err.Error())
}

func invalidQuery(err error) error {
	return apperrors.BadRequest("Invalid query parameters").WithHint(err.Error())
}
