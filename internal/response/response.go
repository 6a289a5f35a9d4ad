// Package response builds the envelope every API response is wrapped in.
package response

import (
	"time"

	"catalog/internal/apperrors"
	"catalog/internal/models"
)

// APIResponse is the standard envelope for success and error responses.
type APIResponse struct {
	Success    bool       `json:"success"`
	StatusCode int        `json:"statusCode"`
	Message    string     `json:"message"`
	Data       any        `json:"data,omitempty"`
	Error      *ErrorBody `json:"error,omitempty"`
	Meta       Meta       `json:"meta"`
	Links      *Links     `json:"links,omitempty"`
}

// ErrorBody is the error part of a failed response.
type ErrorBody struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	Details any                 `json:"details,omitempty"`
	Hint    string              `json:"hint,omitempty"`
}

type Meta struct {
	Timestamp  time.Time          `json:"timestamp"`
	TraceID    string             `json:"traceId"`
	Version    string             `json:"version"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// Builder stamps envelopes with the API version and the current time.
type Builder struct {
	version string
	now     func() time.Time
}

func NewBuilder(version string) *Builder {
	return &Builder{version: version, now: time.Now}
}

// Success wraps data in a successful envelope. links and pagination may be nil.
func (b *Builder) Success(data any, message string, statusCode int, traceID string, links *Links, pagination *models.Pagination) APIResponse {
	return APIResponse{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
		Meta:       b.meta(traceID, pagination),
		Links:      links,
	}
}

// Error wraps an application error. Internal errors only ever expose their
// fixed message.
func (b *Builder) Error(err *apperrors.AppError, traceID string, links *Links) APIResponse {
	return APIResponse{
		Success:    false,
		StatusCode: err.StatusCode,
		Message:    err.Message,
		Error: &ErrorBody{
			Code:    err.Code,
			Message: err.Message,
			Details: err.Details,
			Hint:    err.Hint,
		},
		Meta:  b.meta(traceID, nil),
		Links: links,
	}
}

func (b *Builder) meta(traceID string, pagination *models.Pagination) Meta {
	return Meta{
		Timestamp:  b.now().UTC(),
		TraceID:    traceID,
		Version:    b.version,
		Pagination: pagination,
	}
}
