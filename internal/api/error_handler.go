package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stylematch/waitlist/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
// Details is set for validation failures, Message for duplicates.
type errorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: "validation failed", Details: ve.Details}
	}

	// Echo's own errors (bind failures, 404 from router, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Int("status", he.Code).Str("path", c.Path()).Msg("request rejected")
		}
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, errorResponse{Error: "duplicate submission", Message: "this email is already registered"}
	case errors.Is(err, domain.ErrSubmissionNotFound):
		return http.StatusNotFound, errorResponse{Error: "submission not found"}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized"}
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, errorResponse{Error: "too many requests, please try again later"}
	case errors.Is(err, domain.ErrOriginNotAllowed):
		return http.StatusForbidden, errorResponse{Error: "origin not allowed"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
