package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agendavista/task-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Detail is
// only populated outside production, for unexpected failures.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client
//     (diagnostic detail is included in the body only when production is false).
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, detail := resolveError(err, log, c, production)
		_ = c.JSON(code, errorResponse{Error: msg, Detail: detail})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, production bool) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), ""
	}

	// Known domain errors → deterministic HTTP codes. Duplicate email is a
	// 400, not a 409: the client treats any non-401 auth failure as a form
	// error and renders the message verbatim.
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, "user with this email already exists", ""
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, "missing required fields", ""
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password", ""
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token", ""
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found", ""
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "task not found", ""
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	detail := ""
	if !production {
		detail = err.Error()
	}
	return http.StatusInternalServerError, "internal server error", detail
}
