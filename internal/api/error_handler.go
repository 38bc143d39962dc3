package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Type  domain.ErrorType `json:"type"`
	Error string           `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// sentinels to status codes and renders {"type": "<KIND>", "error": "<message>"}.
// Unexpected errors are logged and answered with a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

var sentinels = []struct {
	err  error
	code int
	kind domain.ErrorType
}{
	{domain.ErrNotFound, http.StatusNotFound, domain.ErrorTypeNotFound},
	{domain.ErrVotingTimeIsOut, http.StatusUnprocessableEntity, domain.ErrorTypeVotingTimeIsOut},
	{domain.ErrValidation, http.StatusUnprocessableEntity, domain.ErrorTypeValidation},
	{domain.ErrDataConflict, http.StatusConflict, domain.ErrorTypeDataError},
	{domain.ErrWrongRequest, http.StatusBadRequest, domain.ErrorTypeWrongRequest},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, domain.ErrorTypeUnauthenticated},
	{domain.ErrForbidden, http.StatusForbidden, domain.ErrorTypeForbidden},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (401 from the auth middleware, 404/405 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Type: kindOfStatus(he.Code), Error: fmt.Sprintf("%v", he.Message)}
	}

	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			log.Debug().Err(err).Str("path", c.Path()).Int("status", s.code).Msg("request rejected")
			return s.code, errorResponse{Type: s.kind, Error: err.Error()}
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Type: domain.ErrorTypeApp, Error: "internal server error"}
}

func kindOfStatus(code int) domain.ErrorType {
	switch code {
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthenticated
	case http.StatusForbidden:
		return domain.ErrorTypeForbidden
	case http.StatusUnprocessableEntity:
		return domain.ErrorTypeValidation
	}
	if code >= 400 && code < 500 {
		return domain.ErrorTypeWrongRequest
	}
	return domain.ErrorTypeApp
}
