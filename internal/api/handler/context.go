package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lunchvote/voting-api/internal/api/middleware"
	"github.com/lunchvote/voting-api/internal/core/domain"
	"github.com/lunchvote/voting-api/internal/core/ports"
)

// principal extracts the caller injected by the Auth middleware. A missing
// user id means the middleware did not run, which is a 401.
func principal(c echo.Context) (ports.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.UserID == "" {
		return ports.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}

// dateParam reads the optional ?date= query parameter, falling back to today.
func dateParam(c echo.Context, today func() time.Time) (time.Time, error) {
	raw := c.QueryParam("date")
	if raw == "" {
		return today(), nil
	}
	return domain.ParseDate(raw)
}

// bindAndValidate binds the body into req and runs the registered validator.
// Malformed bodies are WRONG_REQUEST, failed constraints VALIDATION_ERROR.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("invalid payload: %w", domain.ErrWrongRequest)
	}
	return c.Validate(req)
}

// assureIDConsistent rejects a body id that contradicts the path id.
func assureIDConsistent(bodyID, pathID string) error {
	if bodyID != "" && bodyID != pathID {
		return fmt.Errorf("body id %q must match path id %q: %w", bodyID, pathID, domain.ErrWrongRequest)
	}
	return nil
}

// assureNew rejects a create request that already carries an id.
func assureNew(bodyID string) error {
	if bodyID != "" {
		return fmt.Errorf("new entity must not carry an id: %w", domain.ErrValidation)
	}
	return nil
}
