package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lunchvote/voting-api/internal/core/ports"
)

// ProfileHandler serves the signed-in user's own account.
type ProfileHandler struct {
	users ports.UserService
}

func NewProfileHandler(users ports.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// Register creates a new user account with the user role.
//
// @Summary      Register a new user
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /profile/register [post]
func (h *ProfileHandler) Register(c echo.Context) error {
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), toProfileInput(req))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/profile")
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Get handles GET /profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update handles PUT /profile.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  profileRequest  true  "New name, email and password"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.users.UpdateProfile(c.Request().Context(), p.UserID, toProfileInput(req)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /profile.
//
// @Summary      Delete own account
// @Tags         profile
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /profile [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), p.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
