package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lunchvote/voting-api/internal/core/domain"
	"github.com/lunchvote/voting-api/internal/core/ports"
)

// UserHandler serves the administrator's user directory.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /admin/users.
//
// @Summary      List users
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Get handles GET /admin/users/:id.
//
// @Summary      Get a user
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetByEmail handles GET /admin/users/by?email=.
//
// @Summary      Find a user by email
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  true  "Email, case-insensitive"
// @Success      200    {object}  userResponse
// @Failure      404    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Router       /admin/users/by [get]
func (h *UserHandler) GetByEmail(c echo.Context) error {
	user, err := h.users.GetByEmail(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Create handles POST /admin/users.
//
// @Summary      Create a user
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userRequest  true  "User"
// @Success      201   {object}  userResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := assureNew(req.ID); err != nil {
		return err
	}
	if req.Password == "" {
		return fmt.Errorf("password is required: %w", domain.ErrValidation)
	}

	user, err := h.users.Create(c.Request().Context(), toCreateUserInput(req))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/admin/users/"+user.ID)
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Update handles PUT /admin/users/:id. An empty password keeps the current one.
//
// @Summary      Update a user
// @Tags         admin-users
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string       true  "User id"
// @Param        body  body  userRequest  true  "User"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /admin/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var req userRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := assureIDConsistent(req.ID, id); err != nil {
		return err
	}

	if err := h.users.Update(c.Request().Context(), toUpdateUserInput(id, req)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetEnabled handles PATCH /admin/users/:id?enabled=.
//
// @Summary      Enable or disable a user
// @Tags         admin-users
// @Security     BearerAuth
// @Param        id       path   string  true  "User id"
// @Param        enabled  query  bool    true  "New state"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /admin/users/{id} [patch]
func (h *UserHandler) SetEnabled(c echo.Context) error {
	enabled, err := strconv.ParseBool(c.QueryParam("enabled"))
	if err != nil {
		return fmt.Errorf("enabled must be true or false: %w", domain.ErrValidation)
	}

	if err := h.users.SetEnabled(c.Request().Context(), c.Param("id"), enabled); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /admin/users/:id.
//
// @Summary      Delete a user
// @Tags         admin-users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
