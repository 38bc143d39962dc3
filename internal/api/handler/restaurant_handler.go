package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lunchvote/voting-api/internal/core/domain"
	"github.com/lunchvote/voting-api/internal/core/ports"
)

// RestaurantHandler serves restaurant administration and the daily menus.
type RestaurantHandler struct {
	restaurants ports.RestaurantService
	today       func() time.Time
}

// NewRestaurantHandler returns a RestaurantHandler. today resolves the
// default date of menu queries.
func NewRestaurantHandler(restaurants ports.RestaurantService, today func() time.Time) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants, today: today}
}

// List handles GET /admin/restaurants.
//
// @Summary      List restaurants
// @Tags         admin-restaurants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   restaurantResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	rs, err := h.restaurants.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRestaurantResponses(rs))
}

// Get handles GET /admin/restaurants/:id.
//
// @Summary      Get a restaurant
// @Tags         admin-restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Restaurant id"
// @Success      200  {object}  restaurantResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/restaurants/{id} [get]
func (h *RestaurantHandler) Get(c echo.Context) error {
	r, err := h.restaurants.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRestaurantResponse(r))
}

// Create handles POST /admin/restaurants.
//
// @Summary      Create a restaurant
// @Tags         admin-restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      restaurantRequest  true  "Restaurant"
// @Success      201   {object}  restaurantResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/restaurants [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req restaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := assureNew(req.ID); err != nil {
		return err
	}

	r, err := h.restaurants.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/admin/restaurants/"+r.ID)
	return c.JSON(http.StatusCreated, toRestaurantResponse(r))
}

// Update handles PUT /admin/restaurants/:id.
//
// @Summary      Rename a restaurant
// @Tags         admin-restaurants
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string             true  "Restaurant id"
// @Param        body  body  restaurantRequest  true  "Restaurant"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /admin/restaurants/{id} [put]
func (h *RestaurantHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var req restaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := assureIDConsistent(req.ID, id); err != nil {
		return err
	}

	if err := h.restaurants.Update(c.Request().Context(), &domain.Restaurant{ID: id, Name: req.Name}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /admin/restaurants/:id. Dishes and votes of the
// restaurant are removed with it.
//
// @Summary      Delete a restaurant
// @Tags         admin-restaurants
// @Security     BearerAuth
// @Param        id  path  string  true  "Restaurant id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/restaurants/{id} [delete]
func (h *RestaurantHandler) Delete(c echo.Context) error {
	if err := h.restaurants.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Menus handles GET /profile/restaurants/dishes?date=.
//
// @Summary      Restaurants with their dishes for a date
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "YYYY-MM-DD, defaults to today"
// @Success      200   {array}   menuResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /profile/restaurants/dishes [get]
func (h *RestaurantHandler) Menus(c echo.Context) error {
	date, err := dateParam(c, h.today)
	if err != nil {
		return err
	}

	menus, err := h.restaurants.MenusForDate(c.Request().Context(), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMenuResponses(menus))
}
