package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lunchvote/voting-api/internal/core/domain"
	"github.com/lunchvote/voting-api/internal/core/ports"
)

// DishHandler serves dish administration. Dishes are always addressed
// through their restaurant.
type DishHandler struct {
	dishes ports.DishService
}

func NewDishHandler(dishes ports.DishService) *DishHandler {
	return &DishHandler{dishes: dishes}
}

// ListAll handles GET /admin/restaurants/dishes?date=.
//
// @Summary      List dishes of all restaurants
// @Tags         admin-dishes
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "YYYY-MM-DD"
// @Success      200   {array}   dishResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/restaurants/dishes [get]
func (h *DishHandler) ListAll(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		dishes []*domain.Dish
		err    error
	)
	if raw := c.QueryParam("date"); raw != "" {
		date, perr := domain.ParseDate(raw)
		if perr != nil {
			return perr
		}
		dishes, err = h.dishes.GetAllForDate(ctx, date)
	} else {
		dishes, err = h.dishes.GetAll(ctx)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDishResponses(dishes))
}

// List handles GET /admin/restaurants/:id/dishes?date=.
//
// @Summary      List dishes of a restaurant
// @Tags         admin-dishes
// @Produce      json
// @Security     BearerAuth
// @Param        id            path      string  true   "Restaurant id"
// @Param        date          query     string  false  "YYYY-MM-DD"
// @Success      200           {array}   dishResponse
// @Failure      422           {object}  errorResponse
// @Router       /admin/restaurants/{id}/dishes [get]
func (h *DishHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	restaurantID := c.Param("id")

	var (
		dishes []*domain.Dish
		err    error
	)
	if raw := c.QueryParam("date"); raw != "" {
		date, perr := domain.ParseDate(raw)
		if perr != nil {
			return perr
		}
		dishes, err = h.dishes.GetAllByRestaurantAndDate(ctx, restaurantID, date)
	} else {
		dishes, err = h.dishes.GetAllByRestaurant(ctx, restaurantID)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDishResponses(dishes))
}

// Get handles GET /admin/restaurants/:id/dishes/:dishId.
//
// @Summary      Get a dish
// @Tags         admin-dishes
// @Produce      json
// @Security     BearerAuth
// @Param        id            path      string  true  "Restaurant id"
// @Param        dishId        path      string  true  "Dish id"
// @Success      200           {object}  dishResponse
// @Failure      404           {object}  errorResponse
// @Router       /admin/restaurants/{id}/dishes/{dishId} [get]
func (h *DishHandler) Get(c echo.Context) error {
	d, err := h.dishes.Get(c.Request().Context(), c.Param("dishId"), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDishResponse(d))
}

// Create handles POST /admin/restaurants/:id/dishes.
//
// @Summary      Create a dish
// @Tags         admin-dishes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id            path      string       true  "Restaurant id"
// @Param        body          body      dishRequest  true  "Dish"
// @Success      201           {object}  dishResponse
// @Failure      404           {object}  errorResponse
// @Failure      409           {object}  errorResponse
// @Failure      422           {object}  errorResponse
// @Router       /admin/restaurants/{id}/dishes [post]
func (h *DishHandler) Create(c echo.Context) error {
	restaurantID := c.Param("id")
	var req dishRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := assureNew(req.ID); err != nil {
		return err
	}
	in, err := toDishInput(req)
	if err != nil {
		return err
	}

	d, err := h.dishes.Create(c.Request().Context(), restaurantID, in)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/admin/restaurants/"+restaurantID+"/dishes/"+d.ID)
	return c.JSON(http.StatusCreated, toDishResponse(d))
}

// Update handles PUT /admin/restaurants/:id/dishes/:dishId.
//
// @Summary      Update a dish
// @Tags         admin-dishes
// @Accept       json
// @Security     BearerAuth
// @Param        id            path  string       true  "Restaurant id"
// @Param        dishId        path  string       true  "Dish id"
// @Param        body          body  dishRequest  true  "Dish"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /admin/restaurants/{id}/dishes/{dishId} [put]
func (h *DishHandler) Update(c echo.Context) error {
	id := c.Param("dishId")
	var req dishRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := assureIDConsistent(req.ID, id); err != nil {
		return err
	}
	req.ID = id
	in, err := toDishInput(req)
	if err != nil {
		return err
	}

	if err := h.dishes.Update(c.Request().Context(), c.Param("id"), in); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /admin/restaurants/:id/dishes/:dishId.
//
// @Summary      Delete a dish
// @Tags         admin-dishes
// @Security     BearerAuth
// @Param        id            path  string  true  "Restaurant id"
// @Param        dishId        path  string  true  "Dish id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/restaurants/{id}/dishes/{dishId} [delete]
func (h *DishHandler) Delete(c echo.Context) error {
	if err := h.dishes.Delete(c.Request().Context(), c.Param("dishId"), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
