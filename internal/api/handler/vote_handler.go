package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lunchvote/voting-api/internal/core/ports"
)

// VoteHandler serves casting votes and reading the vote ledger.
type VoteHandler struct {
	votes ports.VoteService
}

func NewVoteHandler(votes ports.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// Cast handles POST /profile/restaurants/:id/votes. A second vote on the
// same day replaces the first while voting is open.
//
// @Summary      Vote for a restaurant
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Restaurant id"
// @Success      201  {object}  voteResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse  "VOTING_TIME_IS_OUT after the cutoff"
// @Router       /profile/restaurants/{id}/votes [post]
func (h *VoteHandler) Cast(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	res, err := h.votes.Cast(c.Request().Context(), p.UserID, c.Param("id"))
	if err != nil {
		return err
	}

	resp := toVoteResponse(res.Vote)
	resp.Changed = res.Changed
	c.Response().Header().Set(echo.HeaderLocation, "/profile/votes?date="+resp.Date)
	return c.JSON(http.StatusCreated, resp)
}

// Mine handles GET /profile/votes?date=.
//
// @Summary      Own vote for a date
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "YYYY-MM-DD, defaults to today"
// @Success      200   {object}  voteResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /profile/votes [get]
func (h *VoteHandler) Mine(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	date, err := dateParam(c, h.votes.Today)
	if err != nil {
		return err
	}

	v, err := h.votes.GetForUser(c.Request().Context(), p.UserID, date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVoteResponse(v))
}

// Results handles GET /profile/restaurants/votes?date= and
// GET /admin/votes/results?date=.
//
// @Summary      Vote counts per restaurant
// @Tags         votes
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "YYYY-MM-DD, defaults to today"
// @Success      200   {object}  voteResultsResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /profile/restaurants/votes [get]
// @Router       /admin/votes/results [get]
func (h *VoteHandler) Results(c echo.Context) error {
	date, err := dateParam(c, h.votes.Today)
	if err != nil {
		return err
	}

	results, err := h.votes.Results(c.Request().Context(), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVoteResultsResponse(date, results))
}

// ListForDate handles GET /admin/votes?date=.
//
// @Summary      All votes of a date
// @Tags         admin-votes
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "YYYY-MM-DD, defaults to today"
// @Success      200   {array}   voteResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/votes [get]
func (h *VoteHandler) ListForDate(c echo.Context) error {
	date, err := dateParam(c, h.votes.Today)
	if err != nil {
		return err
	}

	votes, err := h.votes.GetAllForDate(c.Request().Context(), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVoteResponses(votes))
}
