package handler

import (
	"time"

	"github.com/lunchvote/voting-api/internal/core/domain"
	"github.com/lunchvote/voting-api/internal/core/ports"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// --- Request → Service input ---

func toCreateUserInput(req userRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
		Enabled:  req.Enabled == nil || *req.Enabled,
	}
}

func toUpdateUserInput(id string, req userRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
		Enabled:  req.Enabled == nil || *req.Enabled,
	}
}

func toProfileInput(req profileRequest) ports.ProfileInput {
	return ports.ProfileInput{Name: req.Name, Email: req.Email, Password: req.Password}
}

func toDishInput(req dishRequest) (ports.DishInput, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return ports.DishInput{}, err
	}
	return ports.DishInput{ID: req.ID, Name: req.Name, Date: date, Price: req.Price}, nil
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Roles:      u.Roles,
		Registered: formatTimestamp(u.Registered),
		Enabled:    u.Enabled,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toRestaurantResponse(r *domain.Restaurant) restaurantResponse {
	return restaurantResponse{ID: r.ID, Name: r.Name}
}

func toRestaurantResponses(rs []*domain.Restaurant) []restaurantResponse {
	out := make([]restaurantResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRestaurantResponse(r))
	}
	return out
}

func toDishResponse(d *domain.Dish) dishResponse {
	return dishResponse{
		ID:           d.ID,
		RestaurantID: d.RestaurantID,
		Name:         d.Name,
		Date:         domain.FormatDate(d.Date),
		Price:        d.Price,
	}
}

func toDishResponses(ds []*domain.Dish) []dishResponse {
	out := make([]dishResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, toDishResponse(d))
	}
	return out
}

func toMenuResponses(menus []domain.RestaurantMenu) []menuResponse {
	out := make([]menuResponse, 0, len(menus))
	for i := range menus {
		m := menuResponse{
			Restaurant: toRestaurantResponse(&menus[i].Restaurant),
			Dishes:     make([]dishResponse, 0, len(menus[i].Dishes)),
		}
		for j := range menus[i].Dishes {
			m.Dishes = append(m.Dishes, toDishResponse(&menus[i].Dishes[j]))
		}
		out = append(out, m)
	}
	return out
}

func toVoteResponse(v *domain.Vote) voteResponse {
	return voteResponse{
		ID:           v.ID,
		UserID:       v.UserID,
		RestaurantID: v.RestaurantID,
		Date:         domain.FormatDate(v.Date),
		Time:         formatTimestamp(v.Time),
	}
}

func toVoteResponses(vs []*domain.Vote) []voteResponse {
	out := make([]voteResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, toVoteResponse(v))
	}
	return out
}

func toVoteResultsResponse(date time.Time, results []domain.VoteResult) voteResultsResponse {
	resp := voteResultsResponse{
		Date:    domain.FormatDate(date),
		Results: make([]voteResultResponse, 0, len(results)),
	}
	for _, r := range results {
		resp.Results = append(resp.Results, voteResultResponse{
			RestaurantID:   r.RestaurantID,
			RestaurantName: r.RestaurantName,
			Votes:          r.Votes,
		})
	}
	return resp
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
