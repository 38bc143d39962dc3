package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/lunchvote/voting-api/internal/core/domain"
	"github.com/lunchvote/voting-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
	err    error // if set, every call returns it
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

// newVoterRepo seeds enabled users with the given ids.
func newVoterRepo(ids ...string) *stubUserRepo {
	r := newStubUserRepo()
	for _, id := range ids {
		r.users[id] = &domain.User{ID: id, Name: id, Email: id + "@example.com", Roles: []string{domain.RoleUser}, Enabled: true}
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) emailTaken(email, exceptID string) bool {
	for id, u := range r.users {
		if u.Email == email && id != exceptID {
			return true
		}
	}
	return false
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.emailTaken(user.Email, "") {
		return nil, domain.ErrDataConflict
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return nil, domain.ErrDataConflict
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Email < out[j].Email
	})
	return out, nil
}

// countingCache is an in-memory UserListCache that records its traffic.
type countingCache struct {
	users       []*domain.User
	ok          bool
	sets        int
	invalidated int
}

func (c *countingCache) Get(context.Context) ([]*domain.User, bool, error) {
	return c.users, c.ok, nil
}

func (c *countingCache) Set(_ context.Context, users []*domain.User) error {
	c.users, c.ok = users, true
	c.sets++
	return nil
}

func (c *countingCache) Invalidate(context.Context) error {
	c.users, c.ok = nil, false
	c.invalidated++
	return nil
}

type stubRestaurantRepo struct {
	restaurants map[string]*domain.Restaurant
	nextID      int
}

func newStubRestaurantRepo(names ...string) *stubRestaurantRepo {
	r := &stubRestaurantRepo{restaurants: make(map[string]*domain.Restaurant)}
	for _, n := range names {
		_, _ = r.Create(context.Background(), &domain.Restaurant{Name: n})
	}
	return r
}

func (r *stubRestaurantRepo) Create(_ context.Context, rest *domain.Restaurant) (*domain.Restaurant, error) {
	r.nextID++
	stored := *rest
	stored.ID = fmt.Sprintf("r%d", r.nextID)
	r.restaurants[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubRestaurantRepo) Update(_ context.Context, rest *domain.Restaurant) error {
	if _, ok := r.restaurants[rest.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *rest
	r.restaurants[rest.ID] = &stored
	return nil
}

func (r *stubRestaurantRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.restaurants[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.restaurants, id)
	return nil
}

func (r *stubRestaurantRepo) FindByID(_ context.Context, id string) (*domain.Restaurant, error) {
	rest, ok := r.restaurants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *rest
	return &clone, nil
}

func (r *stubRestaurantRepo) FindAll(_ context.Context) ([]*domain.Restaurant, error) {
	out := make([]*domain.Restaurant, 0, len(r.restaurants))
	for _, rest := range r.restaurants {
		clone := *rest
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type stubDishRepo struct {
	dishes map[string]*domain.Dish
	nextID int
}

func newStubDishRepo() *stubDishRepo {
	return &stubDishRepo{dishes: make(map[string]*domain.Dish)}
}

func (r *stubDishRepo) Create(_ context.Context, d *domain.Dish) (*domain.Dish, error) {
	for _, existing := range r.dishes {
		if existing.RestaurantID == d.RestaurantID && existing.Date.Equal(d.Date) && existing.Name == d.Name {
			return nil, domain.ErrDataConflict
		}
	}
	r.nextID++
	stored := *d
	stored.ID = fmt.Sprintf("d%d", r.nextID)
	r.dishes[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubDishRepo) Update(_ context.Context, d *domain.Dish) error {
	existing, ok := r.dishes[d.ID]
	if !ok || existing.RestaurantID != d.RestaurantID {
		return domain.ErrNotFound
	}
	stored := *d
	r.dishes[d.ID] = &stored
	return nil
}

func (r *stubDishRepo) Delete(_ context.Context, id, restaurantID string) error {
	existing, ok := r.dishes[id]
	if !ok || existing.RestaurantID != restaurantID {
		return domain.ErrNotFound
	}
	delete(r.dishes, id)
	return nil
}

func (r *stubDishRepo) FindByID(_ context.Context, id, restaurantID string) (*domain.Dish, error) {
	existing, ok := r.dishes[id]
	if !ok || existing.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}
	clone := *existing
	return &clone, nil
}

func (r *stubDishRepo) List(_ context.Context, f ports.DishFilter) ([]*domain.Dish, error) {
	var out []*domain.Dish
	for _, d := range r.dishes {
		if f.RestaurantID != "" && d.RestaurantID != f.RestaurantID {
			continue
		}
		if !f.Date.IsZero() && !d.Date.Equal(f.Date) {
			continue
		}
		clone := *d
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

type stubVoteRepo struct {
	votes     map[string]*domain.Vote
	nextID    int
	createErr error // if set, Create returns this error once
	updates   int
}

func newStubVoteRepo() *stubVoteRepo {
	return &stubVoteRepo{votes: make(map[string]*domain.Vote)}
}

func (r *stubVoteRepo) Create(_ context.Context, v *domain.Vote) (*domain.Vote, error) {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return nil, err
	}
	for _, existing := range r.votes {
		if existing.UserID == v.UserID && existing.Date.Equal(v.Date) {
			return nil, domain.ErrDataConflict
		}
	}
	r.nextID++
	stored := *v
	stored.ID = fmt.Sprintf("v%d", r.nextID)
	r.votes[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubVoteRepo) Update(_ context.Context, v *domain.Vote) error {
	if _, ok := r.votes[v.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *v
	r.votes[v.ID] = &stored
	r.updates++
	return nil
}

func (r *stubVoteRepo) FindByID(_ context.Context, id, userID string) (*domain.Vote, error) {
	v, ok := r.votes[id]
	if !ok || v.UserID != userID {
		return nil, domain.ErrNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVoteRepo) FindByUserAndDate(_ context.Context, userID string, date time.Time) (*domain.Vote, error) {
	for _, v := range r.votes {
		if v.UserID == userID && v.Date.Equal(date) {
			clone := *v
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubVoteRepo) ListByDate(_ context.Context, date time.Time) ([]*domain.Vote, error) {
	var out []*domain.Vote
	for _, v := range r.votes {
		if v.Date.Equal(date) {
			clone := *v
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func (r *stubVoteRepo) CountByDate(_ context.Context, date time.Time) ([]domain.VoteResult, error) {
	counts := make(map[string]int64)
	for _, v := range r.votes {
		if v.Date.Equal(date) {
			counts[v.RestaurantID]++
		}
	}
	out := make([]domain.VoteResult, 0, len(counts))
	for id, n := range counts {
		out = append(out, domain.VoteResult{RestaurantID: id, Votes: n})
	}
	return out, nil
}

type recordingDispatcher struct {
	events []ports.VoteEvent
}

func (d *recordingDispatcher) Enqueue(e ports.VoteEvent) {
	d.events = append(d.events, e)
}
