package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lunchvote/voting-api/internal/api/middleware"
	"github.com/lunchvote/voting-api/internal/core/domain"
	"github.com/lunchvote/voting-api/internal/core/ports"
)

// newContext builds an echo context with the validator registered and, if
// p is non-nil, the principal the Auth middleware would have set.
func newContext(method, target string, body io.Reader, p *ports.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		middleware.WithPrincipal(c, *p)
	}
	return c, rec
}

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

// stubUserService embeds the interface so tests only implement what they call.
type stubUserService struct {
	ports.UserService
	createFn        func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	registerFn      func(ctx context.Context, in ports.ProfileInput) (*domain.User, error)
	updateFn        func(ctx context.Context, in ports.UpdateUserInput) error
	updateProfileFn func(ctx context.Context, id string, in ports.ProfileInput) error
	setEnabledFn    func(ctx context.Context, id string, enabled bool) error
	getFn           func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Register(ctx context.Context, in ports.ProfileInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) Update(ctx context.Context, in ports.UpdateUserInput) error {
	return s.updateFn(ctx, in)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, id string, in ports.ProfileInput) error {
	return s.updateProfileFn(ctx, id, in)
}

func (s *stubUserService) SetEnabled(ctx context.Context, id string, enabled bool) error {
	return s.setEnabledFn(ctx, id, enabled)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

type stubDishService struct {
	ports.DishService
	createFn        func(ctx context.Context, restaurantID string, in ports.DishInput) (*domain.Dish, error)
	updateFn        func(ctx context.Context, restaurantID string, in ports.DishInput) error
	byRestaurantFn  func(ctx context.Context, restaurantID string) ([]*domain.Dish, error)
	byRestAndDateFn func(ctx context.Context, restaurantID string, date time.Time) ([]*domain.Dish, error)
}

func (s *stubDishService) Create(ctx context.Context, restaurantID string, in ports.DishInput) (*domain.Dish, error) {
	return s.createFn(ctx, restaurantID, in)
}

func (s *stubDishService) Update(ctx context.Context, restaurantID string, in ports.DishInput) error {
	return s.updateFn(ctx, restaurantID, in)
}

func (s *stubDishService) GetAllByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Dish, error) {
	return s.byRestaurantFn(ctx, restaurantID)
}

func (s *stubDishService) GetAllByRestaurantAndDate(ctx context.Context, restaurantID string, date time.Time) ([]*domain.Dish, error) {
	return s.byRestAndDateFn(ctx, restaurantID, date)
}

type stubVoteService struct {
	ports.VoteService
	today        time.Time
	castFn       func(ctx context.Context, userID, restaurantID string) (*ports.CastResult, error)
	getForUserFn func(ctx context.Context, userID string, date time.Time) (*domain.Vote, error)
	resultsFn    func(ctx context.Context, date time.Time) ([]domain.VoteResult, error)
}

func (s *stubVoteService) Cast(ctx context.Context, userID, restaurantID string) (*ports.CastResult, error) {
	return s.castFn(ctx, userID, restaurantID)
}

func (s *stubVoteService) GetForUser(ctx context.Context, userID string, date time.Time) (*domain.Vote, error) {
	return s.getForUserFn(ctx, userID, date)
}

func (s *stubVoteService) Results(ctx context.Context, date time.Time) ([]domain.VoteResult, error) {
	return s.resultsFn(ctx, date)
}

func (s *stubVoteService) Today() time.Time {
	return s.today
}
