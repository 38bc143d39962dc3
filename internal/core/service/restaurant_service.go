package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lunchvote/voting-api/internal/core/domain"
	"github.com/lunchvote/voting-api/internal/core/ports"
)

type RestaurantService struct {
	repo   ports.RestaurantRepository
	dishes ports.DishRepository
	logger zerolog.Logger
}

func NewRestaurantService(repo ports.RestaurantRepository, dishes ports.DishRepository, logger zerolog.Logger) *RestaurantService {
	return &RestaurantService{repo: repo, dishes: dishes, logger: logger}
}

func (s *RestaurantService) Create(ctx context.Context, name string) (*domain.Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("restaurant name is required: %w", domain.ErrValidation)
	}
	created, err := s.repo.Create(ctx, &domain.Restaurant{Name: name})
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	s.logger.Info().Str("restaurant_id", created.ID).Str("name", created.Name).Msg("restaurant created")
	return created, nil
}

func (s *RestaurantService) Update(ctx context.Context, r *domain.Restaurant) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("restaurant name is required: %w", domain.ErrValidation)
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return fmt.Errorf("update restaurant id=%s: %w", r.ID, err)
	}
	return nil
}

func (s *RestaurantService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete restaurant id=%s: %w", id, err)
	}
	s.logger.Info().Str("restaurant_id", id).Msg("restaurant deleted")
	return nil
}

func (s *RestaurantService) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("restaurant id=%s: %w", id, err)
	}
	return r, nil
}

func (s *RestaurantService) GetAll(ctx context.Context) ([]*domain.Restaurant, error) {
	return s.repo.FindAll(ctx)
}

// MenusForDate joins the day's dishes onto their restaurants. Restaurants
// keep name order; dishes keep repository order.
func (s *RestaurantService) MenusForDate(ctx context.Context, date time.Time) ([]domain.RestaurantMenu, error) {
	date = domain.DateOf(date)
	dishes, err := s.dishes.List(ctx, ports.DishFilter{Date: date})
	if err != nil {
		return nil, fmt.Errorf("list dishes for %s: %w", domain.FormatDate(date), err)
	}
	byRestaurant := make(map[string][]domain.Dish)
	for _, d := range dishes {
		byRestaurant[d.RestaurantID] = append(byRestaurant[d.RestaurantID], *d)
	}

	restaurants, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}

	menus := make([]domain.RestaurantMenu, 0, len(byRestaurant))
	for _, r := range restaurants {
		if ds, ok := byRestaurant[r.ID]; ok {
			menus = append(menus, domain.RestaurantMenu{Restaurant: *r, Dishes: ds})
		}
	}
	return menus, nil
}
