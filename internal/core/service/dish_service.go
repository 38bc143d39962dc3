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

type DishService struct {
	repo        ports.DishRepository
	restaurants ports.RestaurantRepository
	logger      zerolog.Logger
}

func NewDishService(repo ports.DishRepository, restaurants ports.RestaurantRepository, logger zerolog.Logger) *DishService {
	return &DishService{repo: repo, restaurants: restaurants, logger: logger}
}

func (s *DishService) Create(ctx context.Context, restaurantID string, in ports.DishInput) (*domain.Dish, error) {
	if in.ID != "" {
		return nil, fmt.Errorf("new dish must not carry an id: %w", domain.ErrValidation)
	}
	if err := validateDish(in); err != nil {
		return nil, err
	}
	if _, err := s.restaurants.FindByID(ctx, restaurantID); err != nil {
		return nil, fmt.Errorf("restaurant id=%s: %w", restaurantID, err)
	}

	created, err := s.repo.Create(ctx, &domain.Dish{
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(in.Name),
		Date:         domain.DateOf(in.Date),
		Price:        in.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("create dish: %w", err)
	}

	s.logger.Info().
		Str("dish_id", created.ID).
		Str("restaurant_id", restaurantID).
		Str("date", domain.FormatDate(created.Date)).
		Msg("dish created")
	return created, nil
}

func (s *DishService) Update(ctx context.Context, restaurantID string, in ports.DishInput) error {
	if err := validateDish(in); err != nil {
		return err
	}
	err := s.repo.Update(ctx, &domain.Dish{
		ID:           in.ID,
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(in.Name),
		Date:         domain.DateOf(in.Date),
		Price:        in.Price,
	})
	if err != nil {
		return fmt.Errorf("update dish id=%s restaurant=%s: %w", in.ID, restaurantID, err)
	}
	return nil
}

func (s *DishService) Delete(ctx context.Context, id, restaurantID string) error {
	if err := s.repo.Delete(ctx, id, restaurantID); err != nil {
		return fmt.Errorf("delete dish id=%s restaurant=%s: %w", id, restaurantID, err)
	}
	return nil
}

func (s *DishService) Get(ctx context.Context, id, restaurantID string) (*domain.Dish, error) {
	d, err := s.repo.FindByID(ctx, id, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("dish id=%s restaurant=%s: %w", id, restaurantID, err)
	}
	return d, nil
}

func (s *DishService) GetAll(ctx context.Context) ([]*domain.Dish, error) {
	return s.repo.List(ctx, ports.DishFilter{})
}

func (s *DishService) GetAllForDate(ctx context.Context, date time.Time) ([]*domain.Dish, error) {
	return s.repo.List(ctx, ports.DishFilter{Date: domain.DateOf(date)})
}

func (s *DishService) GetAllByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Dish, error) {
	return s.repo.List(ctx, ports.DishFilter{RestaurantID: restaurantID})
}

func (s *DishService) GetAllByRestaurantAndDate(ctx context.Context, restaurantID string, date time.Time) ([]*domain.Dish, error) {
	return s.repo.List(ctx, ports.DishFilter{RestaurantID: restaurantID, Date: domain.DateOf(date)})
}

func validateDish(in ports.DishInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("dish name is required: %w", domain.ErrValidation)
	case in.Date.IsZero():
		return fmt.Errorf("dish date is required: %w", domain.ErrValidation)
	case in.Price <= 0:
		return fmt.Errorf("dish price must be positive: %w", domain.ErrValidation)
	}
	return nil
}
