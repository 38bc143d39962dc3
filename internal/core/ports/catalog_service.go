package ports

import (
	"context"
	"time"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// RestaurantService defines use-case operations for restaurants.
type RestaurantService interface {
	Create(ctx context.Context, name string) (*domain.Restaurant, error)
	Update(ctx context.Context, r *domain.Restaurant) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Restaurant, error)
	GetAll(ctx context.Context) ([]*domain.Restaurant, error)
	// MenusForDate lists restaurants that serve dishes on date, with those dishes.
	MenusForDate(ctx context.Context, date time.Time) ([]domain.RestaurantMenu, error)
}

// DishInput carries the editable fields of a dish.
type DishInput struct {
	ID    string
	Name  string
	Date  time.Time
	Price int64
}

// DishService defines use-case operations for dishes.
type DishService interface {
	Create(ctx context.Context, restaurantID string, in DishInput) (*domain.Dish, error)
	Update(ctx context.Context, restaurantID string, in DishInput) error
	Delete(ctx context.Context, id, restaurantID string) error
	Get(ctx context.Context, id, restaurantID string) (*domain.Dish, error)
	GetAll(ctx context.Context) ([]*domain.Dish, error)
	GetAllForDate(ctx context.Context, date time.Time) ([]*domain.Dish, error)
	GetAllByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Dish, error)
	GetAllByRestaurantAndDate(ctx context.Context, restaurantID string, date time.Time) ([]*domain.Dish, error)
}
