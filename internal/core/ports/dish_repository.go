package ports

import (
	"context"
	"time"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// DishFilter narrows dish listings. Zero values mean "any".
type DishFilter struct {
	RestaurantID string
	Date         time.Time
}

// DishRepository defines persistence operations for dishes. Single-dish
// operations are scoped by restaurant: a dish of another restaurant is not found.
type DishRepository interface {
	Create(ctx context.Context, d *domain.Dish) (*domain.Dish, error)
	Update(ctx context.Context, d *domain.Dish) error
	Delete(ctx context.Context, id, restaurantID string) error
	FindByID(ctx context.Context, id, restaurantID string) (*domain.Dish, error)
	// List returns dishes ordered by date descending, then name.
	List(ctx context.Context, filter DishFilter) ([]*domain.Dish, error)
}
