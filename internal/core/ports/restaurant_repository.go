package ports

import (
	"context"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// RestaurantRepository defines persistence operations for restaurants.
type RestaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error)
	Update(ctx context.Context, r *domain.Restaurant) error
	// Delete removes the restaurant together with its dishes and votes.
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	// FindAll returns every restaurant ordered by name.
	FindAll(ctx context.Context) ([]*domain.Restaurant, error)
}
