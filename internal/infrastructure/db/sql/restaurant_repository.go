package sql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// RestaurantRepository implements ports.RestaurantRepository with GORM.
type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *domain.Restaurant) (*domain.Restaurant, error) {
	m := restaurantModel{ID: uuid.NewString(), Name: rest.Name}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("insert restaurant: %w", translate(err))
	}
	return &domain.Restaurant{ID: m.ID, Name: m.Name}, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, rest *domain.Restaurant) error {
	res := r.db.WithContext(ctx).Model(&restaurantModel{}).Where("id = ?", rest.ID).Update("name", rest.Name)
	if res.Error != nil {
		return fmt.Errorf("update restaurant: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the restaurant with its dishes and votes in one transaction.
func (r *RestaurantRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&restaurantModel{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete restaurant: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Delete(&dishModel{}, "restaurant_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete dishes of restaurant %s: %w", id, err)
		}
		if err := tx.Delete(&voteModel{}, "restaurant_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete votes of restaurant %s: %w", id, err)
		}
		return nil
	})
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	var m restaurantModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &domain.Restaurant{ID: m.ID, Name: m.Name}, nil
}

func (r *RestaurantRepository) FindAll(ctx context.Context) ([]*domain.Restaurant, error) {
	var ms []restaurantModel
	if err := r.db.WithContext(ctx).Order("name").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("find restaurants: %w", err)
	}
	out := make([]*domain.Restaurant, 0, len(ms))
	for _, m := range ms {
		out = append(out, &domain.Restaurant{ID: m.ID, Name: m.Name})
	}
	return out, nil
}
