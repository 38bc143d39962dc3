package sql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunchvote/voting-api/internal/core/domain"
	"github.com/lunchvote/voting-api/internal/core/ports"
)

// DishRepository implements ports.DishRepository with GORM.
type DishRepository struct {
	db *gorm.DB
}

func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{db: db}
}

func (r *DishRepository) Create(ctx context.Context, d *domain.Dish) (*domain.Dish, error) {
	m := dishModel{
		ID:           uuid.NewString(),
		RestaurantID: d.RestaurantID,
		Name:         d.Name,
		Date:         d.Date,
		Price:        d.Price,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("insert dish: %w", translate(err))
	}
	return m.toDomain(), nil
}

func (r *DishRepository) Update(ctx context.Context, d *domain.Dish) error {
	res := r.db.WithContext(ctx).Model(&dishModel{}).
		Where("id = ? AND restaurant_id = ?", d.ID, d.RestaurantID).
		Updates(map[string]any{"name": d.Name, "date": d.Date, "price": d.Price})
	if res.Error != nil {
		return fmt.Errorf("update dish: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DishRepository) Delete(ctx context.Context, id, restaurantID string) error {
	res := r.db.WithContext(ctx).Delete(&dishModel{}, "id = ? AND restaurant_id = ?", id, restaurantID)
	if res.Error != nil {
		return fmt.Errorf("delete dish: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DishRepository) FindByID(ctx context.Context, id, restaurantID string) (*domain.Dish, error) {
	var m dishModel
	if err := r.db.WithContext(ctx).First(&m, "id = ? AND restaurant_id = ?", id, restaurantID).Error; err != nil {
		return nil, translate(err)
	}
	return m.toDomain(), nil
}

func (r *DishRepository) List(ctx context.Context, f ports.DishFilter) ([]*domain.Dish, error) {
	q := r.db.WithContext(ctx).Model(&dishModel{})
	if f.RestaurantID != "" {
		q = q.Where("restaurant_id = ?", f.RestaurantID)
	}
	if !f.Date.IsZero() {
		q = q.Where("date = ?", f.Date)
	}

	var ms []dishModel
	if err := q.Order("date DESC").Order("name").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("find dishes: %w", err)
	}
	out := make([]*domain.Dish, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.toDomain())
	}
	return out, nil
}
