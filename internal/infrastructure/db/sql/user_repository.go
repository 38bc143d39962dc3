package sql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository with GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := toUserModel(user)
	m.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("insert user: %w", translate(err))
	}
	return m.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := toUserModel(user)
	res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", user.ID).Updates(map[string]any{
		"name":          m.Name,
		"email":         m.Email,
		"password_hash": m.PasswordHash,
		"roles":         m.Roles,
		"enabled":       m.Enabled,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update user: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// Delete removes the user with their votes in one transaction.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&userModel{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Delete(&voteModel{}, "user_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete votes of user %s: %w", id, err)
		}
		return nil
	})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	var ms []userModel
	if err := r.db.WithContext(ctx).Order("name").Order("email").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	out := make([]*domain.User, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.toDomain())
	}
	return out, nil
}
