package sql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// VoteRepository implements ports.VoteRepository with GORM. The unique
// (user_id, date) index backs the one-vote-per-day rule.
type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Create(ctx context.Context, v *domain.Vote) (*domain.Vote, error) {
	m := voteModel{
		ID:           uuid.NewString(),
		UserID:       v.UserID,
		RestaurantID: v.RestaurantID,
		Date:         v.Date,
		Time:         v.Time,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("insert vote: %w", translate(err))
	}
	return m.toDomain(), nil
}

func (r *VoteRepository) Update(ctx context.Context, v *domain.Vote) error {
	res := r.db.WithContext(ctx).Model(&voteModel{}).
		Where("id = ?", v.ID).
		Updates(map[string]any{"restaurant_id": v.RestaurantID, "cast_at": v.Time})
	if res.Error != nil {
		return fmt.Errorf("update vote: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VoteRepository) FindByID(ctx context.Context, id, userID string) (*domain.Vote, error) {
	var m voteModel
	if err := r.db.WithContext(ctx).First(&m, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, translate(err)
	}
	return m.toDomain(), nil
}

func (r *VoteRepository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.Vote, error) {
	var m voteModel
	if err := r.db.WithContext(ctx).First(&m, "user_id = ? AND date = ?", userID, date).Error; err != nil {
		return nil, translate(err)
	}
	return m.toDomain(), nil
}

func (r *VoteRepository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Vote, error) {
	var ms []voteModel
	if err := r.db.WithContext(ctx).Where("date = ?", date).Order("cast_at").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("find votes: %w", err)
	}
	out := make([]*domain.Vote, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *VoteRepository) CountByDate(ctx context.Context, date time.Time) ([]domain.VoteResult, error) {
	var rows []struct {
		RestaurantID string
		Votes        int64
	}
	err := r.db.WithContext(ctx).Model(&voteModel{}).
		Select("restaurant_id, COUNT(*) AS votes").
		Where("date = ?", date).
		Group("restaurant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}

	out := make([]domain.VoteResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.VoteResult{RestaurantID: row.RestaurantID, Votes: row.Votes})
	}
	return out, nil
}
