package ports

import (
	"context"
	"time"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// VoteRepository defines persistence operations for the vote ledger.
// The store guarantees at most one vote per (user, date).
type VoteRepository interface {
	// Create stores a new vote. A vote already present for the same user and
	// date yields domain.ErrDataConflict.
	Create(ctx context.Context, v *domain.Vote) (*domain.Vote, error)
	// Update overwrites restaurant and time of the vote with v.ID.
	Update(ctx context.Context, v *domain.Vote) error
	FindByID(ctx context.Context, id, userID string) (*domain.Vote, error)
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.Vote, error)
	// ListByDate returns the day's votes ordered by time of cast.
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Vote, error)
	// CountByDate returns per-restaurant vote counts; names are not filled in.
	CountByDate(ctx context.Context, date time.Time) ([]domain.VoteResult, error)
}
