package ports

import (
	"context"
	"time"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// CastResult is returned after a vote was accepted.
type CastResult struct {
	Vote *domain.Vote
	// Changed is true when an earlier vote of the same day was overwritten.
	Changed bool
}

// VoteService defines use-case operations for the vote ledger.
type VoteService interface {
	// Cast records userID's choice of restaurantID for today, creating or
	// overwriting the day's vote. After the cutoff it fails with
	// domain.ErrVotingTimeIsOut and nothing is written.
	Cast(ctx context.Context, userID, restaurantID string) (*CastResult, error)
	Get(ctx context.Context, id, userID string) (*domain.Vote, error)
	GetForUser(ctx context.Context, userID string, date time.Time) (*domain.Vote, error)
	GetAllForDate(ctx context.Context, date time.Time) ([]*domain.Vote, error)
	Results(ctx context.Context, date time.Time) ([]domain.VoteResult, error)
	// Today returns the current date in the voting time zone.
	Today() time.Time
}
