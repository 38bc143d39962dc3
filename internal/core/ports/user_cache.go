package ports

import (
	"context"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// UserListCache holds the whole, sorted user listing. Any user write
// invalidates it entirely.
type UserListCache interface {
	// Get returns the cached listing; ok is false on a miss.
	Get(ctx context.Context) (users []*domain.User, ok bool, err error)
	Set(ctx context.Context, users []*domain.User) error
	Invalidate(ctx context.Context) error
}
