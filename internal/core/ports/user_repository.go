package ports

import (
	"context"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
// Emails are expected to be normalized by the caller.
type UserRepository interface {
	// Create assigns an ID and stores the user. A taken email yields domain.ErrDataConflict.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update replaces the stored user with the same ID.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes the user together with their votes.
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindAll returns every user ordered by name, then email.
	FindAll(ctx context.Context) ([]*domain.User, error)
}
