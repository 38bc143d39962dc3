package ports

import (
	"context"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// CreateUserInput carries an administrator-created account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Roles    []string
	Enabled  bool
}

// UpdateUserInput carries a full administrator update. An empty Password
// keeps the stored hash.
type UpdateUserInput struct {
	ID       string
	Name     string
	Email    string
	Password string
	Roles    []string
	Enabled  bool
}

// ProfileInput is what users may change about themselves, and what they
// submit when registering.
type ProfileInput struct {
	Name     string
	Email    string
	Password string
}

// UserService defines use-case operations for the user directory.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Register(ctx context.Context, in ProfileInput) (*domain.User, error)
	Update(ctx context.Context, in UpdateUserInput) error
	UpdateProfile(ctx context.Context, id string, in ProfileInput) error
	SetEnabled(ctx context.Context, id string, enabled bool) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
}
