package ports

import (
	"context"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// Principal is the authenticated caller resolved from a token.
type Principal struct {
	UserID string
	Email  string
	Roles  []string
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	for _, r := range p.Roles {
		if r == domain.RoleAdmin {
			return true
		}
	}
	return false
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
