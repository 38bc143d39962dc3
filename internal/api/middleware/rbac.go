package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// RBAC enforces role-based access control. The caller must carry at least
// one of allowedRoles.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, _ := PrincipalFrom(c)
			for _, role := range p.Roles {
				if _, ok := allowed[role]; ok {
					return next(c)
				}
			}
			return fmt.Errorf("%s %s requires one of %v: %w", c.Request().Method, c.Path(), allowedRoles, domain.ErrForbidden)
		}
	}
}
