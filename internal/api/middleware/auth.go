package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/lunchvote/voting-api/internal/core/ports"
)

const principalKey = "principal"

// Auth validates the JWT and injects the caller's principal into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims.GetSubject()
			if sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
			}
			email, _ := claims["email"].(string)

			c.Set(principalKey, ports.Principal{
				UserID: sub,
				Email:  email,
				Roles:  stringSlice(claims["roles"]),
			})

			return next(c)
		}
	}
}

// PrincipalFrom returns the principal set by Auth.
func PrincipalFrom(c echo.Context) (ports.Principal, bool) {
	p, ok := c.Get(principalKey).(ports.Principal)
	return p, ok
}

// WithPrincipal stores p on the context the way Auth does.
func WithPrincipal(c echo.Context, p ports.Principal) {
	c.Set(principalKey, p)
}

// stringSlice converts a decoded JSON array claim.
func stringSlice(v any) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
