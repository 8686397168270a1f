package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/marketkit/marketplace-system/internal/core/authz"
	"github.com/marketkit/marketplace-system/internal/core/domain"
)

// RequireRole rejects requests whose resolved identity does not hold role.
// Anonymous requests are rejected too: an absent identity never satisfies a
// role requirement.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, _ := IdentityFromContext(c)
			if !authz.RequireRole(identity, role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequireAuthenticated rejects anonymous requests.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := IdentityFromContext(c); !ok {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
