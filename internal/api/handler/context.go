package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/marketkit/marketplace-system/internal/api/middleware"
	"github.com/marketkit/marketplace-system/internal/core/domain"
)

// currentIdentity returns the authenticated principal installed by the
// identity resolver, or nil for anonymous callers. Handlers pass the result
// straight to the service layer, where policy is decided.
func currentIdentity(c echo.Context) *domain.Identity {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return nil
	}
	return identity
}
