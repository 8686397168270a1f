package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"

	"github.com/marketkit/marketplace-system/internal/api/metrics"
	"github.com/marketkit/marketplace-system/internal/core/domain"
)

// HeaderInternalToken carries the shared secret on service-to-service calls.
const HeaderInternalToken = "X-Internal-Token"

// AuthorizeInternal reports whether provided grants access to the internal
// trust channel. The gate fails closed: an unconfigured (empty) secret never
// authorizes anything, including an empty provided value.
func AuthorizeInternal(configured, provided string) bool {
	if configured == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(provided)) == 1
}

// InternalOnly guards endpoints that only trusted services may call. It is
// the sole authorization mechanism on those routes and never consults the
// bearer-token identity.
func InternalOnly(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !AuthorizeInternal(secret, c.Request().Header.Get(HeaderInternalToken)) {
				metrics.InternalTrustDeniedTotal.Inc()
				return domain.ErrInternalTrustDenied
			}
			return next(c)
		}
	}
}
