package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marketkit/marketplace-system/internal/api/handler"
	"github.com/marketkit/marketplace-system/internal/api/middleware"
	"github.com/marketkit/marketplace-system/internal/core/domain"
	"github.com/marketkit/marketplace-system/internal/core/ports"
	"github.com/marketkit/marketplace-system/internal/core/token"
)

// newEcho builds an Echo instance with the middleware stack every service
// shares: panic recovery, request ids, request logging, CORS for the local
// frontend, prometheus instrumentation, the central error handler, and the
// identity resolver. The resolver runs before any route handler, so handlers
// and policy see the same identity without re-parsing the token.
func newEcho(codec *token.Codec, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:4200", "http://127.0.0.1:4200", "http://localhost", "http://127.0.0.1"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Authorization", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))
	// HTTP metrics get a registry per instance so routers can be built more
	// than once in a process; /metrics also serves the default registry,
	// which holds the domain counters.
	httpMetrics := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "marketplace",
		Registerer: httpMetrics,
	}))
	e.Use(middleware.ResolveIdentity(codec, log))

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{httpMetrics, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// NewUserRouter wires the user service: registration, login, health.
func NewUserRouter(authService ports.AuthService, codec *token.Codec, db *mongo.Database, log zerolog.Logger) *echo.Echo {
	e := newEcho(codec, log)

	authHandler := handler.NewAuthHandler(authService)
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	registerHealth(e, db, nil)
	return e
}

// NewProductRouter wires the product service. Listing and retrieval are open;
// mutations go through the role gate; the media-attach route is guarded by
// the internal trust gate alone.
func NewProductRouter(productService ports.ProductService, codec *token.Codec, internalSecret string, db *mongo.Database, log zerolog.Logger) *echo.Echo {
	e := newEcho(codec, log)

	productHandler := handler.NewProductHandler(productService)

	e.GET("/api/products", productHandler.List)
	e.GET("/api/products/mine", productHandler.ListOwn, middleware.RequireAuthenticated())
	e.GET("/api/products/:id", productHandler.Get)

	sellerOnly := middleware.RequireRole(domain.RoleSeller)
	e.POST("/api/products", productHandler.Create, sellerOnly)
	e.PUT("/api/products/:id", productHandler.Update, sellerOnly)
	e.DELETE("/api/products/:id", productHandler.Delete, sellerOnly)

	// Internal sync channel: shared secret only, unreachable with a bearer token.
	e.POST("/api/products/:id/images", productHandler.AttachMedia, middleware.InternalOnly(internalSecret))

	registerHealth(e, db, nil)
	return e
}

// NewMediaRouter wires the media service: seller-only upload, open reads.
func NewMediaRouter(mediaService ports.MediaService, codec *token.Codec, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := newEcho(codec, log)

	mediaHandler := handler.NewMediaHandler(mediaService)

	e.POST("/api/media/upload", mediaHandler.Upload, middleware.RequireRole(domain.RoleSeller))
	e.GET("/api/media/product/:productId", mediaHandler.ByProduct)
	e.GET("/api/media/file/:filename", mediaHandler.File)

	registerHealth(e, db, rdb)
	return e
}

func registerHealth(e *echo.Echo, db *mongo.Database, rdb *redis.Client) {
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)
}
