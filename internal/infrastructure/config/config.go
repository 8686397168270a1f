package config

import (
	"context"
	"log/slog"

	"github.com/sethvargo/go-envconfig"
)

// devSigningKey is the documented fallback used when JWT_SECRET is unset.
// It exists only so demo and local runs work out of the box; production
// deployments must set JWT_SECRET.
const devSigningKey = "ReplaceThisWithASecureRandomSecretKeyOfSufficientLength123!"

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs and verifies bearer tokens. All services must share
	// the same value or tokens issued by one are unverifiable by the others.
	JWTSecret string `env:"JWT_SECRET"`

	// InternalToken is the shared secret for the service-to-service sync
	// channel. Left empty, the internal trust gate fails closed and the
	// media service skips sync notifications entirely.
	InternalToken string `env:"INTERNAL_TOKEN"`

	ProductServiceURL string `env:"PRODUCT_SERVICE_URL, default=http://product-service:8082"`
	MediaServiceURL   string `env:"MEDIA_SERVICE_URL,   default=http://localhost:8083"`

	UploadDir string `env:"UPLOAD_DIR, default=uploads"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger *slog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error("Failed to load configuration", "error", err)
		panic(err)
	}
	return &cfg
}

// SigningKey returns the token signing secret, falling back to the dev-only
// constant when JWT_SECRET is unset. The key is fixed for the process
// lifetime; tokens issued under a previous key do not survive a restart with
// a different one.
func (c *Config) SigningKey() string {
	if c.JWTSecret != "" {
		return c.JWTSecret
	}
	return devSigningKey
}
