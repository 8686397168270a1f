package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marketkit/marketplace-system/internal/api"
	"github.com/marketkit/marketplace-system/internal/core/service"
	"github.com/marketkit/marketplace-system/internal/core/token"
	"github.com/marketkit/marketplace-system/internal/infrastructure/config"
	mongodb "github.com/marketkit/marketplace-system/internal/infrastructure/db/mongo"
	"github.com/marketkit/marketplace-system/pkg/logger"
)

func main() {
	cfg := config.Load(slog.Default())
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	codec := token.NewCodec(cfg.SigningKey(), token.DefaultTTL)
	users := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(users, codec, log)

	e := api.NewUserRouter(authService, codec, db, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("user service listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
