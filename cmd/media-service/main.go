package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/marketkit/marketplace-system/internal/api"
	"github.com/marketkit/marketplace-system/internal/core/ports"
	"github.com/marketkit/marketplace-system/internal/core/service"
	"github.com/marketkit/marketplace-system/internal/core/token"
	"github.com/marketkit/marketplace-system/internal/infrastructure/config"
	mongodb "github.com/marketkit/marketplace-system/internal/infrastructure/db/mongo"
	redisdb "github.com/marketkit/marketplace-system/internal/infrastructure/db/redis"
	"github.com/marketkit/marketplace-system/internal/infrastructure/storage"
	notify "github.com/marketkit/marketplace-system/internal/infrastructure/sync"
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

	// Redis only backs upload idempotency; the service runs without it.
	var rdb *goredis.Client
	var dedup ports.UploadDeduper
	if rdb, err = redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, upload idempotency disabled")
		rdb = nil
	} else {
		defer func() { _ = rdb.Close() }()
		dedup = redisdb.NewUploadDedup(rdb)
	}

	store, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload dir unavailable")
	}

	codec := token.NewCodec(cfg.SigningKey(), token.DefaultTTL)
	media := mongodb.NewMediaRepository(db)
	notifier := notify.NewProductNotifier(cfg.ProductServiceURL, cfg.InternalToken, log)
	mediaService := service.NewMediaService(media, store, notifier, dedup, cfg.MediaServiceURL, log)

	e := api.NewMediaRouter(mediaService, codec, db, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("media service listening")
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
