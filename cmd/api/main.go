package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortress/user-system/internal/api"
	"github.com/fortress/user-system/internal/api/handler"
	"github.com/fortress/user-system/internal/core/ports"
	"github.com/fortress/user-system/internal/core/service"
	"github.com/fortress/user-system/internal/infrastructure/config"
	"github.com/fortress/user-system/internal/infrastructure/crypto"
	csvstore "github.com/fortress/user-system/internal/infrastructure/db/csv"
	mongostore "github.com/fortress/user-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/fortress/user-system/internal/infrastructure/db/redis"
	"github.com/fortress/user-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	readiness := map[string]handler.Pinger{}

	var repo ports.UserRepository
	switch cfg.Store.Driver {
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		mongoRepo := mongostore.NewUserRepository(db)
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}
		repo = mongoRepo
		readiness["mongo"] = func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		}
	case "csv":
		csvRepo, err := csvstore.NewUserRepository(cfg.Store.CSVPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Store.CSVPath).Msg("csv store load failed")
		}
		repo = csvRepo
	default:
		log.Fatal().Str("driver", cfg.Store.Driver).Msg("unknown store driver")
	}

	var throttle handler.LoginThrottle
	if cfg.Redis.Addr != "" {
		limiter, rdb, err := redisinfra.Open(ctx, redisinfra.Config{
			Addr:        cfg.Redis.Addr,
			DB:          cfg.Redis.DB,
			MaxAttempts: cfg.Redis.LoginMaxAttempts,
			Window:      cfg.Redis.LoginWindow,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()

		throttle = limiter
		readiness["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}

	hasher := crypto.NewArgon2Hasher()
	tokens := service.NewTokenService(service.TokenConfig{
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})
	authService := service.NewAuthService(repo, tokens, hasher, log)
	userService := service.NewUserService(repo, hasher, log)

	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		UserService: userService,
		Throttle:    throttle,
		Readiness:   readiness,
		Logger:      log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("store", cfg.Store.Driver).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
