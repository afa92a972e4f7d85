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

	"github.com/geniusforceai/familydash/internal/api"
	"github.com/geniusforceai/familydash/internal/core/service"
	"github.com/geniusforceai/familydash/internal/infrastructure/airtable"
	"github.com/geniusforceai/familydash/internal/infrastructure/config"
	mongodb "github.com/geniusforceai/familydash/internal/infrastructure/db/mongo"
	redisdb "github.com/geniusforceai/familydash/internal/infrastructure/db/redis"
	"github.com/geniusforceai/familydash/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- External stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		User:     cfg.Mongo.User,
		Password: cfg.Mongo.Password,
		Cluster:  cfg.Mongo.Cluster,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	tables := airtable.NewRegistry(airtable.NewClient(airtable.Config{
		APIKey:  cfg.Airtable.APIKey,
		BaseID:  cfg.Airtable.BaseID,
		BaseURL: cfg.Airtable.BaseURL,
	}), log)

	// --- Repositories & services ---
	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("creating user indexes failed")
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL(), log)
	if err := authService.InitAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	financeService := service.NewFinanceService(mongodb.NewFinanceRepository(db), log)

	e := api.NewRouter(api.Dependencies{
		Mongo:     db,
		Redis:     rdb,
		Tables:    tables,
		Auth:      authService,
		Finance:   financeService,
		Throttle:  redisdb.NewLoginThrottle(rdb, log),
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting api server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
