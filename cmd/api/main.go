package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/redis/go-redis/v9"

	"github.com/lojinha/catalog-api/internal/api"
	"github.com/lojinha/catalog-api/internal/infrastructure/config"
	"github.com/lojinha/catalog-api/internal/infrastructure/db/postgres"
	redisdb "github.com/lojinha/catalog-api/internal/infrastructure/db/redis"
	"github.com/lojinha/catalog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Catalog API
// @version      1.0
// @description  Product catalog CRUD behind a bearer-token gate, with a registration/login flow under /seguranca.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// Mirrors the legacy dotenv behaviour: a missing .env is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.SecretKey == "" {
		log.Fatal().Msg("SECRET_KEY is required")
	}

	ctx := context.Background()

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("role cache enabled")
	}

	e := api.NewRouter(db, rdb, cfg, log)
	e.Use(echoprometheus.NewMiddleware("catalog"))
	e.GET("/metrics", echoprometheus.NewHandler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("database close failed")
		}
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}

	log.Info().Msg("shutdown complete")
}
