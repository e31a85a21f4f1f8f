package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agendavida/clinic-agenda/internal/api"
	"github.com/agendavida/clinic-agenda/internal/appointment"
	"github.com/agendavida/clinic-agenda/internal/auth"
	"github.com/agendavida/clinic-agenda/internal/config"
	"github.com/agendavida/clinic-agenda/internal/db"
	"github.com/agendavida/clinic-agenda/internal/directory"
	"github.com/agendavida/clinic-agenda/internal/redisclient"
	"github.com/agendavida/clinic-agenda/internal/user"
)

const version = "0.1.0"

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "api-server").Logger()
	logger.Info().Msg("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load error")
	}

	if cfg.Env == "dev" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Str("service", "api-server").Logger()
	}
	logger.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Msg("configuration loaded")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	logger.Info().Msg("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(rootCtx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing redis")
		}
	}()
	logger.Info().Msg("connected to Redis")

	// Repositories
	userRepo := user.NewPgRepository(pgPool)
	consultaRepo := appointment.NewPgRepository(pgPool)
	profRepo := directory.NewPgRepository(pgPool)

	// Services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	revoked := redisclient.NewRedisRevocationStore(rdb)
	authSvc := auth.NewService(userRepo, tokens, revoked, logger)
	dirSvc := directory.NewService(profRepo, userRepo, logger)
	apptSvc := appointment.NewService(consultaRepo, dirSvc, logger)

	handler := api.NewRouter(api.RouterConfig{
		Auth:         authSvc,
		Appointments: apptSvc,
		Directory:    dirSvc,
		PgPool:       pgPool,
		Redis:        rdb,
		Env:          cfg.Env,
		Version:      version,
		CORSOrigins:  cfg.CORSOrigins,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-rootCtx.Done()

	logger.Info().Msg("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
