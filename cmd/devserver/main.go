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

	"github.com/clinicdesk/clinic-queue/internal/config"
	"github.com/clinicdesk/clinic-queue/internal/stub"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("APP_ENV") != "prod" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	logger.Info().Msg("devserver starting up")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load error")
	}
	if cfg.AdminPassword == "" {
		logger.Fatal().Msg("ADMIN_CONSOLE_PASSWORD is required")
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := stub.NewStore()
	if cfg.SeedCount > 0 {
		stub.Seed(store, cfg.SeedCount)
		logger.Info().Int("count", cfg.SeedCount).Msg("seeded demo appointments")
	}

	sessions := stub.NewAdminSessions(cfg.AdminPassword, cfg.SessionTTL)

	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: stub.NewRouter(stub.RouterConfig{
			Store:    store,
			Sessions: sessions,
			Logger:   logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-rootCtx.Done()
	logger.Info().Msg("shutting down devserver")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
