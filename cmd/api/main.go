// Command api runs the cleanings backend: it loads configuration,
// applies pending schema migrations, and serves the HTTP API until
// interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phreshly/cleanings-backend/internal/config"
	"github.com/phreshly/cleanings-backend/internal/database"
	"github.com/phreshly/cleanings-backend/internal/handler"
	"github.com/phreshly/cleanings-backend/internal/logger"
	"github.com/phreshly/cleanings-backend/internal/middleware"
	"github.com/phreshly/cleanings-backend/internal/repository"
	"github.com/phreshly/cleanings-backend/internal/router"
	"github.com/phreshly/cleanings-backend/internal/server"
	"github.com/phreshly/cleanings-backend/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger config may itself be broken, so build a bare one.
		fallback := logger.Fallback()
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Migrations are all-or-nothing per invocation: any failure here
	// is fatal and the operator resolves and reruns.
	if err := database.Migrate(ctx, &log, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	srv, err := server.New(ctx, cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)
	e := router.New(srv, handlers, middlewares)

	srv.SetupHTTPServer(e)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown did not complete cleanly")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
