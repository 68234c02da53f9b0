// Package apptest provides the test fixtures for integration tests:
// session-scoped schema migrations, per-test application
// construction, and an in-process HTTP client.
//
// Integration tests need a reachable PostgreSQL server, configured
// through CLEANINGS_TEST_DATABASE_URL. When the variable is unset,
// fixtures skip the requesting test, so unit tests and CI without a
// database still pass.
//
// The database name from the URL gets the usual "_test" suffix via
// testing mode, so a URL pointing at the development database still
// migrates and mutates a separate throwaway schema.
package apptest

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/phreshly/cleanings-backend/internal/config"
	"github.com/phreshly/cleanings-backend/internal/database"
	"github.com/phreshly/cleanings-backend/internal/handler"
	"github.com/phreshly/cleanings-backend/internal/middleware"
	"github.com/phreshly/cleanings-backend/internal/repository"
	"github.com/phreshly/cleanings-backend/internal/router"
	"github.com/phreshly/cleanings-backend/internal/server"
	"github.com/phreshly/cleanings-backend/internal/service"
)

// EnvTestDatabaseURL names the env var holding the PostgreSQL URL
// integration tests run against.
const EnvTestDatabaseURL = "CLEANINGS_TEST_DATABASE_URL"

// Enabled reports whether integration tests can run in this
// environment.
func Enabled() bool {
	return os.Getenv(EnvTestDatabaseURL) != ""
}

// Config builds the application config for tests from
// CLEANINGS_TEST_DATABASE_URL, with testing mode switched on. Tests
// that need a database are skipped when the variable is unset.
func Config(tb testing.TB) *config.Config {
	tb.Helper()

	cfg, err := configFromEnv()
	if err != nil {
		tb.Fatalf("building test config: %v", err)
	}
	if cfg == nil {
		tb.Skipf("%s not set; skipping integration test", EnvTestDatabaseURL)
	}
	return cfg
}

// configFromEnv parses the test database URL into a Config. It
// returns (nil, nil) when integration testing is not configured.
func configFromEnv() (*config.Config, error) {
	raw := os.Getenv(EnvTestDatabaseURL)
	if raw == "" {
		return nil, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", EnvTestDatabaseURL, err)
	}

	port := 5432
	if p := u.Port(); p != "" {
		if port, err = strconv.Atoi(p); err != nil {
			return nil, fmt.Errorf("parsing %s port: %w", EnvTestDatabaseURL, err)
		}
	}

	password, _ := u.User.Password()
	sslMode := u.Query().Get("sslmode")
	if sslMode == "" {
		sslMode = "disable"
	}

	return &config.Config{
		Primary: config.Primary{
			Env: "testing",
			// Testing mode appends "_test" to the database name.
			Testing: true,
		},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			Host:     u.Hostname(),
			Port:     port,
			User:     u.User.Username(),
			Password: password,
			Name:     strings.TrimPrefix(u.Path, "/"),
			SSLMode:  sslMode,
		},
		Logging: config.LoggingConfig{
			Level:  "error",
			Format: "console",
		},
	}, nil
}

// Run is the session fixture, called from TestMain. It applies all
// migrations before any test runs and reverts them down to the empty
// baseline after the session completes, regardless of individual test
// outcomes. Without a configured database it just runs the tests.
func Run(m *testing.M) int {
	cfg, err := configFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if cfg == nil {
		return m.Run()
	}

	log := zerolog.Nop()
	ctx := context.Background()

	if err := database.Migrate(ctx, &log, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "applying test migrations: %v\n", err)
		return 1
	}

	code := m.Run()

	// Teardown runs whatever the tests did.
	if err := database.MigrateToBaseline(ctx, &log, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "reverting test migrations: %v\n", err)
		return 1
	}

	return code
}

// App constructs a fresh application for one test: server container,
// repositories, services, handlers and router. It depends on Run
// having applied migrations. The database pool is released when the
// owning test finishes.
func App(t *testing.T) (*server.Server, *echo.Echo) {
	t.Helper()

	cfg := Config(t)
	log := zerolog.Nop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	srv, err := server.New(ctx, cfg, &log)
	if err != nil {
		t.Fatalf("constructing test server: %v", err)
	}
	t.Cleanup(func() {
		_ = srv.DB.Close()
	})

	repos := repository.NewRepositories(srv)
	services, err := service.NewServices(srv, repos)
	if err != nil {
		t.Fatalf("constructing test services: %v", err)
	}

	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)
	e := router.New(srv, handlers, middlewares)

	return srv, e
}

// DB returns the database handle of a constructed application,
// scoped to the same test as the app itself.
func DB(srv *server.Server) *pgxpool.Pool {
	return srv.DB.Pool
}
