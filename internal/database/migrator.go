package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"

	"github.com/phreshly/cleanings-backend/internal/config"
)

// Embed all SQL files under migrations/ at compile time, so the
// binary carries its migrations and does not depend on the filesystem
// at runtime.
//
//go:embed migrations/*.sql
var migrations embed.FS

// VersionTable is where tern records the applied schema version.
const VersionTable = "schema_version"

// newMigrator opens a tern migrator on conn with the embedded
// migrations loaded. Migrations use a single direct connection; a
// pool buys nothing for a one-shot sequential operation.
func newMigrator(ctx context.Context, conn *pgx.Conn) (*tern.Migrator, error) {
	m, err := tern.NewMigrator(ctx, conn, VersionTable)
	if err != nil {
		return nil, fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return nil, fmt.Errorf("loading database migrations: %w", err)
	}

	return m, nil
}

// Migrate applies all pending migrations against a live connection.
//
// Any failure is returned to the caller and is expected to be fatal:
// there is no retry or partial-success handling. Operators resolve the
// conflict and rerun.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	logger.Info().Msg("running migrations online")

	conn, err := pgx.Connect(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := newMigrator(ctx, conn)
	if err != nil {
		return err
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}

// MigrateToBaseline reverts every applied migration, leaving the
// schema at the empty baseline (version 0). Test sessions use this as
// their guaranteed teardown.
func MigrateToBaseline(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	logger.Info().Msg("reverting migrations to baseline")

	conn, err := pgx.Connect(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := newMigrator(ctx, conn)
	if err != nil {
		return err
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.MigrateTo(ctx, 0); err != nil {
		return err
	}

	logger.Info().Msgf("reverted database schema, from %d to baseline", from)
	return nil
}
