package database

import (
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Direction selects which side of a migration offline rendering emits.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// disableMarker separates the up and down SQL inside a tern migration
// file. Everything above it migrates forward, everything below
// reverts. This is tern's own file format; rendering reuses it because
// tern's Migrator cannot be constructed without a live connection,
// which is exactly what offline mode does not have.
const disableMarker = "---- create above / drop below ----"

// RenderMigrations writes the SQL of every embedded migration to w
// without executing anything, for running against a URL-only target
// (e.g. piping a script to a DBA).
//
// DirectionUp emits migrations in order; DirectionDown emits the
// revert statements in reverse order, ending at the empty baseline.
func RenderMigrations(w io.Writer, logger *zerolog.Logger, direction Direction) error {
	logger.Info().Str("direction", string(direction)).Msg("running migrations offline")

	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("listing database migrations: %w", err)
	}
	sort.Strings(names)

	if direction == DirectionDown {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}

	for _, name := range names {
		raw, err := fs.ReadFile(migrations, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		sql, err := splitMigration(string(raw), direction)
		if err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
		if sql == "" {
			continue
		}

		if _, err := fmt.Fprintf(w, "-- %s (%s)\n%s\n\n", name, direction, sql); err != nil {
			return fmt.Errorf("writing migration %s: %w", name, err)
		}
	}

	return nil
}

// splitMigration returns the requested side of a migration file. A
// file without the marker is up-only, matching tern's handling.
func splitMigration(content string, direction Direction) (string, error) {
	up, down, found := strings.Cut(content, disableMarker)

	switch direction {
	case DirectionUp:
		return strings.TrimSpace(up), nil
	case DirectionDown:
		if !found {
			return "", nil
		}
		return strings.TrimSpace(down), nil
	default:
		return "", fmt.Errorf("unknown migration direction %q", direction)
	}
}
