// Command migrate is the schema-migration runner.
//
// Online mode (the default) connects to the database resolved from
// application configuration and applies every pending migration.
// Offline mode renders the equivalent SQL to stdout without a live
// connection, for running against a URL-only target:
//
//	migrate              # apply all pending migrations
//	migrate -down        # revert to the empty baseline
//	migrate -offline     # print forward SQL, execute nothing
//	migrate -offline -down
package main

import (
	"context"
	"flag"
	"os"

	"github.com/phreshly/cleanings-backend/internal/config"
	"github.com/phreshly/cleanings-backend/internal/database"
	"github.com/phreshly/cleanings-backend/internal/logger"
)

func main() {
	offline := flag.Bool("offline", false, "render SQL to stdout instead of executing")
	down := flag.Bool("down", false, "revert to the empty baseline instead of migrating up")
	flag.Parse()

	// Offline rendering touches neither the database nor the
	// environment, so it runs before configuration is loaded.
	if *offline {
		log := logger.Fallback()
		direction := database.DirectionUp
		if *down {
			direction = database.DirectionDown
		}
		if err := database.RenderMigrations(os.Stdout, &log, direction); err != nil {
			log.Fatal().Err(err).Msg("failed to render migrations")
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fallback := logger.Fallback()
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg)

	ctx := context.Background()
	if *down {
		err = database.MigrateToBaseline(ctx, &log, cfg)
	} else {
		err = database.Migrate(ctx, &log, cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
