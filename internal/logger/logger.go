// Package logger configures the application's structured logging.
//
// It uses zerolog for all application output and adapts zerolog to
// the pgx tracelog interface so SQL statements show up in local logs.
package logger

import (
	"os"
	"strings"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/phreshly/cleanings-backend/internal/config"
)

func init() {
	// Errors wrapped with pkg/errors carry stack traces; this makes
	// logger.Error().Stack() render them as structured fields.
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// New builds the application logger from config.
//
// Format "console" produces human-readable output on stderr for local
// development; anything else produces JSON for log pipelines.
func New(cfg *config.Config) zerolog.Logger {
	level := ParseLevel(cfg.Logging.Level)

	var logger zerolog.Logger
	if cfg.Logging.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().
		Timestamp().
		Str("env", cfg.Primary.Env).
		Logger()
}

// Fallback returns a console logger usable before config is loaded.
func Fallback() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// ParseLevel maps a config level string to a zerolog level.
// Unknown values fall back to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewPgxLogger derives a logger for pgx query tracing. SQL output is
// noisy, so it inherits the global level rather than forcing debug.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// PgxTraceLogLevel converts a zerolog level into the tracelog level
// pgx expects for its query logger.
func PgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelInfo
	}
}
