// Package logger configures the application's structured logging.
//
// It uses zerolog everywhere: a human-friendly console writer in the
// local environment, plain JSON lines otherwise.
package logger

import (
	"os"

	"github.com/pairloom/profiles/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// New builds the application logger from config.
//
// The local env gets colored console output and debug level; every other
// env gets JSON at info level. Caller stacks are attached to errors via
// the pkgerrors stack marshaler so Error().Stack() works.
func New(cfg *config.Config) *zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var logger zerolog.Logger
	if cfg.Primary.Env == "local" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stderr).
			Level(zerolog.InfoLevel).
			With().Timestamp().Str("service", "profiles-api").Logger()
	}

	return &logger
}
