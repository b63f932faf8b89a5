package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/pairloom/profiles/internal/config"
	"github.com/rs/zerolog"
)

// Migrations ship inside the binary so deployments never depend on the
// filesystem layout at runtime.
//
//go:embed migrations
var migrations embed.FS

// Migrate brings the schema up to date for the configured engine.
//
// PostgreSQL uses tern with versioned migrations tracked in the
// schema_version table. SQLite executes an idempotent schema file
// (CREATE TABLE IF NOT EXISTS), matching how the table is a single flat
// relation with no migration history to speak of.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	if cfg.Database.Driver == config.DriverPostgres {
		return migratePostgres(ctx, logger, cfg)
	}
	return migrateSQLite(ctx, logger, cfg)
}

func migratePostgres(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	// A single direct connection; migrations are a one-time action and do
	// not need the pool.
	conn, err := pgx.Connect(ctx, PostgresDSN(&cfg.Database))
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
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

func migrateSQLite(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	schema, err := migrations.ReadFile("migrations/sqlite/schema.sql")
	if err != nil {
		return fmt.Errorf("reading sqlite schema: %w", err)
	}

	driverName, dsn := BuildDSN(&cfg.Database)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("opening database for migrations: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("applying sqlite schema: %w", err)
	}

	logger.Info().Msg("sqlite schema applied")
	return nil
}
