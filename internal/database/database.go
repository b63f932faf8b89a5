// Package database owns the storage engine handle.
//
// It opens a database/sql pool over one of two drivers — modernc sqlite
// (default, a single local file) or pgx for PostgreSQL — applies pool
// tuning from config, and verifies connectivity at startup. The pool is
// created once and shared as the only process-wide mutable resource;
// every request borrows a connection scoped to its own context.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pairloom/profiles/internal/config"
	"github.com/rs/zerolog"

	// database/sql driver registrations.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DatabasePingTimeout is the number of seconds to wait for the startup
// ping before considering the database unreachable.
const DatabasePingTimeout = 10

// Database wraps the sql.DB pool together with the driver it was opened
// with and a logger for lifecycle events.
type Database struct {
	DB     *sql.DB
	driver string
	log    *zerolog.Logger
}

// New opens the configured storage engine and verifies it with a ping.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	driverName, dsn := BuildDSN(&cfg.Database)

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)

	database := &Database{
		DB:     db,
		driver: cfg.Database.Driver,
		log:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info().Str("driver", cfg.Database.Driver).Msg("connected to the database")

	return database, nil
}

// BuildDSN returns the sql.Open driver name and DSN for the configured
// engine.
func BuildDSN(cfg *config.DatabaseConfig) (driverName, dsn string) {
	if cfg.Driver == config.DriverPostgres {
		return "pgx", PostgresDSN(cfg)
	}
	// Foreign keys and WAL are per-connection settings in sqlite, so they
	// travel in the DSN where every pooled connection picks them up.
	// busy_timeout keeps concurrent writers queueing instead of failing
	// with SQLITE_BUSY.
	return "sqlite", cfg.Path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)"
}

// PostgresDSN builds a postgres:// connection string from config. The
// password is URL-escaped so special characters cannot break the URL
// structure, and the host/port pair is joined IPv6-safely.
func PostgresDSN(cfg *config.DatabaseConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	encodedPassword := url.QueryEscape(cfg.Password)

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.User,
		encodedPassword,
		hostPort,
		cfg.Name,
		cfg.SSLMode,
	)
}

// Rebind rewrites `?` placeholders into the numbered `$n` form when the
// active driver is postgres. Queries in the repository layer are written
// once with `?`, which sqlite accepts natively.
func (db *Database) Rebind(query string) string {
	if db.driver != config.DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Close closes the connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	return db.DB.Close()
}
