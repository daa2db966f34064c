package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	DefaultDir   = "migrations"
	DefaultTable = "waitlist_schema_migrations"
)

type migrator interface {
	Up() error
	Down() error
	Close() (sourceErr error, databaseErr error)
}

var driverFactory = func(db *sql.DB, cfg Config) (database.Driver, error) {
	return postgres.WithInstance(db, &postgres.Config{MigrationsTable: cfg.MigrationsTable})
}

var migratorFactory = func(sourceURL string, driver database.Driver) (migrator, error) {
	return migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
}

type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Config struct {
	Dir             string
	MigrationsTable string
	Logger          Logger
}

// Up applies every pending migration in cfg.Dir.
func Up(ctx context.Context, db *sql.DB, cfg Config) error {
	return run(ctx, db, cfg, "up", func(m migrator) error { return m.Up() })
}

// Down reverts every applied migration. The waitlist table is dropped.
func Down(ctx context.Context, db *sql.DB, cfg Config) error {
	return run(ctx, db, cfg, "down", func(m migrator) error { return m.Down() })
}

func run(ctx context.Context, db *sql.DB, cfg Config, direction string, apply func(migrator) error) error {
	if db == nil {
		return fmt.Errorf("migrations: db is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Dir) == "" {
		cfg.Dir = DefaultDir
	}
	if strings.TrimSpace(cfg.MigrationsTable) == "" {
		cfg.MigrationsTable = DefaultTable
	}

	absDir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return fmt.Errorf("migrations: resolve dir: %w", err)
	}

	// ToSlash keeps the file:// URL valid on Windows.
	sourceURL := (&url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absDir),
	}).String()

	driver, err := driverFactory(db, cfg)
	if err != nil {
		return fmt.Errorf("migrations: postgres driver: %w", err)
	}

	m, err := migratorFactory(sourceURL, driver)
	if err != nil {
		return fmt.Errorf("migrations: init: %w", err)
	}
	closeOnce := sync.Once{}
	closeMigrator := func() {
		closeOnce.Do(func() {
			srcErr, dbErr := m.Close()
			if cfg.Logger != nil {
				if srcErr != nil {
					cfg.Logger.Warn("Migrations source close error", "error", srcErr)
				}
				if dbErr != nil {
					cfg.Logger.Warn("Migrations db close error", "error", dbErr)
				}
			}
		})
	}
	defer closeMigrator()

	if cfg.Logger != nil {
		cfg.Logger.Info("Running SQL migrations", "direction", direction, "dir", absDir, "table", cfg.MigrationsTable)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- apply(m)
	}()

	select {
	case <-ctx.Done():
		// migrate has no context support; closing is the only way to interrupt it.
		closeMigrator()
		return ctx.Err()
	case err := <-errCh:
		if err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				if cfg.Logger != nil {
					cfg.Logger.Info("No migrations to apply", "direction", direction)
				}
				return nil
			}
			return fmt.Errorf("migrations: %s: %w", direction, err)
		}
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("Migrations applied successfully", "direction", direction)
	}
	return nil
}
