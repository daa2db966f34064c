package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/commit-waitlist/internal/log"
	"github.com/akeren/commit-waitlist/pkg/lazy"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SSLMode         string // Default: "require" for prod safety
}

func (cfg *DBConfig) withDefaults() *DBConfig {
	out := DBConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Minute,
		SSLMode:         "require",
	}
	if cfg == nil {
		return &out
	}
	if cfg.MaxIdleConns > 0 {
		out.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.MaxOpenConns > 0 {
		out.MaxOpenConns = cfg.MaxOpenConns
	}
	if cfg.ConnMaxLifetime > 0 {
		out.ConnMaxLifetime = cfg.ConnMaxLifetime
	}
	if cfg.SSLMode != "" {
		out.SSLMode = cfg.SSLMode
	}
	return &out
}

// SQLDatabaseConfigured reports whether APP_DATABASE_URL or POSTGRES_HOST is set.
func SQLDatabaseConfigured() bool {
	if sanitizeEnv(GetValueFromEnvironmentVariable("APP_DATABASE_URL", "")) != "" {
		return true
	}
	return sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_HOST", "")) != ""
}

func NewDatabase(ctx context.Context, logger *log.Logger, cfg *DBConfig) (*gorm.DB, error) {
	cfg = cfg.withDefaults()

	dsn, err := buildDSNFromEnv(logger, cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(postgres.Open(dsn), newGormConfig())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Error("Failed to get database instance", "error", err)
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("Database ping failed", "error", err)
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Database connection established successfully")
	return gdb, nil
}

// newGormConfig leaves driver errors untranslated. gorm's postgres translator
// swaps several *pgconn.PgError values for bare sentinels, losing the SQLSTATE
// and message that store failures report to the client.
func newGormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: false}
}

// NewLazyDatabase defers connecting until the first submission needs the store.
// A failed connect is retried by the next caller.
func NewLazyDatabase(logger *log.Logger, cfg *DBConfig, autoMigrate bool, models ...interface{}) *lazy.Handle[*gorm.DB] {
	return lazy.New(func(ctx context.Context) (*gorm.DB, error) {
		db, err := NewDatabase(ctx, logger, cfg)
		if err != nil {
			return nil, err
		}

		if autoMigrate {
			if err := AutoMigrate(logger, db, models...); err != nil {
				CloseDatabase(db, logger)
				return nil, err
			}
		}

		return db, nil
	})
}

func buildDSNFromEnv(logger *log.Logger, cfg *DBConfig) (string, error) {
	if appDatabaseURL := sanitizeEnv(GetValueFromEnvironmentVariable("APP_DATABASE_URL", "")); appDatabaseURL != "" {
		logger.Info("Using APP_DATABASE_URL for database connection")
		return appDatabaseURL, nil
	}

	host, portStr, user, pass, dbName, ssl := getDatabaseEnvParams()
	if ssl == "" {
		ssl = cfg.SSLMode
	}

	missing := []string{}

	if host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}

	if portStr == "" {
		missing = append(missing, "POSTGRES_PORT")
	}

	if user == "" {
		missing = append(missing, "POSTGRES_USER")
	}

	if dbName == "" {
		missing = append(missing, "POSTGRES_DB_NAME")
	}

	if len(missing) > 0 {
		logger.Error("Missing required database environment variables", "missing_vars", strings.Join(missing, ", "))
		return "", fmt.Errorf("missing required database env vars: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		logger.Error("Invalid POSTGRES_PORT", "error", err)
		return "", fmt.Errorf("invalid POSTGRES_PORT %q: %w", portStr, err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, dbName, ssl,
	)

	logger.Info("Connecting to database",
		"host", host,
		"port", port,
		"user", user,
		"dbname", dbName,
		"sslmode", ssl,
	)
	return dsn, nil
}

func getDatabaseEnvParams() (host, port, user, pass, dbName, ssl string) {
	host = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_HOST", ""))
	port = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_PORT", ""))
	user = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_USER", ""))
	pass = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_PASSWORD", ""))
	dbName = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_DB_NAME", ""))
	ssl = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_SSLMODE", ""))

	return host, port, user, pass, dbName, ssl
}

// sanitizeEnv trims whitespace and one pair of matching surrounding quotes.
func sanitizeEnv(v string) string {
	s := strings.TrimSpace(v)

	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	return s
}

func AutoMigrate(logger *log.Logger, db *gorm.DB, models ...interface{}) error {
	if db == nil {
		logger.Error("Cannot migrate: db is empty")
		return fmt.Errorf("cannot migrate: db is empty")
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Database migration failed", "error", err)
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database migration completed successfully")

	return nil
}

func CloseDatabase(db *gorm.DB, logger *log.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	} else {
		logger.Info("Database closed successfully")
	}
}
