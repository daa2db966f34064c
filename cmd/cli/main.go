package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/akeren/commit-waitlist/config"
	"github.com/akeren/commit-waitlist/domain/waitlist"
	"github.com/akeren/commit-waitlist/internal/log"
	"github.com/akeren/commit-waitlist/pkg/constants"
	"github.com/akeren/commit-waitlist/pkg/migrations"
	"github.com/akeren/commit-waitlist/pkg/utils"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "migrate":
		down := len(args) > 1 && args[1] == "down"
		if err := runMigrations(logger, down); err != nil {
			logger.Error("Database migration failed", "error", err.Error())
			os.Exit(1)
		}
		logger.Info("Database migrations completed")
		return

	case "join":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "usage: cli join <email>")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultRequestTimeout)
		code := runJoin(ctx, joinEndpoint(), args[1], waitlist.NewOutboundClient(constants.DefaultRequestTimeout), os.Stdout)
		cancel()
		os.Exit(code)

	case "help", "-h", "--help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func runMigrations(logger *log.Logger, down bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := config.NewDatabase(ctx, logger, &config.DBConfig{})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("sql handle: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close SQL DB after migration", "error", err.Error())
		}
	}()

	cfg := migrations.Config{
		Dir:    utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", migrations.DefaultDir),
		Logger: logger,
	}

	if down {
		return migrations.Down(ctx, sqlDB, cfg)
	}
	return migrations.Up(ctx, sqlDB, cfg)
}

func printUsage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate          Apply pending SQL migrations and exit")
	fmt.Println("  migrate down     Revert all SQL migrations and exit")
	fmt.Println("  join <email>     Submit an email to the waitlist endpoint (WAITLIST_ENDPOINT or SITE_URL)")
}
