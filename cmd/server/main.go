package main

import (
	"context"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/akeren/commit-waitlist/config"
	"github.com/akeren/commit-waitlist/domain"
	"github.com/akeren/commit-waitlist/internal/log"
)

// drainTimeout bounds how long in-flight signups get to finish on shutdown.
const drainTimeout = 15 * time.Second

func wantsAutoMigrate(args []string) bool {
	return slices.ContainsFunc(args, func(arg string) bool {
		return arg == "--auto-migrate" || arg == "-m"
	})
}

func main() {
	logger := log.NewLoggerWithJSONOutput()

	appConfig, err := config.LoadApplicationConfiguration(logger, wantsAutoMigrate(os.Args[1:]))
	if err != nil {
		logger.Error("Commit waitlist could not start", "error", err.Error())
		os.Exit(1)
	}
	logger.Info("Commit waitlist configured", "backend", string(appConfig.Backend))

	domain.SetupCoreDomain(appConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Serving landing page and waitlist API")
		serveErr <- appConfig.RouterService.RunHTTPServer()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Waitlist server stopped unexpectedly", "error", err)
			appConfig.Cleanup()
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("Stop requested; draining in-flight signups", "timeout", drainTimeout.String())

		drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()

		if err := appConfig.RouterService.Shutdown(drainCtx); err != nil {
			logger.Error("Signups still in flight at drain deadline", "error", err)
		}
	}

	appConfig.Cleanup()
	logger.Info("Commit waitlist stopped")
}
