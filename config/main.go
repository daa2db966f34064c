package config

import (
	"context"
	"time"

	"github.com/akeren/commit-waitlist/config/router"
	"github.com/akeren/commit-waitlist/internal/log"
	"github.com/akeren/commit-waitlist/internal/models"
	"github.com/akeren/commit-waitlist/pkg/constants"
	"github.com/akeren/commit-waitlist/pkg/lazy"
	"github.com/akeren/commit-waitlist/pkg/utils"
	"gorm.io/gorm"
)

type ApplicationConfig struct {
	RouterService *router.RouterService
	Logger        *log.Logger
	Site          *SiteConfig
	Waitlist      *WaitlistConfig
	Backend       Backend
	// Database is only set for BackendSQL; nothing connects until first use.
	Database        *lazy.Handle[*gorm.DB]
	Config          *AppConfig
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RequestTimeout time.Duration
}

func NewAppConfig() *AppConfig {
	config := &AppConfig{
		RequestTimeout: constants.DefaultRequestTimeout,
	}

	if timeoutStr := utils.GetEnvTrimmed("REQUEST_TIMEOUT"); timeoutStr != "" {
		if parsed, err := time.ParseDuration(timeoutStr); err == nil && parsed > 0 {
			config.RequestTimeout = parsed
		}
	}

	return config
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if db, ok := ac.Database.Peek(); ok {
		CloseDatabase(db, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	waitlistCfg := NewWaitlistConfig()
	backend, err := waitlistCfg.ResolveBackend()
	if err != nil {
		return nil, err
	}
	waitlistCfg.LogSummary(logger, backend)

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	var database *lazy.Handle[*gorm.DB]
	if backend == BackendSQL {
		database = NewLazyDatabase(logger, &DBConfig{}, autoMigrate, models.ModelRegistry...)
	} else if autoMigrate {
		logger.Warn("--auto-migrate ignored; waitlist backend does not use the SQL store", "backend", string(backend))
	}

	appConfig := NewAppConfig()

	routerService := router.CreateRouterService(logger, &router.RouterConfig{
		RequestTimeout: appConfig.RequestTimeout,
	})

	logger.Info("Application configuration loaded successfully")

	return &ApplicationConfig{
		RouterService:   routerService,
		Logger:          logger,
		Site:            NewSiteConfig(),
		Waitlist:        waitlistCfg,
		Backend:         backend,
		Database:        database,
		Config:          appConfig,
		TracingShutdown: tracingShutdown,
	}, nil
}
