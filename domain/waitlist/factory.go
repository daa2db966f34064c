package waitlist

import (
	"net/http"

	"github.com/akeren/commit-waitlist/config"
	"github.com/akeren/commit-waitlist/config/router"
)

type WaitlistServiceFactory interface {
	CreatePersister() Persister
	CreateService() WaitlistService
	CreateController() *router.RESTController
}

type DefaultWaitlistServiceFactory struct {
	appConfig  *config.ApplicationConfig
	httpClient *http.Client
	persister  Persister
}

func NewWaitlistServiceFactory(appConfig *config.ApplicationConfig) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		appConfig:  appConfig,
		httpClient: NewOutboundClient(appConfig.Config.RequestTimeout),
	}
}

// CreatePersister builds the persister for the backend resolved at startup.
// The same instance is returned on every call so its lazy handles are shared.
func (f *DefaultWaitlistServiceFactory) CreatePersister() Persister {
	if f.persister != nil {
		return f.persister
	}

	cfg := f.appConfig.Waitlist
	logger := f.appConfig.Logger

	switch f.appConfig.Backend {
	case config.BackendWebhook:
		f.persister = NewWebhookPersister(cfg.WebhookURL, cfg.WebhookSecret, f.httpClient, logger)
	case config.BackendREST:
		f.persister = NewRESTPersister(RESTStoreConfig{
			BaseURL: cfg.SupabaseURL,
			Key:     cfg.ServerKey(),
		}, f.httpClient, logger)
	case config.BackendSQL:
		db := f.appConfig.Database
		if db == nil {
			db = config.NewLazyDatabase(logger, &config.DBConfig{}, false)
			f.appConfig.Database = db
		}
		f.persister = NewSQLPersister(LazyRepository(db), logger)
	default:
		f.persister = NewNoopPersister(logger)
	}

	return f.persister
}

func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	return NewWaitlistService(f.appConfig.Logger, f.CreatePersister())
}

func (f *DefaultWaitlistServiceFactory) CreateController() *router.RESTController {
	return NewWaitlistController(f.CreateService(), f.appConfig.Logger)
}
