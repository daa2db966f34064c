package monitoring

import (
	"github.com/akeren/commit-waitlist/config/router"
	"github.com/akeren/commit-waitlist/internal/log"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	store  StoreHealth
	logger *log.Logger
}

func NewMonitoringControllerFactory(store StoreHealth, logger *log.Logger) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{
		store:  store,
		logger: logger,
	}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.store, f.logger)
}
