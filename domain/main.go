package domain

import (
	"github.com/akeren/commit-waitlist/config"
	"github.com/akeren/commit-waitlist/domain/monitoring"
	"github.com/akeren/commit-waitlist/domain/site"
	"github.com/akeren/commit-waitlist/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	waitlistFactory := waitlist.NewWaitlistServiceFactory(appConfig)
	persister := waitlistFactory.CreatePersister()

	appConfig.RouterService.MountController(site.NewSiteController(appConfig.Site, appConfig.Logger))
	appConfig.RouterService.MountController(waitlistFactory.CreateController())
	appConfig.RouterService.MountController(monitoring.NewMonitoringControllerFactory(persister, appConfig.Logger).CreateController())
}
