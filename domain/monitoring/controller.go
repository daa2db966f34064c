package monitoring

import (
	"context"
	"time"

	"github.com/akeren/commit-waitlist/config/router"
	"github.com/akeren/commit-waitlist/internal/log"
)

const healthCheckTimeout = 2 * time.Second

// StoreHealth reports on the active persistence backend. Healthy must not
// force a lazy store to initialise.
type StoreHealth interface {
	Backend() string
	Healthy(ctx context.Context) bool
}

type HealthStatus struct {
	Backend string `json:"backend"`
	Store   int    `json:"store"`  // 1 = initialised and reachable
	Uptime  int    `json:"uptime"` // seconds
}

type MonitoringController struct {
	store     StoreHealth
	logger    *log.Logger
	startTime time.Time
}

func NewMonitoringController(store StoreHealth, logger *log.Logger) *router.RESTController {
	ctrl := &MonitoringController{
		store:     store,
		logger:    logger,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			routerService.AddGetHandler(controller, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})
		},
	)
}

func (ctrl *MonitoringController) healthCheck(
	routerService *router.RouterService,
	c *router.RequestContext,
) *router.ServiceResult {
	logger := routerService.GetLogger(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := ctrl.performHealthChecks(ctx, logger)

	return router.OKResult(status, "commit-waitlist health check completed")
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Backend: ctrl.store.Backend(),
		Uptime:  int(time.Since(ctrl.startTime).Seconds()),
	}

	if ctrl.store.Healthy(ctx) {
		status.Store = 1
		logger.Debug("Store health check passed", "backend", status.Backend)
	} else {
		logger.Debug("Store not initialised or unreachable", "backend", status.Backend)
	}

	return status
}
