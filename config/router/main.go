package router

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/commit-waitlist/internal/log"
	apperrors "github.com/akeren/commit-waitlist/pkg/errors"
	"github.com/akeren/commit-waitlist/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	// DefaultTimeoutDuration is the default request timeout
	DefaultTimeoutDuration = 30 * time.Second
)

type MiddlewareConfig struct {
	TimeoutDuration time.Duration
}

type RouterService struct {
	engine           *gin.Engine
	server           *http.Server
	logger           *log.Logger
	registry         *prometheus.Registry
	middlewareConfig *MiddlewareConfig

	handlerToControllerMap map[string]*RESTController
}

type RouterConfig struct {
	RequestTimeout time.Duration
}

func CreateRouterService(logger *log.Logger, routerConfig *RouterConfig) *RouterService {
	if routerConfig == nil || routerConfig.RequestTimeout <= 0 {
		routerConfig = &RouterConfig{RequestTimeout: DefaultTimeoutDuration}
	}

	if mode, ok := os.LookupEnv("GIN_MODE"); ok && mode != "" {
		logger.Info("Setting Gin mode", "mode", mode)
		gin.SetMode(mode)
	}

	ginRouter := gin.New()

	rs := &RouterService{
		engine:           ginRouter,
		logger:           logger,
		registry:         prometheus.NewRegistry(),
		middlewareConfig: &MiddlewareConfig{TimeoutDuration: routerConfig.RequestTimeout},

		handlerToControllerMap: make(map[string]*RESTController),
	}

	ginRouter.Use(RecoveryMiddleware(func(c *RequestContext, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, InternalServerErrorResult("Internal server error").ToJSON())
	}))

	if utils.IsTracingEnabled() {
		serviceName := utils.OTelServiceName()
		ginRouter.Use(otelgin.Middleware(serviceName))
		logger.Info("Tracing middleware enabled")
	}

	// Gin trusts every proxy by default, which lets X-Forwarded-For spoof
	// ClientIP(). Trust is opt-in through TRUSTED_PROXIES.
	trustedProxies := parseTrustedProxiesEnv(os.Getenv("TRUSTED_PROXIES"))
	if err := ginRouter.SetTrustedProxies(trustedProxies); err != nil {
		logger.Error("Invalid TRUSTED_PROXIES; disabling trusted proxies", "error", err)
		_ = ginRouter.SetTrustedProxies(nil)
	} else if trustedProxies == nil {
		logger.Info("Trusted proxies disabled (TRUSTED_PROXIES not set)")
	}

	rs.mountMetrics()

	ginRouter.Use(rs.securityHeadersMiddleware())
	ginRouter.Use(rs.maxBodySizeMiddleware())
	ginRouter.Use(rs.corsMiddleware())
	ginRouter.Use(rs.timeoutMiddleware())

	ginRouter.Use(rs.correlationIDMiddleware())
	ginRouter.Use(rs.loggerInjectionMiddleware())
	ginRouter.Use(rs.requestLoggingMiddleware())

	ginRouter.HandleMethodNotAllowed = true
	ginRouter.RedirectTrailingSlash = true

	ginRouter.NoRoute(func(c *gin.Context) {
		correlatedLogger := logger.WithCorrelationID(c.Request.Context())
		correlatedLogger.Warn("Route not found", "path", c.Request.URL.Path)
		c.JSON(http.StatusNotFound, gin.H{
			"code":    apperrors.StatusNotFound,
			"message": "Route not found",
			"data":    nil,
		})
	})

	ginRouter.NoMethod(func(c *gin.Context) {
		correlatedLogger := logger.WithCorrelationID(c.Request.Context())
		correlatedLogger.Warn("Method not allowed", "method", c.Request.Method, "path", c.Request.URL.Path)
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"code":    apperrors.StatusMethodNotAllowed,
			"message": "Method not allowed",
			"data":    nil,
		})
	})

	rs.server = &http.Server{
		Addr:    ":8080", // Default, will be overridden in RunHTTPServer
		Handler: ginRouter,

		// gin.Context is not goroutine-safe, so handlers are never raced
		// against a timer; the server timeouts bound them instead.
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       routerConfig.RequestTimeout,
		WriteTimeout:      routerConfig.RequestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Router service initialized", "request_timeout", routerConfig.RequestTimeout)
	return rs
}

// RecoveryMiddleware turns a panic in the remaining chain into onPanic's response.
// onPanic must abort the context.
func RecoveryMiddleware(onPanic func(c *RequestContext, recovered any)) MiddlewareFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		GetLogger(c).Error("Recovered from panic", "panic", fmt.Sprint(recovered), "path", c.Request.URL.Path)
		onPanic(c, recovered)
	})
}

func parseTrustedProxiesEnv(v string) []string {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	if s == "*" {
		// Local/dev escape hatch.
		return []string{"0.0.0.0/0", "::/0"}
	}
	parts := strings.Split(s, ",")
	proxies := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			proxies = append(proxies, p)
		}
	}
	if len(proxies) == 0 {
		return nil
	}
	return proxies
}

func (routerService *RouterService) GetEngine() *gin.Engine {
	return routerService.engine
}

// SetHTMLTemplate installs the templates rendered by c.HTML.
func (routerService *RouterService) SetHTMLTemplate(tmpl *template.Template) {
	routerService.engine.SetHTMLTemplate(tmpl)
}

func (routerService *RouterService) GetLogger(c *RequestContext) *log.Logger {
	return routerService.logger.WithCorrelationID(c.Request.Context())
}

func (routerService *RouterService) Cleanup() {
	routerService.logger.Info("Router service cleanup completed", "handlers", len(routerService.handlerToControllerMap))
}

func (routerService *RouterService) MountController(controller *RESTController) {
	routerService.logger.Info("Mounting controller",
		"name", controller.name,
		"path", controller.mountPoint,
	)

	controller.prepare(routerService, controller)

	routerService.logger.Info("Controller mounted",
		"name", controller.name,
		"handlers", controller.handlerCount,
	)
}

func (routerService *RouterService) RunHTTPServer() error {
	appPort, ok := os.LookupEnv("APP_PORT")
	if !ok || appPort == "" {
		appPort = "8080"
	}
	addr := ":" + appPort

	routerService.server.Addr = addr

	routerService.logger.Info("HTTP listener bound", "addr", addr)

	if err := routerService.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		routerService.logger.Error("HTTP listener failed", "addr", addr, "error", err)
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	return nil
}

func (routerService *RouterService) Shutdown(ctx context.Context) error {
	routerService.logger.Info("Closing HTTP listener")
	return routerService.server.Shutdown(ctx)
}

func (routerService *RouterService) correlationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Correlation-ID")
		if id == "" {
			id = log.GenerateCorrelationID()
		}
		ctx := context.WithValue(c.Request.Context(), log.CorrelatedIDKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Correlation-ID", id)
		c.Next()
	}
}

func (routerService *RouterService) loggerInjectionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlatedLogger := routerService.logger.WithCorrelationID(c.Request.Context())
		ctx := context.WithValue(c.Request.Context(), log.LoggerKeyForContext, correlatedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (routerService *RouterService) requestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		correlatedLogger := routerService.logger.WithCorrelationID(c.Request.Context())
		correlatedLogger.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"remote_addr", c.ClientIP(),
		)
	}
}

func (routerService *RouterService) securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if shouldSetHSTS(c) {
			h.Set("Strict-Transport-Security", buildHSTSValue())
		}
		c.Next()
	}
}

// shouldSetHSTS defaults to on in production and only for HTTPS requests,
// including TLS terminated at a proxy that sets X-Forwarded-Proto.
func shouldSetHSTS(c *gin.Context) bool {
	appEnv := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))

	if !utils.GetEnvBool("HSTS_ENABLED", appEnv == "production" || appEnv == "prod") {
		return false
	}

	if c.Request.TLS != nil {
		return true
	}
	proto := strings.ToLower(strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")))
	return proto == "https"
}

func buildHSTSValue() string {
	maxAge := int64(31536000)
	if raw := strings.TrimSpace(os.Getenv("HSTS_MAX_AGE")); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			maxAge = parsed
		}
	}

	value := fmt.Sprintf("max-age=%d", maxAge)
	if utils.GetEnvBool("HSTS_INCLUDE_SUBDOMAINS", true) {
		value += "; includeSubDomains"
	}
	return value
}

func (routerService *RouterService) maxBodySizeMiddleware() gin.HandlerFunc {
	// Default: 1 MiB. Adjust via MAX_REQUEST_BODY_BYTES.
	maxBytes := int64(1 << 20)
	if raw := strings.TrimSpace(os.Getenv("MAX_REQUEST_BODY_BYTES")); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			maxBytes = parsed
		}
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResult(
				http.StatusRequestEntityTooLarge,
				"Request payload too large",
				nil,
			).ToJSON())
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

func (routerService *RouterService) corsMiddleware() gin.HandlerFunc {
	allowedOrigins := []string{}
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGIN"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowedOrigins = append(allowedOrigins, o)
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		// Same-origin requests (the landing page form) carry no Origin header.
		if origin == "" || len(allowedOrigins) == 0 {
			c.Next()
			return
		}

		originAllowed := false
		for _, allowedOrigin := range allowedOrigins {
			if allowedOrigin == "*" || allowedOrigin == origin {
				originAllowed = true
				break
			}
		}

		if !originAllowed {
			routerService.logger.Warn("CORS origin not allowed", "origin", origin, "allowed_origins", allowedOrigins)
			c.Next()
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Correlation-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(apperrors.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (routerService *RouterService) timeoutMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		timeout := routerService.middlewareConfig.TimeoutDuration
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// c.Next must stay on this goroutine.
		c.Next()

		// Only reachable when the chain overran without writing anything;
		// mid-flight enforcement is left to the server timeouts.
		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			correlatedLogger := routerService.logger.WithCorrelationID(c.Request.Context())
			correlatedLogger.Warn("Request timeout detected")
			c.AbortWithStatusJSON(http.StatusRequestTimeout, ErrorResult(
				apperrors.StatusRequestTimeout,
				"Request timeout",
				nil,
			).ToJSON())
			return
		}
	}
}
