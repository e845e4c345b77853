package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jwalitptl/hospital-api/config"
	"github.com/jwalitptl/hospital-api/internal/handler/health"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/pkg/validator"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// Handlers are the resource handlers mounted under the API base path.
type Handlers struct {
	Health     *health.Handler
	Patient    Handler
	Medication Handler
	Department Handler
	Treatment  Handler
	Query      Handler
}

type Router struct {
	engine   *gin.Engine
	handlers Handlers
	basePath string
	gatherer prometheus.Gatherer
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

// NewRouter builds the engine and its middleware chain. Collectors are
// registered on reg and served from gatherer at /metrics.
func NewRouter(cfg *config.Config, handlers Handlers, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*Router, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	if err := validator.RegisterWithGin(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	engine := gin.New()
	// Treatment dates arrive as percent-encoded "MM/DD/YYYY" path segments.
	engine.UseRawPath = true
	engine.UnescapePathValues = true

	r := &Router{
		engine:   engine,
		handlers: handlers,
		basePath: cfg.Server.BasePath,
		gatherer: gatherer,
		metrics:  initRouterMetrics(reg),
	}

	// Recovery sits inside Logger and metrics so panics are logged and counted.
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RPS:   cfg.RateLimit.RequestsPerSecond,
			Burst: cfg.RateLimit.Burst,
		})
		engine.Use(limiter.RateLimit())
	}

	r.setup()
	return r, nil
}

func (r *Router) setup() {
	if r.handlers.Health != nil {
		r.engine.GET("/health", r.handlers.Health.HealthCheck)
	}
	if r.gatherer != nil {
		r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	api := r.engine.Group(r.basePath)
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(api)
	}

	for _, h := range []Handler{
		r.handlers.Patient,
		r.handlers.Medication,
		r.handlers.Department,
		r.handlers.Treatment,
		r.handlers.Query,
	} {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "route not found"})
	})
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(reg prometheus.Registerer) *routerMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &routerMetrics{
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "hospital",
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hospital",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hospital",
				Name:      "http_errors_total",
				Help:      "Total number of HTTP errors",
			},
			[]string{"method", "path", "class"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Route templates keep label cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		code := c.Writer.Status()
		status := fmt.Sprintf("%d", code)

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		switch {
		case code >= 500:
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "server").Inc()
		case code >= 400:
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "client").Inc()
		}
	}
}
