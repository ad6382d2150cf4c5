package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-slots/internal/handler/availability"
	"github.com/jwalitptl/clinic-slots/internal/handler/health"
	promhandler "github.com/jwalitptl/clinic-slots/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-slots/internal/middleware"
)

type Config struct {
	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int
	AllowedOrigins   []string
	RequestTimeout   time.Duration
}

type Router struct {
	engine       *gin.Engine
	config       Config
	auth         *middleware.AuthMiddleware
	availability *availability.Handler
	health       *health.Handler
	metrics      *promhandler.Handler
	httpMetrics  *middleware.HTTPMetrics
}

func NewRouter(
	config Config,
	auth *middleware.AuthMiddleware,
	availabilityH *availability.Handler,
	healthH *health.Handler,
	metricsH *promhandler.Handler,
) *Router {
	engine := gin.New() // Use New() instead of Default() for more control

	r := &Router{
		engine:       engine,
		config:       config,
		auth:         auth,
		availability: availabilityH,
		health:       healthH,
		metrics:      metricsH,
		httpMetrics:  middleware.NewHTTPMetrics("clinic_slots", metricsH.Registry()),
	}

	// Add core middlewares
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		r.httpMetrics.Middleware(),
		middleware.CORS(config.AllowedOrigins),
		middleware.SecurityHeaders(),
	)

	if config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RPS:   config.RateLimitRPS,
			Burst: config.RateLimitBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	r.health.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", r.metrics.Handler())

	api := r.engine.Group("/api/v1")
	api.Use(
		func(c *gin.Context) {
			c.Header("X-API-Version", "1.0")
			c.Next()
		},
		middleware.Timeout(r.config.RequestTimeout),
		middleware.ErrorHandler(),
		r.auth.Authenticate(),
	)

	r.availability.RegisterRoutes(api, r.auth)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
