package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinicaustral/clinica-api/internal/handler"
	"github.com/clinicaustral/clinica-api/internal/middleware"
	"github.com/clinicaustral/clinica-api/internal/model"
)

// Handler is anything that can mount its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// PublicRegistrar additionally exposes unauthenticated read routes.
type PublicRegistrar interface {
	RegisterPublicRoutes(*gin.RouterGroup)
}

// DashboardHandler mounts role-specific landing views.
type DashboardHandler interface {
	RegisterAdminRoutes(*gin.RouterGroup)
	RegisterMedicoRoutes(*gin.RouterGroup)
}

type Router struct {
	engine          *gin.Engine
	auth            *middleware.AuthMiddleware
	authH           Handler
	publicH         Handler
	medicoH         Handler
	recepcionistaH  Handler
	especialidadH   Handler
	pacienteH       Handler
	reservaH        Handler
	disponibilidadH Handler
	fichaH          Handler
	dashboardH      DashboardHandler
	h               *handler.Handler
	metrics         *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type RouterConfig struct {
	RateLimit     float64
	RateBurst     int
	Timeout       time.Duration
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH Handler,
	publicH Handler,
	medicoH Handler,
	recepcionistaH Handler,
	especialidadH Handler,
	pacienteH Handler,
	reservaH Handler,
	disponibilidadH Handler,
	fichaH Handler,
	dashboardH DashboardHandler,
	h *handler.Handler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	r := &Router{
		engine:          engine,
		auth:            auth,
		authH:           authH,
		publicH:         publicH,
		medicoH:         medicoH,
		recepcionistaH:  recepcionistaH,
		especialidadH:   especialidadH,
		pacienteH:       pacienteH,
		reservaH:        reservaH,
		disponibilidadH: disponibilidadH,
		fichaH:          fichaH,
		dashboardH:      dashboardH,
		h:               h,
		metrics:         initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)
	r.setupPublicRoutes(api)

	// Unauthenticated booking-form lookups keep their own subtree so
	// they cannot collide with the staff resources of the same name.
	r.publicH.RegisterRoutes(r.engine.Group("/api"))

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.metricsHandler())
	}
}

func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	r.authH.RegisterRoutes(rg)
	if p, ok := r.especialidadH.(PublicRegistrar); ok {
		p.RegisterPublicRoutes(rg)
	}
}

// setupProtectedRoutes splits the API into one group per role. A
// superuser account clears every role gate.
func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("")
	admin.Use(r.auth.RequireRole(model.RoleAdmin))
	r.medicoH.RegisterRoutes(admin)
	r.recepcionistaH.RegisterRoutes(admin)
	r.especialidadH.RegisterRoutes(admin)
	r.dashboardH.RegisterAdminRoutes(admin)

	recepcion := rg.Group("")
	recepcion.Use(r.auth.RequireRole(model.RoleRecepcionista))
	r.pacienteH.RegisterRoutes(recepcion)
	r.reservaH.RegisterRoutes(recepcion)

	medicos := rg.Group("")
	medicos.Use(r.auth.RequireRole(model.RoleMedico))
	r.disponibilidadH.RegisterRoutes(medicos)
	r.fichaH.RegisterRoutes(medicos)
	r.dashboardH.RegisterMedicoRoutes(medicos)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func initRouterMetrics(prefix string) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}

	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
