package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/stylematch/waitlist/docs"
	"github.com/stylematch/waitlist/internal/api/handler"
	"github.com/stylematch/waitlist/internal/api/middleware"
	"github.com/stylematch/waitlist/internal/core/ports"
	"github.com/stylematch/waitlist/internal/infrastructure/http/handlers"
)

const (
	bodyLimit   = "100K"
	corsMaxAge  = int(10 * time.Minute / time.Second)
	metricsName = "http"
)

// Dependencies carries everything the router wires into handlers and middleware.
type Dependencies struct {
	Submissions    ports.SubmissionService
	Admin          ports.AdminService
	GeneralLimiter ports.RateLimiter
	SubmitLimiter  ports.RateLimiter
	Health         []handlers.Dependency
	AllowedOrigins []string
	ProtectLists   bool // also gate the list endpoints behind the admin check
	TrustProxy     bool
	Registry       *prometheus.Registry // nil uses the default registry
	Log            zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	if deps.TrustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	} else {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsName,
		Registerer: registerer,
	}))
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(middleware.Origin(deps.AllowedOrigins))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		ExposeHeaders: []string{
			middleware.HeaderRateLimitLimit,
			middleware.HeaderRateLimitRemaining,
			middleware.HeaderRetryAfter,
		},
		MaxAge: corsMaxAge,
	}))

	// --- Operational endpoints (no rate limit) ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Dependencies ---
	submissionHandler := handler.NewSubmissionHandler(deps.Submissions)
	adminHandler := handler.NewAdminHandler(deps.Admin)
	healthHandler := handlers.NewHealthHandler(deps.Log, deps.Health...)
	adminOnly := middleware.Admin(deps.Admin)
	submitLimit := middleware.RateLimit(deps.SubmitLimiter, "submit", deps.Log)

	listGate := []echo.MiddlewareFunc{}
	if deps.ProtectLists {
		listGate = append(listGate, adminOnly)
	}

	// --- API routes ---
	g := e.Group("/api", middleware.RateLimit(deps.GeneralLimiter, "general", deps.Log))

	g.POST("/submit", submissionHandler.Submit, submitLimit)
	g.POST("/admin/login", adminHandler.Login)
	g.GET("/health", healthHandler.Health)

	g.GET("/customers", submissionHandler.ListCustomers, listGate...)
	g.GET("/merchants", submissionHandler.ListMerchants, listGate...)
	g.DELETE("/customers/:id", submissionHandler.DeleteCustomer, adminOnly)
	g.DELETE("/merchants/:id", submissionHandler.DeleteMerchant, adminOnly)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				evt = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				evt = log.Warn()
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
