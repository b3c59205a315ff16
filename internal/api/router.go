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

	_ "github.com/stargazers/stargazing-api/docs"
	"github.com/stargazers/stargazing-api/internal/api/handler"
	"github.com/stargazers/stargazing-api/internal/api/middleware"
	"github.com/stargazers/stargazing-api/internal/core/domain"
	"github.com/stargazers/stargazing-api/internal/core/ports"
	"github.com/stargazers/stargazing-api/internal/core/service"
	"github.com/stargazers/stargazing-api/internal/infrastructure/http/handlers"
)

// Options carries everything NewRouter needs. Limiter may be nil.
type Options struct {
	Logger        zerolog.Logger
	CORSOrigin    string
	SecureCookies bool
	TokenTTL      time.Duration

	Users   ports.UserRepository
	Events  ports.EventRepository
	Hasher  ports.PasswordHasher
	Tokens  ports.TokenIssuer
	Limiter ports.LoginLimiter

	// ReadinessChecks are run by GET /api/health/ready.
	ReadinessChecks []handlers.Check

	// Registry receives the HTTP request metrics. A fresh registry is created
	// when nil. /metrics serves it together with the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{opts.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "stargazing",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	cookies := handler.NewSessionCookies(opts.SecureCookies, opts.TokenTTL)
	authService := service.NewAuthService(opts.Users, opts.Hasher, opts.Tokens, opts.Limiter, opts.Logger)
	userService := service.NewUserService(opts.Users, opts.Hasher, opts.Logger)
	eventService := service.NewEventService(opts.Events, opts.Logger)

	authHandler := handler.NewAuthHandler(authService, cookies)
	userHandler := handler.NewUserHandler(userService, authService, cookies)
	eventHandler := handler.NewEventHandler(eventService)

	authenticate := middleware.Authenticate(opts.Tokens, handler.SessionCookieName)
	optionalAuth := middleware.OptionalAuth(opts.Tokens, handler.SessionCookieName)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.ReadinessChecks...)
	api.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	api.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Auth routes ---
	api.POST("/users/auth/signup", authHandler.Signup)
	api.POST("/users/auth/login", authHandler.Login)
	api.POST("/users/auth/logout", authHandler.Logout)

	// --- User routes ---
	users := api.Group("/users", authenticate)
	users.GET("/me", authHandler.Me)
	users.GET("", userHandler.List, adminOnly)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("/:email", userHandler.Get, adminOnly)
	users.PUT("/:email", userHandler.Update) // self or admin, checked by the service
	users.DELETE("/:email", userHandler.Delete, adminOnly)

	// --- Event routes ---
	events := api.Group("/events")
	events.GET("", eventHandler.List, optionalAuth)
	events.GET("/:id", eventHandler.GetByID, optionalAuth)
	events.GET("/name/:name", eventHandler.GetByName, optionalAuth)
	events.POST("", eventHandler.Create, authenticate, adminOnly)
	events.PUT("/:name", eventHandler.Update, authenticate, adminOnly)
	events.DELETE("/:name", eventHandler.Delete, authenticate, adminOnly)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
