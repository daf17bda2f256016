package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mateluxy/backoffice-api/docs"
	"github.com/mateluxy/backoffice-api/internal/api/handler"
	"github.com/mateluxy/backoffice-api/internal/api/middleware"
	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

const bodyLimit = "50M"

// Services bundles the core services the HTTP layer calls into.
type Services struct {
	Tokens           middleware.TokenVerifier
	Auth             ports.AuthService
	Admins           ports.AdminService
	Agents           ports.AgentService
	Notifications    ports.NotificationService
	Contacts         ports.ContactService
	PropertyRequests ports.PropertyRequestService
	Properties       ports.PropertyService
}

// Options configures the transport concerns of the router.
type Options struct {
	Log            zerolog.Logger
	CORSOrigins    []string
	CookieSecure   bool
	ExposeInternal bool // include unexpected error details in responses
	HealthChecks   []handler.DependencyCheck
	// Registerer and Gatherer back the HTTP metrics and /metrics; nil means
	// the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log, opts.ExposeInternal)

	registerer, gatherer := opts.Registerer, opts.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(opts.Log))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     opts.CORSOrigins,
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization,
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "backoffice",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth, opts.CookieSecure)
	adminHandler := handler.NewAdminHandler(svc.Admins)
	agentHandler := handler.NewAgentHandler(svc.Agents)
	notificationHandler := handler.NewNotificationHandler(svc.Notifications)
	contactHandler := handler.NewContactHandler(svc.Contacts)
	requestHandler := handler.NewPropertyRequestHandler(svc.PropertyRequests)
	propertyHandler := handler.NewPropertyHandler(svc.Properties)
	healthHandler := handler.NewHealthHandler(opts.HealthChecks...)

	// Tokens carry no identity class, so admin routes also confirm the
	// identity resolves to a stored admin.
	adminAuth := []echo.MiddlewareFunc{
		middleware.Auth(svc.Tokens, middleware.AdminCookie),
		middleware.RequireAdminRole(svc.Admins, domain.RoleAdmin, domain.RoleSuperAdmin),
	}
	superAdminOnly := middleware.RequireAdminRole(svc.Admins, domain.RoleSuperAdmin)
	agentAuth := middleware.Auth(svc.Tokens, middleware.AgentCookie)

	api := e.Group("/api")

	// --- Auth ---
	api.POST("/admin/sign-in", authHandler.AdminSignIn)
	api.POST("/admin/logout", authHandler.AdminLogout)
	api.POST("/admin/forgot-password", authHandler.ForgotPassword)
	api.POST("/admin/reset-password/:token", authHandler.ResetPassword)
	api.GET("/admin/check-auth", authHandler.CheckAuth, adminAuth...)
	api.GET("/admin/profile", adminHandler.Profile, adminAuth...)
	api.PUT("/admin/profile", adminHandler.UpdateProfile, adminAuth...)

	api.POST("/agent/sign-in", authHandler.AgentSignIn)
	api.POST("/agent/logout", authHandler.AgentLogout)
	api.GET("/agent/profile", agentHandler.Profile, agentAuth)

	// --- Admins ---
	admins := api.Group("/admins", adminAuth...)
	admins.GET("", adminHandler.List)
	admins.POST("", adminHandler.Create, superAdminOnly)
	admins.GET("/check-username", adminHandler.CheckUsername)
	admins.GET("/:id", adminHandler.Get)
	admins.PUT("/:id", adminHandler.Update)
	admins.DELETE("/:id", adminHandler.Delete)

	// --- Agents ---
	agents := api.Group("/agents", adminAuth...)
	agents.GET("", agentHandler.List)
	agents.POST("", agentHandler.Create)
	agents.GET("/check-username", agentHandler.CheckUsername)
	agents.GET("/:id", agentHandler.Get)
	agents.PUT("/:id", agentHandler.Update)
	agents.DELETE("/:id", agentHandler.Delete)

	// --- Properties (reads are public) ---
	api.GET("/properties", propertyHandler.List)
	api.GET("/properties/:id", propertyHandler.Get)
	api.POST("/properties", propertyHandler.Create, adminAuth...)
	api.PUT("/properties/:id", propertyHandler.Update, adminAuth...)
	api.DELETE("/properties/:id", propertyHandler.Delete, adminAuth...)

	// --- Notifications ---
	notifications := api.Group("/notifications", adminAuth...)
	notifications.GET("", notificationHandler.List)
	notifications.POST("", notificationHandler.Create)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.PUT("/mark-all-read", notificationHandler.MarkAllRead)
	notifications.DELETE("/clear-all", notificationHandler.ClearAll)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.DELETE("/:id", notificationHandler.Delete)

	// --- Contact ---
	api.POST("/contact/submit", contactHandler.Submit)
	contact := api.Group("/contact", adminAuth...)
	contact.GET("", contactHandler.List)
	contact.GET("/:id", contactHandler.Get)
	contact.PATCH("/:id/status", contactHandler.UpdateStatus)
	contact.DELETE("/:id", contactHandler.Delete)

	// --- Property requests ---
	api.POST("/property-requests/submit", requestHandler.Submit)
	requests := api.Group("/property-requests", adminAuth...)
	requests.GET("", requestHandler.List)
	requests.GET("/:id", requestHandler.Get)
	requests.PATCH("/:id/status", requestHandler.UpdateStatus)
	requests.DELETE("/:id", requestHandler.Delete)

	// --- Operational (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
