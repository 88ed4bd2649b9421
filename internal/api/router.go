package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/oladokun-o/engine/docs"
	"github.com/oladokun-o/engine/internal/api/handler"
	"github.com/oladokun-o/engine/internal/api/middleware"
	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

// Services is everything the router needs from the core.
type Services struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Otp      ports.OtpService
	Reset    ports.ResetService
	Settings ports.SettingsService
	Orders   ports.OrderService
	Messages ports.MessageService
	// Health lists the readiness checks behind /health/ready.
	Health []handler.Dependency
}

// NewRouter builds and returns the Echo instance with all routes registered.
// HTTP metrics go to reg, or to the default registry when reg is nil.
func NewRouter(svc Services, reg *prometheus.Registry, log zerolog.Logger) *echo.Echo {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if reg != nil {
		registerer, gatherer = reg, reg
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "marketplace",
		Registerer: registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(svc.Health...)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	auth := middleware.Auth(svc.Auth)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	a := e.Group("/auth")
	a.POST("/login/email", authHandler.LoginWithEmail)
	a.POST("/login/phone", authHandler.LoginWithPhone)
	a.GET("/validate", authHandler.Validate, auth)
	a.POST("/logout", authHandler.Logout, auth)

	// --- Users ---
	userHandler := handler.NewUserHandler(svc.Users, svc.Otp, svc.Reset)
	u := e.Group("/users")
	u.POST("", userHandler.Register)
	u.GET("", userHandler.List)
	u.GET("/id/:id", userHandler.GetByID)
	u.GET("/email/:email", userHandler.GetByEmail)
	u.POST("/otp/resend", userHandler.ResendOtp)
	u.POST("/otp/verify", userHandler.VerifyOtp)
	u.POST("/password/reset", userHandler.RequestReset)
	u.GET("/password/reset/:token", userHandler.VerifyReset)
	u.POST("/password/update", userHandler.UpdatePassword)

	// --- Settings ---
	settingsHandler := handler.NewSettingsHandler(svc.Settings)
	s := e.Group("/settings", auth)
	s.GET("", settingsHandler.Get)
	s.POST("/email", settingsHandler.ChangeEmail)
	s.POST("/phone", settingsHandler.ChangePhone)
	s.POST("/address", settingsHandler.ChangeAddress)
	s.POST("/profile", settingsHandler.UpdateProfile)
	s.POST("/preferences", settingsHandler.UpdatePreferences)
	s.POST("/password", settingsHandler.ChangePassword)
	s.POST("/language", settingsHandler.ChangeLanguage)

	// --- Orders ---
	orderHandler := handler.NewOrderHandler(svc.Orders)
	o := e.Group("/orders", auth)
	o.GET("", orderHandler.List)
	o.GET("/:id", orderHandler.Get)
	o.POST("", orderHandler.Create, middleware.RequireRole(domain.RoleCustomer))
	o.PATCH("/:id/status", orderHandler.UpdateStatus)
	o.DELETE("/:id", orderHandler.Delete)

	// --- Messages ---
	messageHandler := handler.NewMessageHandler(svc.Messages)
	m := e.Group("/messages", auth)
	m.POST("", messageHandler.Create)
	m.GET("/:orderId", messageHandler.List)

	return e
}

// requestLogger writes one zerolog line per request.
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
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
