package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/lunchvote/voting-api/docs"
	"github.com/lunchvote/voting-api/internal/api/handler"
	"github.com/lunchvote/voting-api/internal/api/middleware"
	"github.com/lunchvote/voting-api/internal/core/domain"
	"github.com/lunchvote/voting-api/internal/core/ports"
	"github.com/lunchvote/voting-api/internal/infrastructure/http/handlers"
)

// Dependencies are the constructed services and settings the router serves.
type Dependencies struct {
	Logger    zerolog.Logger
	JWTSecret string

	Auth        ports.AuthService
	Users       ports.UserService
	Restaurants ports.RestaurantService
	Dishes      ports.DishService
	Votes       ports.VoteService

	// Readiness lists the backends GET /health/ready pings.
	Readiness []handlers.Dependency

	// Registerer and Gatherer back the HTTP metrics and /metrics. They
	// default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "lunchvote",
		Registerer: d.Registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	profileHandler := handler.NewProfileHandler(d.Users)
	userHandler := handler.NewUserHandler(d.Users)
	restaurantHandler := handler.NewRestaurantHandler(d.Restaurants, d.Votes.Today)
	dishHandler := handler.NewDishHandler(d.Dishes)
	voteHandler := handler.NewVoteHandler(d.Votes)
	authMiddleware := middleware.Auth(d.JWTSecret)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/profile/register", profileHandler.Register)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Readiness...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Signed-in users ---
	profile := e.Group("/profile", authMiddleware, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)
	profile.DELETE("", profileHandler.Delete)
	profile.GET("/votes", voteHandler.Mine)
	profile.POST("/restaurants/:id/votes", voteHandler.Cast)
	profile.GET("/restaurants/votes", voteHandler.Results)
	profile.GET("/restaurants/dishes", restaurantHandler.Menus)

	// --- Administration ---
	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))

	admin.GET("/users", userHandler.List)
	admin.GET("/users/by", userHandler.GetByEmail)
	admin.GET("/users/:id", userHandler.Get)
	admin.POST("/users", userHandler.Create)
	admin.PUT("/users/:id", userHandler.Update)
	admin.PATCH("/users/:id", userHandler.SetEnabled)
	admin.DELETE("/users/:id", userHandler.Delete)

	admin.GET("/restaurants", restaurantHandler.List)
	admin.GET("/restaurants/dishes", dishHandler.ListAll)
	admin.GET("/restaurants/:id", restaurantHandler.Get)
	admin.POST("/restaurants", restaurantHandler.Create)
	admin.PUT("/restaurants/:id", restaurantHandler.Update)
	admin.DELETE("/restaurants/:id", restaurantHandler.Delete)

	admin.GET("/restaurants/:id/dishes", dishHandler.List)
	admin.GET("/restaurants/:id/dishes/:dishId", dishHandler.Get)
	admin.POST("/restaurants/:id/dishes", dishHandler.Create)
	admin.PUT("/restaurants/:id/dishes/:dishId", dishHandler.Update)
	admin.DELETE("/restaurants/:id/dishes/:dishId", dishHandler.Delete)

	admin.GET("/votes", voteHandler.ListForDate)
	admin.GET("/votes/results", voteHandler.Results)

	return e
}

// requestLogger feeds echo's request log into zerolog.
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
			if v.Status >= 500 {
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
