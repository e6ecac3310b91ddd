package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agendavista/task-api/internal/api/handler"
	"github.com/agendavista/task-api/internal/api/middleware"
	"github.com/agendavista/task-api/internal/core/ports"
)

// Deps carries everything the router needs; repositories and services are
// constructed by the caller so tests can swap in fakes (and so store wiring
// stays in one place, main).
type Deps struct {
	AuthService ports.AuthService
	TaskService ports.TaskService
	Tokens      ports.TokenService
	Users       ports.UserRepository

	// Mongo and Redis are only set when the corresponding driver is
	// configured; the readiness probe skips nil dependencies.
	Mongo *mongo.Database
	Redis *redis.Client

	Logger     zerolog.Logger
	Production bool
	// Metrics enables the prometheus request middleware and the /metrics
	// endpoint. Off in tests: the middleware registers collectors with the
	// global registry and cannot be instantiated twice per process.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger, deps.Production)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	// The browser client may be served from any origin.
	e.Use(echomiddleware.CORS())
	if deps.Metrics {
		e.Use(echoprometheus.NewMiddleware("taskapi"))
	}

	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.Users)
	taskHandler := handler.NewTaskHandler(deps.TaskService)
	authGate := middleware.Auth(deps.Tokens, deps.Users)

	// --- Public routes ---
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Agenda Vista API is running")
	})
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Protected routes ---
	e.GET("/auth/verify", authHandler.Verify, authGate)
	e.GET("/users/profile", userHandler.Profile, authGate)

	tasks := e.Group("/tasks", authGate)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	if deps.Metrics {
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	return e
}
