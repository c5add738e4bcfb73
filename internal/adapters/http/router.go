package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/go-container-controller/internal/adapters/http/handlers"
	"github.com/jsamuelsen/go-container-controller/internal/adapters/http/middleware"
	"github.com/jsamuelsen/go-container-controller/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds how long an API request waits for its save.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	Logger      *slog.Logger
	ServiceName string

	HealthHandler  *handlers.HealthHandler
	RecordsHandler *handlers.RecordsHandler

	// Timeout is the deadline applied to /api/v1 requests. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. Request ID, which installs the request-scoped logger
//  3. OpenTelemetry tracing and metrics
//  4. Logging (skips /-/ endpoints)
//
// Route groups:
//   - /-/ probes, build info and metrics
//   - /api/v1/ records API, with the request timeout
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(cfg.Logger),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging())

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.RecordsHandler != nil {
		cfg.RecordsHandler.RegisterRoutes(apiV1)
	}
}
