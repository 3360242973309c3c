package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http/handlers"
	"github.com/jsamuelsen/classroom-viewer/internal/adapters/http/middleware"
	"github.com/jsamuelsen/classroom-viewer/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 10 * time.Second

// staticPrefix is where the UI assets are mounted; asset requests are not logged.
const staticPrefix = "/static/"

// RouterConfig contains configuration for setting up the router.
// Nil handlers leave their routes unregistered.
type RouterConfig struct {
	// ServiceName names the server spans.
	ServiceName string

	// Timeout bounds /api/v1 requests. Zero disables it.
	Timeout time.Duration

	HealthHandler  *handlers.HealthHandler
	QuoteHandler   *handlers.QuoteHandler
	CatalogHandler *handlers.CatalogHandler
	UIHandler      *handlers.UIHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - tie a page load's API calls together
//  4. OpenTelemetry - server spans, then request metrics
//  5. Logging - request logging (skips probes and static assets)
//  6. Timeout - request deadline on /api/v1
//
// Route groups:
//   - /-/ (internal): probes, build info and metrics
//   - /api/v1/: quote and catalog endpoints
//   - / and /static/: the embedded viewer
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(noRoute)
	engine.NoMethod(noMethod)

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(staticPrefix),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(middleware.Timeout(cfg.Timeout))

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterRoutes(apiV1)
	}

	if cfg.CatalogHandler != nil {
		cfg.CatalogHandler.RegisterRoutes(apiV1)
	}

	if cfg.UIHandler != nil {
		cfg.UIHandler.RegisterRoutes(engine)
	}
}
