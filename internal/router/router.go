package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/internal/api"
	"github.com/pageza/freshkeep/backend/internal/middleware"
)

// Dependencies are the handlers and policies the router wires together
type Dependencies struct {
	Recipes        *api.RecipeHandler
	Inventory      *api.InventoryHandler
	Shopping       *api.ShoppingHandler
	Health         *api.HealthHandler
	TokenValidator middleware.TokenValidator
	// Limiter guards the suggestion routes; nil disables rate limiting
	Limiter        middleware.Limiter
	AllowedOrigins []string
	Logger         *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logging(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.Metrics(),
	)

	router.GET("/health", deps.Health.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var limit []gin.HandlerFunc
	if deps.Limiter != nil {
		limit = append(limit, middleware.RateLimit(deps.Limiter, deps.Logger))
	}

	// Public suggestion function, callable from any origin
	functions := router.Group("/functions/v1", middleware.FunctionCORS())
	functions.Use(limit...)
	deps.Recipes.RegisterFunctionRoutes(functions)

	// API v1 routes
	v1 := router.Group("/api/v1", middleware.APICORS(deps.AllowedOrigins))
	// preflight for every API path; the CORS middleware answers it
	v1.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	protected := v1.Group("", middleware.AuthMiddleware(deps.TokenValidator))
	{
		deps.Inventory.RegisterRoutes(protected)
		deps.Shopping.RegisterRoutes(protected)
		deps.Recipes.RegisterRoutes(protected.Group("", limit...))
	}

	return router
}
