package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/contestreplay/replay-api/api/contests"
	"github.com/contestreplay/replay-api/api/exports"
	"github.com/contestreplay/replay-api/api/health"
	"github.com/contestreplay/replay-api/api/types"
	"github.com/contestreplay/replay-api/api/version"
	_ "github.com/contestreplay/replay-api/docs/swagger"
	"github.com/contestreplay/replay-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		return fmt.Errorf("handler dependencies are nil")
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Monitoring.Enabled {
		engine.GET(cfg.Monitoring.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Contest browsing with general rate limiting (10 req/s, burst of 20)
	contestsGroup := v1.Group("/contests")
	contestsGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	contests.RegisterRoutes(contestsGroup, deps)

	// Export creation is contest-scoped; extraction shells out to ffmpeg,
	// so it gets its own tight rate limit (1 req/s, burst of 2)
	createMiddleware := PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 1, 2)
	contestsGroup.POST("/:name/exports", createMiddleware, exports.Create(deps))

	// Export management with general rate limiting (10 req/s, burst of 20)
	exportsGroup := v1.Group("/exports")
	exportsGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	exports.RegisterRoutes(exportsGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
