package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hvilla/scrapeproxy/api/handler"
	"github.com/hvilla/scrapeproxy/api/middleware"
	"github.com/hvilla/scrapeproxy/cache"
	"github.com/hvilla/scrapeproxy/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:    Recovery → Logger → CORS (any origin)
//	Endpoints: Auth (if keys configured) → RateLimit (if enabled)
//
// Health is intentionally outside auth so monitoring probes always work.
func NewRouter(f handler.Fetcher, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(cors.Default())

	r.GET("/health", handler.Health(startTime))

	protected := r.Group("")
	if len(cfg.Auth.APIKeys) > 0 {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	if cfg.RateLimit.Enabled {
		protected.Use(middleware.RateLimit(cfg.RateLimit))
	}

	protected.POST("/scrape", handler.Scrape(f, cc))
	protected.POST("/batch-scrape", handler.BatchScrape(f))

	return r
}
