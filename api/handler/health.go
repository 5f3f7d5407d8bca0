package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hvilla/scrapeproxy/models"
)

// Health returns the handler for GET /health. It never requires auth so
// monitoring probes always work.
func Health(startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:   "healthy",
			Service:  "scrapeproxy",
			Features: []string{"lightweight", "rendering", "javascript-support"},
			Uptime:   time.Since(startTime).Round(time.Second).String(),
		})
	}
}
