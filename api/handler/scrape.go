package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hvilla/scrapeproxy/cache"
	"github.com/hvilla/scrapeproxy/models"
)

// Scrape returns the handler for POST /scrape.
//
// The fetch runs on a background context rather than the request context:
// a client disconnect must not cancel an in-flight fetch, and the only
// deadlines are the per-strategy timeouts inside the orchestrator.
//
// Fetch outcomes, failures included, are always answered with HTTP 200 and
// a structured payload; only a malformed request gets a 4xx.
func Scrape(f Fetcher, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "URL is required",
				Code:  models.ErrCodeInvalidInput,
			})
			return
		}

		key := cache.Key(req.URL, req.ForcePlaywright)
		if cached, hit := cc.Get(key); hit {
			c.JSON(http.StatusOK, cached)
			return
		}

		result := f.Fetch(context.Background(), req.URL, req.ForcePlaywright)
		if result.Success {
			cc.Set(key, result)
		}

		c.JSON(http.StatusOK, result)
	}
}
