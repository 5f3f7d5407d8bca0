package handler

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/hvilla/scrapeproxy/models"
)

// BatchScrape returns the handler for POST /batch-scrape.
//
// All URLs are fetched concurrently with join-all semantics: the response
// is produced only after every member has completed, and one member's
// failure does not affect its siblings. Validation happens before any
// fetch work starts.
//
// Results are keyed by the requested URL, so duplicate URLs in one batch
// collapse to a single map entry while Total still reports the requested
// count. Callers depend on this shape; see models.BatchResponse.
func BatchScrape(f Fetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "URLs array is required",
				Code:  models.ErrCodeInvalidInput,
			})
			return
		}
		if len(req.URLs) == 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "URLs must be a non-empty array",
				Code:  models.ErrCodeInvalidInput,
			})
			return
		}
		if len(req.URLs) > models.MaxBatchURLs {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Maximum %d URLs allowed for batch scraping", models.MaxBatchURLs),
				Code:  models.ErrCodeInvalidInput,
			})
			return
		}

		results := make([]*models.FetchResult, len(req.URLs))
		var wg sync.WaitGroup
		for i, rawURL := range req.URLs {
			wg.Add(1)
			go func(idx int, targetURL string) {
				defer wg.Done()
				results[idx] = f.Fetch(context.Background(), targetURL, req.ForcePlaywright)
			}(i, rawURL)
		}
		wg.Wait()

		resultMap := make(map[string]*models.FetchResult, len(req.URLs))
		for i, rawURL := range req.URLs {
			resultMap[rawURL] = results[i]
		}

		c.JSON(http.StatusOK, models.BatchResponse{
			Results: resultMap,
			Total:   len(req.URLs),
		})
	}
}
