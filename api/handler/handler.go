package handler

import (
	"context"

	"github.com/hvilla/scrapeproxy/models"
)

// Fetcher is the orchestrator surface the HTTP layer depends on.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string, forceRendering bool) *models.FetchResult
}
