package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hvilla/scrapeproxy/models"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", Health(time.Now().Add(-90*time.Second)))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp models.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Status != "healthy" || resp.Service != "scrapeproxy" {
		t.Errorf("unexpected health payload: %+v", resp)
	}
	hasRendering := false
	for _, f := range resp.Features {
		if f == "rendering" {
			hasRendering = true
		}
	}
	if !hasRendering {
		t.Errorf("features %v should advertise rendering support", resp.Features)
	}
	if resp.Uptime == "" {
		t.Error("uptime missing")
	}
}
