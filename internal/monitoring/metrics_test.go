package monitoring_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"task-tracker/internal/monitoring"

	"github.com/gin-gonic/gin"
)

func setupMetricsRouter() (*monitoring.Metrics, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	metrics := monitoring.NewMetrics()

	router := gin.New()
	router.Use(metrics.Middleware())
	router.GET("/metrics", metrics.Handler)
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	router.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})
	return metrics, router
}

func TestMetricsCountsRequestsAndErrors(t *testing.T) {
	_, router := setupMetricsRouter()

	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("GET", "/ok", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	req, _ := http.NewRequest("GET", "/fail", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req, _ = http.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var snapshot struct {
		RequestCount int64            `json:"request_count"`
		ErrorCount   int64            `json:"error_count"`
		Endpoints    map[string]int64 `json:"endpoint_calls"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("Failed to unmarshal metrics: %v", err)
	}

	if snapshot.RequestCount != 4 {
		t.Errorf("Expected 4 counted requests, got %d", snapshot.RequestCount)
	}
	if snapshot.ErrorCount != 1 {
		t.Errorf("Expected 1 error, got %d", snapshot.ErrorCount)
	}
	if snapshot.Endpoints["GET /ok"] != 3 {
		t.Errorf("Expected 3 calls to GET /ok, got %d", snapshot.Endpoints["GET /ok"])
	}
}
