package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// TestHandleHealth tests the health handler response
func TestHandleHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	version := "1.0.0"
	startTime := time.Now().Add(-30 * time.Minute) // 30 minutes ago
	metrics := func() map[string]int64 { return map[string]int64{"runs_started": 4} }

	handler := HandleHealth(version, startTime, metrics)

	// Create test request
	router := gin.New()
	router.GET("/health", handler)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Check status code
	if w.Code != http.StatusOK {
		t.Errorf("HandleHealth() status = %d, want %d", w.Code, http.StatusOK)
	}

	// Parse response
	var response HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	// Check response fields
	if response.Status != "healthy" {
		t.Errorf("HandleHealth() status = %q, want \"healthy\"", response.Status)
	}

	if response.Version != version {
		t.Errorf("HandleHealth() version = %q, want %q", response.Version, version)
	}

	// Check that timestamp is recent (within last 5 seconds)
	if time.Since(response.Timestamp) > 5*time.Second {
		t.Error("HandleHealth() timestamp is not recent")
	}

	if response.Uptime != "30m0s" {
		t.Errorf("HandleHealth() uptime = %q, want \"30m0s\"", response.Uptime)
	}

	if response.Batching["runs_started"] != 4 {
		t.Errorf("HandleHealth() batching = %v", response.Batching)
	}
}

// TestHandleHealth_NilMetrics tests the health handler without batcher metrics
func TestHandleHealth_NilMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/health", HandleHealth("1.0.0", time.Now(), nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	var response map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if _, ok := response["batching"]; ok {
		t.Error("batching should be omitted when no metrics are provided")
	}
}
