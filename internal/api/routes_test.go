package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// TestSetupRoutes tests that routes are properly registered by checking the route tree
func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := NewServer(testConfig())
	router := gin.New()

	// Setup routes
	server.setupRoutes(router)

	// Get the registered routes from Gin's route tree
	routes := router.Routes()

	// Expected routes
	expectedRoutes := map[string]string{
		"GET /api/v1/health":            "health endpoint",
		"POST /api/v1/attendance/batch": "batch attendance endpoint",
	}

	registeredRoutes := make(map[string]bool)
	for _, route := range routes {
		key := route.Method + " " + route.Path
		registeredRoutes[key] = true
	}

	for expectedRoute, description := range expectedRoutes {
		t.Run(description, func(t *testing.T) {
			if !registeredRoutes[expectedRoute] {
				t.Errorf("Route %s not registered", expectedRoute)
			}
		})
	}

	if len(routes) != len(expectedRoutes) {
		t.Errorf("Expected %d routes, got %d", len(expectedRoutes), len(routes))
	}
}

// TestSetupRoutes_APIPrefix tests that all routes are under /api/v1 prefix
func TestSetupRoutes_APIPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := NewServer(testConfig())
	router := gin.New()
	server.setupRoutes(router)

	unprefixed := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"POST", "/attendance/batch"},
	}

	for _, route := range unprefixed {
		t.Run("no_prefix_"+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			// These should return 404 since they don't have the /api/v1 prefix
			if w.Code != 404 {
				t.Errorf("Route %s should not exist without /api/v1 prefix, got status %d", route.path, w.Code)
			}
		})
	}
}
