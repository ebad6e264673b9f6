package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Uptime    string           `json:"uptime"`
	Batching  map[string]int64 `json:"batching,omitempty"`
}

// HandleHealth returns the health status of the API server. metrics may be
// nil; when set its counters are reported under "batching".
func HandleHealth(version string, startTime time.Time, metrics func() map[string]int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		uptime := time.Since(startTime)

		response := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    uptime.Round(time.Second).String(),
		}
		if metrics != nil {
			response.Batching = metrics()
		}

		c.JSON(http.StatusOK, response)
	}
}
