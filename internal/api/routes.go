package api

import (
	"github.com/gin-gonic/gin"
)

// Configures all API routes
func (s *Server) setupRoutes(router *gin.Engine) {
	// API version prefix
	v1 := router.Group("/api/v1")

	// Health check endpoint
	v1.GET("/health", s.handleHealth)

	// Attendance endpoints
	attendance := v1.Group("/attendance")
	{
		attendance.POST("/batch", s.handleBatchSubmit)
	}
}
