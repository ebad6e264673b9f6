package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/concave-dev/rollcall/internal/api/handlers"
	"github.com/concave-dev/rollcall/internal/batching"
	"github.com/concave-dev/rollcall/internal/logging"
	"github.com/gin-gonic/gin"
)

// Represents the rollcalld API server
type Server struct {
	batcher       *batching.Batcher
	httpServer    *http.Server
	listener      net.Listener // Pre-bound listener, nil when the server binds itself
	bindAddr      string
	bindPort      int
	version       string
	maxBatchUsers int
	startTime     time.Time
}

// NewServer creates a new rollcalld API server instance
func NewServer(config *Config) *Server {
	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		batcher:       batching.NewBatcher(config.Submitter, config.BatchingConfig),
		bindAddr:      config.BindAddr,
		bindPort:      config.BindPort,
		version:       config.Version,
		maxBatchUsers: config.MaxBatchUsers,
		startTime:     time.Now(),
	}
}

// NewServerWithListener creates a server that serves on an already bound
// listener. The daemon binds early so port conflicts surface before any
// other startup work.
func NewServerWithListener(config *Config, listener net.Listener) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid API config: %w", err)
	}
	if listener == nil {
		return nil, fmt.Errorf("listener cannot be nil")
	}

	s := NewServer(config)
	s.listener = listener
	return s, nil
}

// Start starts the rollcalld API server
func (s *Server) Start() error {
	router := s.newRouter()

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.bindAddr, s.bindPort),
		Handler: router,
		// Batch runs are paced, so writes get far more room than reads.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	listener := s.listener
	if listener == nil {
		// Bind now to catch errors immediately
		var err error
		listener, err = net.Listen("tcp", s.httpServer.Addr)
		if err != nil {
			return fmt.Errorf("failed to bind to %s: %w", s.httpServer.Addr, err)
		}
		s.listener = listener
	}

	logging.Info("Starting HTTP API server on %s", listener.Addr())

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("HTTP API server started successfully")
	return nil
}

// newRouter builds the gin engine with middleware and routes.
func (s *Server) newRouter() *gin.Engine {
	router := gin.New()

	// Configure Gin logging only if not already configured by CLI tools
	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("INFO", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	// Add middleware
	router.Use(s.requestIDMiddleware())
	router.Use(s.loggingMiddleware())
	router.Use(s.corsMiddleware())
	router.Use(gin.Recovery())

	// Setup routes
	s.setupRoutes(router)
	return router
}

// Addr returns the address the server listens on, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down HTTP API server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// handleHealth delegates to handlers.HandleHealth
func (s *Server) handleHealth(c *gin.Context) {
	handler := s.getHandlerHealth()
	handler(c)
}

// getHandlerHealth is a health endpoint handler factory
func (s *Server) getHandlerHealth() gin.HandlerFunc {
	return handlers.HandleHealth(s.version, s.startTime, s.batcher.GetMetrics)
}

// handleBatchSubmit delegates to handlers.HandleBatchSubmit
func (s *Server) handleBatchSubmit(c *gin.Context) {
	handler := s.getHandlerBatchSubmit()
	handler(c)
}

// getHandlerBatchSubmit is a batch submission endpoint handler factory
func (s *Server) getHandlerBatchSubmit() gin.HandlerFunc {
	return handlers.HandleBatchSubmit(s.batcher, s.maxBatchUsers)
}
