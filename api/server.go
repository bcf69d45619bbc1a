package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qurancms/recitation-api/api/types"
	"github.com/qurancms/recitation-api/pkg/config"
)

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(address string, deps *types.Dependencies) *Server {
	engine := gin.New()
	// 405 instead of 404 when the path exists under another method
	engine.HandleMethodNotAllowed = true

	if deps == nil {
		deps = &types.Dependencies{}
	}

	readTimeout, writeTimeout, maxHeader := 30*time.Second, 30*time.Second, 1<<20
	if deps.Config != nil {
		if deps.Config.Server.ReadTimeout > 0 {
			readTimeout = deps.Config.Server.ReadTimeout
		}
		if deps.Config.Server.WriteTimeout > 0 {
			writeTimeout = deps.Config.Server.WriteTimeout
		}
		if deps.Config.Server.MaxHeaderBytes > 0 {
			maxHeader = deps.Config.Server.MaxHeaderBytes
		}
	}

	return &Server{
		engine:       engine,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		dependencies: deps,
		httpServer: &http.Server{
			Addr:           address,
			Handler:        engine,
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout,
			IdleTimeout:    30 * time.Second,
			MaxHeaderBytes: maxHeader,
		},
	}
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	s.setupMiddleware()
	return RegisterRoutes(s.engine, s.dependencies, s.rateLimiters, s.cleanupStop, &s.cleanupInitialized)
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	deps := s.dependencies
	sec := config.SecurityConfig{EnableCORS: true, EnableRequestID: true}
	if deps.Config != nil {
		sec = deps.Config.Security
	}

	s.engine.Use(Recovery(deps))
	if sec.EnableRequestID {
		s.engine.Use(RequestID())
	}
	s.engine.Use(RequestLogger(deps.Log()))
	if sec.EnableCORS {
		s.engine.Use(CORS(sec))
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the rate limiter cleanup goroutine
	s.stopOnce.Do(func() { close(s.cleanupStop) })

	return s.httpServer.Shutdown(ctx)
}
