// Package server exposes the schedule service over a JSON HTTP API
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/renato0307/roomsched/internal/logging"
	"github.com/renato0307/roomsched/internal/services"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP API over the ScheduleService
type Server struct {
	addr    string
	router  *gin.Engine
	service *services.ScheduleService
}

// NewServer creates a Server with every route registered
func NewServer(service *services.ScheduleService, addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &Server{
		addr:    addr,
		router:  router,
		service: service,
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.GET("/rooms", s.handleListRooms)
	api.POST("/rooms", s.handleCreateRoom)
	api.PUT("/rooms/:id", s.handleUpdateRoom)
	api.DELETE("/rooms/:id", s.handleDeleteRoom)
	api.PUT("/rooms/:id/maintenance", s.handleSetMaintenance)
	api.GET("/rooms/:id/status", s.handleRoomStatus)

	api.GET("/status", s.handleAllStatuses)
	api.GET("/schedule", s.handleSchedule)

	api.POST("/sessions", s.handleCreateSession)
	api.PUT("/sessions/:id", s.handleUpdateSession)
	api.DELETE("/sessions/:id", s.handleDeleteSession)

	api.GET("/conflicts", s.handleListConflicts)
	api.POST("/conflicts/:id/resolve", s.handleResolveConflict)
	api.POST("/conflicts/:id/dismiss", s.handleDismissConflict)
	api.GET("/conflicts/:id/suggestions", s.handleSuggestions)
	api.POST("/resolve", s.handleLegacyResolve)

	api.GET("/stats", s.handleStats)
	s.router.GET("/health", s.handleHealthCheck)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Info("Starting HTTP server", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	logging.Logger.Info("HTTP server stopped")
	return nil
}
