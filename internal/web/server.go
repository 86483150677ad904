// Package web serves the task list as a local JSON API.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jacobusmeintjes/todo/internal/query"
	"github.com/jacobusmeintjes/todo/internal/service"
	"github.com/jacobusmeintjes/todo/internal/tasks"
)

const shutdownTimeout = 5 * time.Second

// TaskService is the subset of *service.Service the handlers use.
type TaskService interface {
	Add(req service.AddRequest) (tasks.Task, error)
	Update(idInput string, ch service.Changes) (tasks.Task, error)
	Complete(idInput string) (tasks.Task, error)
	Delete(idInput string) (tasks.Task, error)
	List(f query.Filter, key query.SortKey) ([]tasks.Task, error)
	Get(idInput string) (tasks.Task, error)
	Stats() (service.Stats, error)
}

// Server is the todo web server
type Server struct {
	svc    TaskService
	router *gin.Engine
	logger *slog.Logger

	// every request is a full load-mutate-save cycle
	mu sync.Mutex
}

// NewServer creates a new web server
func NewServer(svc TaskService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		svc:    svc,
		router: router,
		logger: logger,
	}
	router.Use(s.logRequests)

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleList)
		api.POST("/tasks", s.handleCreate)
		api.GET("/tasks/:id", s.handleGet)
		api.PATCH("/tasks/:id", s.handleUpdate)
		api.DELETE("/tasks/:id", s.handleDelete)
		api.POST("/tasks/:id/complete", s.handleComplete)
		api.GET("/stats", s.handleStats)
	}

	return s
}

// Handler returns the router as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("web server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start))
}
