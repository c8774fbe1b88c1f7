// internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lease-advisor/internal/common/config"
	commonerrors "lease-advisor/internal/common/errors"
	"lease-advisor/internal/common/logger"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server owns the HTTP surface: the quiz recommendation endpoint, the deal
// and lead CRUD routes, and the operational endpoints.
type Server struct {
	cfg        config.ServerConfig
	logger     logger.Logger
	errHandler *commonerrors.ErrorHandler
	handlers   *Handlers
	readiness  ReadinessChecker
	httpServer *http.Server
}

// ReadinessChecker reports whether the server's backing stores are reachable.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

func New(cfg config.ServerConfig, handlers *Handlers, readiness ReadinessChecker, log logger.Logger) *Server {
	s := &Server{
		cfg:        cfg,
		logger:     log.With(map[string]interface{}{"component": "http-server"}),
		errHandler: commonerrors.NewErrorHandler(log),
		handlers:   handlers,
		readiness:  readiness,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(metricsMiddleware)

	r.Get("/", s.handlers.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/deals", s.handlers.handleListDeals)
		r.Get("/deals/category/{category}", s.handlers.handleListDealsByCategory)
		r.Post("/customers", s.handlers.handleCreateCustomer)
		r.Post("/generate-recommendations", s.handlers.handleGenerateRecommendations)
		r.Post("/leads", s.handlers.handleCreateLead)
		r.Get("/admin/leads", s.handlers.handleListAdminLeads)
		r.Get("/admin/leads/{id}", s.handlers.handleGetAdminLead)
	})

	return r
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the given context.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.readiness != nil {
		if err := s.readiness.Ready(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
	})
}
