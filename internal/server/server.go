// Package server exposes the ingestion and calculation pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kofiasare/hotelmetrics/internal/calc"
	"github.com/kofiasare/hotelmetrics/internal/common"
	"github.com/kofiasare/hotelmetrics/internal/export"
	"github.com/kofiasare/hotelmetrics/internal/ingest"
	"github.com/kofiasare/hotelmetrics/internal/repository"
)

// Server wires the HTTP routes to the pipeline services.
type Server struct {
	router  *gin.Engine
	ingest  *ingest.Service
	engine  *calc.Engine
	store   repository.ItemStore
	export  *export.Service
	logger  *zap.Logger
	httpSrv *http.Server
}

func New(cfg *common.Config, ing *ingest.Service, engine *calc.Engine, store repository.ItemStore, exp *export.Service, logger *zap.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router: gin.New(),
		ingest: ing,
		engine: engine,
		store:  store,
		export: exp,
		logger: logger,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()

	s.httpSrv = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.health)

	api := s.router.Group("/api/v1")
	{
		api.POST("/ingest", s.ingestDocument)
		api.GET("/items", s.listItems)
		api.GET("/kpis/calculate", s.calculateKPIs)
		api.GET("/export/xlsx", s.exportXLSX)
	}
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("http server listening", zap.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), requestID))
		c.Header("X-Request-ID", requestID)

		c.Next()

		s.logger.Info("http.request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps pipeline errors onto HTTP status codes. Caller mistakes
// are 400s, everything else is a 500 with the detail kept in the server log.
func (s *Server) respondError(c *gin.Context, err error) {
	if common.IsInvalidInput(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.logger.Warn("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
