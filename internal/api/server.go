// Package api serves ranked leads over a read-only HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vijay-prabhu/leadradar/internal/config"
	"github.com/vijay-prabhu/leadradar/internal/lead"
	"github.com/vijay-prabhu/leadradar/internal/ranking"
)

// Server holds the record batch and re-ranks it per request
type Server struct {
	records  []lead.Record
	cfg      *config.Config
	base     ranking.Config
	metrics  *ranking.Metrics
	registry *prometheus.Registry
	logger   zerolog.Logger
	now      func() time.Time
}

// Options configures a Server
type Options struct {
	Records []lead.Record
	Config  *config.Config
	Logger  zerolog.Logger
	Now     func() time.Time // Defaults to time.Now
}

// New creates a server over a loaded record batch
func New(opts Options) (*Server, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	base, err := ranking.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid ranking config: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics := ranking.NewMetrics()
	if err := metrics.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Server{
		records:  opts.Records,
		cfg:      cfg,
		base:     base,
		metrics:  metrics,
		registry: registry,
		logger:   opts.Logger,
		now:      now,
	}, nil
}

// Router builds the gin engine with all routes
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/leads", s.listLeads)
		api.GET("/leads/:id", s.getLead)
		api.GET("/themes", s.listThemes)
		api.GET("/weights", s.getWeights)
		api.GET("/sources", s.listSources)
	}

	return r
}

// Run serves on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Int("records", len(s.records)).Msg("serving leads")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	s.logger.Info().Msg("server stopped")
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}
