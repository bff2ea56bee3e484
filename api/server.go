// Package api serves the schedule over HTTP.
//
// Read endpoints take the service read lock, disruption endpoints go through
// the single writer and are rate limited. Every bus event is mirrored on a
// websocket stream.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/kilianp07/tower/app"
	"github.com/kilianp07/tower/config"
	"github.com/kilianp07/tower/infra/logger"
	"github.com/kilianp07/tower/infra/metrics"
)

// Server wires the HTTP routes to a Service.
type Server struct {
	svc     *app.Service
	cfg     config.APIConfig
	log     logger.Logger
	limiter *rate.Limiter
	metrics http.Handler
	engine  *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithMetricsHandler replaces the default Prometheus handler on /metrics.
func WithMetricsHandler(h http.Handler) Option { return func(s *Server) { s.metrics = h } }

func WithLogger(l logger.Logger) Option { return func(s *Server) { s.log = l } }

func New(svc *app.Service, cfg config.APIConfig, opts ...Option) *Server {
	cfg.SetDefaults()
	s := &Server{
		svc:     svc,
		cfg:     cfg,
		log:     logger.NopLogger{},
		limiter: rate.NewLimiter(rate.Limit(cfg.Limit()), cfg.BurstSize()),
		metrics: metrics.Handler(),
	}
	for _, o := range opts {
		o(s)
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  s.cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(s.metrics))

	v1 := r.Group("/api/v1")
	v1.Use(s.auth())
	{
		v1.GET("/flights", s.listFlights)
		v1.GET("/flights/:id", s.getFlight)
		v1.GET("/aircraft", s.listAircraft)
		v1.GET("/airports", s.listAirports)
		v1.GET("/stats", s.stats)
		v1.GET("/report", s.report)
		v1.GET("/journal", s.journal)
		v1.GET("/stream", s.stream)

		mut := v1.Group("")
		mut.Use(s.rateLimit())
		mut.POST("/disruptions/delay", s.delay)
		mut.POST("/disruptions/curfew", s.curfew)
		mut.POST("/disruptions/maintenance", s.maintenance)
		mut.POST("/recover", s.recover)
	}
	return r
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("api listening on %s", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
