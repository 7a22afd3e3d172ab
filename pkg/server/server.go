// Package server exposes a store.Persistence over HTTP with the JSON contract
// gateway.Client speaks.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tableflip.dev/moodlog/pkg/observability"
	"tableflip.dev/moodlog/pkg/store"
)

// BasePath prefixes every API route.
const BasePath = "/api"

type Options struct {
	Persistence store.Persistence
	// Token, when set, is required as a bearer token on API routes.
	Token   string
	Log     *zap.SugaredLogger
	Metrics *observability.Metrics
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

type Server struct {
	p       store.Persistence
	token   string
	log     *zap.SugaredLogger
	metrics *observability.Metrics
	engine  *gin.Engine
}

// New builds the gin engine and routes.
func New(opts Options) (*Server, error) {
	if opts.Persistence == nil {
		return nil, errors.New("server: no persistence configured")
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}
	s := &Server{
		p:       opts.Persistence,
		token:   opts.Token,
		log:     opts.Log,
		metrics: opts.Metrics,
		engine:  gin.New(),
	}

	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Gatherer != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := s.engine.Group(BasePath, s.requireToken())
	api.GET("/emotions", s.listEmotions)
	api.GET("/emotions/selected", s.listSelections)
	api.POST("/emotions/selected", s.addSelection)
	api.DELETE("/emotions/selected/:deletionId", s.removeSelection)
	api.GET("/records", s.listRecords)
	api.POST("/records", s.createRecord)
	api.PATCH("/records/:id", s.updateRecord)
	api.GET("/records/monthly", s.monthly)
	api.GET("/categories", s.listCategories)
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Infow("moodlog server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Infow("moodlog server stopped")
	return nil
}
