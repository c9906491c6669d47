// Package server provides the stakesim HTTP API and chart page.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/theirongolddev/stakesim/internal/config"
	"github.com/theirongolddev/stakesim/internal/store"
)

// Options controls the server runtime behavior.
type Options struct {
	Addr         string
	EventsBuffer int
	Logger       *slog.Logger

	// History enables the /v1/runs endpoints when non-nil.
	History *store.History
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	Addr            string    `json:"addr"`
	RequestCount    int64     `json:"request_count"`
	SimulationCount int64     `json:"simulation_count"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
	HistoryEnabled  bool      `json:"history_enabled"`
}

// Server serves simulations over HTTP.
type Server struct {
	settings config.Config
	opts     Options
	log      *slog.Logger

	mu           sync.RWMutex
	startedAt    time.Time
	requestCount int64
	simCount     int64
	nextEventID  int64
	events       []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a server that resolves scenarios against settings.
func New(settings config.Config, opts Options) *Server {
	if opts.EventsBuffer < 1 {
		opts.EventsBuffer = 200
	}
	if opts.Addr == "" {
		opts.Addr = settings.Server.Addr
	}
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:8788"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Server{
		settings:  settings,
		opts:      opts,
		log:       logger,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler builds the routed gin engine wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(s.requestLogger())
	router.Use(s.recovery())

	router.GET("/healthz", s.handleHealth)
	router.GET("/chart", s.handleChart)

	api := router.Group("/v1")
	{
		api.GET("/status", s.handleStatus)
		api.GET("/providers", s.handleProviders)
		api.GET("/simulate", s.handleSimulate)
		api.POST("/simulate", s.handleSimulate)
		api.GET("/compare", s.handleCompare)
		api.GET("/events", s.handleEvents)
		api.GET("/stream", s.handleStream)

		if s.opts.History != nil {
			api.GET("/runs", s.handleListRuns)
			api.GET("/runs/:id", s.handleGetRun)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "no such endpoint")
	})

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("server listening", "addr", s.opts.Addr)

	select {
	case <-ctx.Done():
		s.log.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Server) status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		Addr:            s.opts.Addr,
		RequestCount:    s.requestCount,
		SimulationCount: s.simCount,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
		HistoryEnabled:  s.opts.History != nil,
	}
}
