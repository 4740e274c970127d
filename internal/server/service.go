// Package server exposes benchmarking averages over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theirongolddev/benchavg/internal/logging"
	"github.com/theirongolddev/benchavg/internal/model"
	"github.com/theirongolddev/benchavg/internal/pipeline"
)

// RecordLoader supplies the full record set for one request.
type RecordLoader interface {
	Load(ctx context.Context) ([]model.Record, error)
}

// Config controls the service runtime behavior.
type Config struct {
	Addr     string
	DataFile string
	DevMode  bool
	// LegacyResponses answers bad ranges and a missing data file with
	// 200 text/plain bodies.
	LegacyResponses bool
	EventsBuffer    int
}

// Event records one handled request.
type Event struct {
	ID         int64     `json:"id"`
	RequestID  string    `json:"request_id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	Code       string    `json:"code,omitempty"`
	DurationMS float64   `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	DataFile        string    `json:"data_file"`
	DevMode         bool      `json:"dev_mode"`
	LegacyResponses bool      `json:"legacy_responses"`
	Requests        int64     `json:"requests"`
	Errors          int64     `json:"errors"`
	LastRequestAt   time.Time `json:"last_request_at,omitzero"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
}

// Service serves the averages API.
type Service struct {
	cfg    Config
	loader RecordLoader

	requests atomic.Int64
	failures atomic.Int64

	mu            sync.RWMutex
	startedAt     time.Time
	lastRequestAt time.Time
	lastError     string
	nextEventID   int64
	events        []Event
}

// New returns a service reading records from cfg.DataFile.
func New(cfg Config) *Service {
	return NewWithLoader(cfg, pipeline.NewLoader(cfg.DataFile, cfg.DevMode))
}

// NewWithLoader returns a service backed by an arbitrary loader.
func NewWithLoader(cfg Config, loader RecordLoader) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8000"
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	return &Service{
		cfg:       cfg,
		loader:    loader,
		startedAt: time.Now(),
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /results/average/{$}", s.handleAverage)
	mux.HandleFunc("GET /results/average", s.handleAverage)
	mux.HandleFunc("GET /results/average/{start}/{end}/{$}", s.handleAverageRange)
	mux.HandleFunc("GET /results/average/{start}/{end}", s.handleAverageRange)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/events", s.handleEvents)

	return s.requestID(s.logRequests(mux))
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logging.Info("server listening", "addr", ln.Addr().String(), "data_file", s.cfg.DataFile, "dev_mode", s.cfg.DevMode)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logging.Info("server shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Service) recordEvent(ev Event) {
	// Legacy responses answer some failures with 200; the code still marks them.
	if ev.Status >= http.StatusBadRequest || ev.Code != "" {
		s.failures.Add(1)
	}
	s.requests.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEventID++
	ev.ID = s.nextEventID
	s.lastRequestAt = ev.Timestamp
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}
}

func (s *Service) recordError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		DataFile:        s.cfg.DataFile,
		DevMode:         s.cfg.DevMode,
		LegacyResponses: s.cfg.LegacyResponses,
		Requests:        s.requests.Load(),
		Errors:          s.failures.Load(),
		LastRequestAt:   s.lastRequestAt,
		LastError:       s.lastError,
		EventCount:      len(s.events),
	}
}
