// Package server exposes a read-only HTTP side channel next to the roll
// simulator: Prometheus metrics and a health probe reporting the current
// phase. It never accepts commands.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/agbru/d100/internal/logging"
	"github.com/agbru/d100/internal/roll"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// SnapshotSource is the part of the roll machine the health probe reads.
type SnapshotSource interface {
	Snapshot() roll.Snapshot
}

// Server serves /metrics and /healthz.
type Server struct {
	addr     string
	metrics  http.Handler
	source   SnapshotSource
	logger   logging.Logger
	security SecurityConfig
	started  time.Time

	httpServer *http.Server
}

// New creates a server bound to addr. metrics may be nil, in which case
// /metrics answers 404.
func New(addr string, metrics http.Handler, source SnapshotSource, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{
		addr:     addr,
		metrics:  metrics,
		source:   source,
		logger:   logger,
		security: DefaultSecurityConfig(),
		started:  time.Now(),
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Handler returns the routed handler wrapped in the security middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
	mux.HandleFunc("/healthz", s.handleHealth)
	return SecurityMiddleware(s.security, mux)
}

type healthResponse struct {
	Status        string `json:"status"`
	Phase         string `json:"phase"`
	Rolling       bool   `json:"rolling"`
	Rolls         int    `json:"rolls"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		Phase:         roll.PhaseIdle.String(),
		UptimeSeconds: int64(time.Since(s.started) / time.Second),
	}
	if s.source != nil {
		snap := s.source.Snapshot()
		resp.Phase = snap.Phase.String()
		resp.Rolling = snap.Rolling()
		resp.Rolls = len(snap.History)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("encode health response", err)
	}
}

// Run listens until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("metrics server listening", logging.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("metrics server shutdown", logging.Err(err))
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Debug("metrics server stopped")
	return nil
}
