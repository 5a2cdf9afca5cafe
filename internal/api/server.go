package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/loglens/loglens/internal/service"
	"github.com/loglens/loglens/internal/utils"
)

// Server hosts the JSON analysis API.
type Server struct {
	logger   *slog.Logger
	analyzer *service.Analyzer
	limits   Limits
	httpSrv  *http.Server
	listener net.Listener
}

// Limits bounds request sizes per endpoint.
type Limits struct {
	BatchMaxLines    int
	IncidentMaxLines int
}

// NewServer binds the listen address immediately so port conflicts
// surface at construction rather than at Start.
func NewServer(logger *slog.Logger, analyzer *service.Analyzer, address string, limits Limits) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if limits.BatchMaxLines <= 0 {
		limits.BatchMaxLines = 50
	}
	if limits.IncidentMaxLines <= 0 {
		limits.IncidentMaxLines = 100
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, utils.NewAppError("api.NewServer", "listen "+address, err)
	}

	s := &Server{
		logger:   logger,
		analyzer: analyzer,
		limits:   limits,
		listener: listener,
	}
	s.httpSrv = &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Address returns the bound listen address, useful when the configured
// port was zero.
func (s *Server) Address() string {
	return s.listener.Addr().String()
}

// Start serves until Shutdown is called. It blocks.
func (s *Server) Start() error {
	s.logger.Info("api server listening", "address", s.Address())
	if err := s.httpSrv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return utils.NewAppError("api.Server.Start", "serve", err)
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires, then force
// closes.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Warn("graceful shutdown incomplete, closing", "error", err)
		return s.httpSrv.Close()
	}
	return nil
}
