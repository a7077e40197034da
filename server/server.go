package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/subaru-pfs/instdata/store"
)

// ReadHeaderTimeout bounds how long a client may take to send request headers.
const ReadHeaderTimeout = 10 * time.Second

// Server exposes the instrument-data tree of a store over HTTP.
type Server struct {
	config     Config
	docs       *store.Store
	httpServer *http.Server
	listener   net.Listener
	served     chan struct{}
	onServeErr func()
}

// NewServer creates a Server answering with handler for the tree of docs.
// The onServeErr callback, if non-nil, runs when serving stops on anything
// other than a shutdown.
func NewServer(handler http.Handler, docs *store.Store, cfg Config, onServeErr func()) (*Server, error) {
	switch {
	case handler == nil:
		return nil, ErrNilHandler
	case docs == nil:
		return nil, ErrNilStore
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &Server{
		config: cfg,
		docs:   docs,
		httpServer: &http.Server{ //nolint:exhaustruct // only relevant fields needed
			Handler:           handler,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		onServeErr: onServeErr,
	}, nil
}

// Addr returns the bound address once started, or the configured one before.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.config.Address
	}

	return s.listener.Addr().String()
}

// Start confirms the store's base directory exists, then binds the
// configured address and serves in the background. Nothing is bound when the
// tree is unusable.
func (s *Server) Start(ctx context.Context) error {
	base, err := s.docs.CheckBaseDir()
	if err != nil {
		slog.Error("instdata tree unavailable", "error", err)

		return err
	}

	var listenCfg net.ListenConfig

	listener, err := listenCfg.Listen(ctx, "tcp", s.config.Address)
	if err != nil {
		slog.Error("failed to listen", "address", s.config.Address, "error", err)

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.listener = listener
	s.served = make(chan struct{})

	slog.Info("serving instdata tree",
		"address", listener.Addr().String(),
		"base_dir", base,
		"read_only", s.config.ReadOnly)

	go s.serve(listener)

	return nil
}

func (s *Server) serve(listener net.Listener) {
	defer close(s.served)

	err := s.httpServer.Serve(listener)
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}

	slog.Error("document service stopped unexpectedly", "error", err)

	if s.onServeErr != nil {
		s.onServeErr()
	}
}

// Stop drains in-flight requests until ctx expires and waits for the
// serving goroutine to return.
func (s *Server) Stop(ctx context.Context) error {
	slog.Info("stopping instdata document service")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		slog.Error("shutdown failed", "error", err)

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	if s.served != nil {
		<-s.served
	}

	return nil
}
