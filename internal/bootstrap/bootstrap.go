// Package bootstrap starts the HTTP listener and fires the single database
// connect attempt without letting the latter gate the former.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/neuroautomation/neuro-backend/internal/api"
	"github.com/neuroautomation/neuro-backend/internal/core"
	"github.com/neuroautomation/neuro-backend/internal/observability"
)

// Service owns the HTTP listener, the database handle and the connectivity
// cell the health endpoints read.
type Service struct {
	cfg       api.Config
	connector Connector
	log       *zap.Logger
	state     *core.Connectivity

	srv *http.Server
	ln  net.Listener

	mu     sync.Mutex
	db     Database
	closed bool
}

// New creates a Service in the UNINITIALIZED state. Nothing is bound until
// Start.
func New(cfg api.Config, connector Connector, log *zap.Logger) *Service {
	return &Service{
		cfg:       cfg,
		connector: connector,
		log:       log,
		state:     core.NewConnectivity(),
	}
}

// Start binds the listener and returns once it is accepting connections. The
// database connect attempt is started afterwards and never awaited here.
func (s *Service) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr(), err)
	}
	s.ln = ln

	s.srv = &http.Server{
		Handler:           api.NewAPI(s.state, s.cfg, s.log).Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("API server failed", zap.Error(err))
		}
	}()

	s.log.Info("server running",
		zap.Int("port", s.Port()),
		zap.String("environment", s.cfg.Environment),
	)

	go s.connectDatabase(ctx)

	return nil
}

// connectDatabase makes exactly one attempt. Failure is logged and recorded
// as DISCONNECTED; there is no retry.
func (s *Service) connectDatabase(ctx context.Context) {
	start := time.Now()
	db, err := s.connector.Connect(ctx, s.cfg.MongoURI)
	took := time.Since(start)

	if err != nil {
		reason := core.ReasonUnknown
		var dbErr *core.DatabaseConnectError
		if errors.As(err, &dbErr) {
			reason = dbErr.Reason
		}
		observability.RecordConnect(core.ConnectivityDisconnected, reason, took)
		s.log.Error("mongodb connection error",
			zap.String("reason", string(reason)),
			zap.Duration("took", took),
			zap.Error(err),
		)
		s.state.Resolve(core.ConnectivityDisconnected)
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = db.Disconnect(context.Background())
		s.state.Resolve(core.ConnectivityDisconnected)
		return
	}
	s.db = db
	s.mu.Unlock()

	observability.RecordConnect(core.ConnectivityConnected, "", took)
	s.log.Info("mongodb connected", zap.Duration("took", took))
	s.state.Resolve(core.ConnectivityConnected)
}

// State returns the connectivity cell.
func (s *Service) State() *core.Connectivity {
	return s.state
}

// Addr returns the bound listener address, or "" before Start.
func (s *Service) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Port returns the bound port, resolving a configured port of 0.
func (s *Service) Port() int {
	if s.ln == nil {
		return s.cfg.Port
	}
	if tcp, ok := s.ln.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return s.cfg.Port
}

// Close stops the listener immediately and disconnects the database client if
// one was obtained. In-flight requests are not drained.
func (s *Service) Close() error {
	s.mu.Lock()
	s.closed = true
	db := s.db
	s.db = nil
	s.mu.Unlock()

	var errs []error
	if s.srv != nil {
		if err := s.srv.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close server: %w", err))
		}
	}
	if db != nil {
		if err := db.Disconnect(context.Background()); err != nil {
			errs = append(errs, fmt.Errorf("disconnect database: %w", err))
		}
	}
	return errors.Join(errs...)
}
