package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/notify/pkg/logger"
)

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// Server runs an http.Handler until its context ends, then shuts down
// gracefully.
type Server struct {
	cfg   config
	ready chan struct{}

	mu   sync.Mutex
	srv  *http.Server
	addr net.Addr
}

// New returns a Server with the given options applied over the defaults.
func New(opts ...Option) *Server {
	cfg := config{
		addr:            ":8080",
		shutdownTimeout: 10 * time.Second,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{cfg: cfg, ready: make(chan struct{})}
}

// Run listens on the configured address and serves h until ctx is cancelled.
// Cancellation triggers a graceful shutdown bounded by the shutdown timeout.
// A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, h http.Handler) error {
	if h == nil {
		h = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	srv := &http.Server{
		Handler:      h,
		ReadTimeout:  s.cfg.readTimeout,
		WriteTimeout: s.cfg.writeTimeout,
		IdleTimeout:  s.cfg.idleTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.srv = srv
	s.mu.Unlock()

	ln, err := net.Listen("tcp", s.cfg.addr)
	if err != nil {
		// Nothing started; allow Run to be retried.
		s.mu.Lock()
		s.srv = nil
		s.mu.Unlock()
		return errors.Join(ErrStart, err)
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()
	close(s.ready)

	log := s.cfg.logger.With(logger.Component("httpserver"))
	log.Info("http server listening", slog.String("addr", ln.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(ErrStart, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.shutdownTimeout)
		defer cancel()

		start := time.Now()
		if err := srv.Shutdown(sctx); err != nil {
			return errors.Join(ErrShutdown, err)
		}
		log.Info("http server stopped", logger.Duration(time.Since(start)))
		return nil
	})
	return g.Wait()
}

// Ready is closed once the listener is bound. It stays open after a Run
// that failed to bind, until a later Run succeeds.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address, or nil before Ready is closed.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}
