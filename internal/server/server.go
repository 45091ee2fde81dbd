package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibdev/internal/fibdev"
	"github.com/agbru/fibdev/internal/logging"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Security        SecurityConfig
}

// DefaultConfig returns the settings used for fields left zero.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		Security:        DefaultSecurityConfig(),
	}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics sets the HTTP metrics. Pass metrics built on the recorder
// observing dev so /metrics reports device events too.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// session serializes the requests made through one handle.
type session struct {
	mu sync.Mutex
	h  *fibdev.Handle
}

// Server serves one Device over HTTP.
type Server struct {
	dev     *fibdev.Device
	cfg     Config
	logger  logging.Logger
	metrics *Metrics

	mu       sync.Mutex
	sessions map[uuid.UUID]*session

	handler http.Handler
}

// New creates a Server for dev. Zero fields of cfg take their defaults.
func New(dev *fibdev.Device, cfg Config, opts ...Option) *Server {
	def := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
	if cfg.Security.MaxWriteLen <= 0 {
		cfg.Security.MaxWriteLen = def.Security.MaxWriteLen
	}

	s := &Server{
		dev:      dev,
		cfg:      cfg,
		sessions: make(map[uuid.UUID]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NopLogger{}
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/session", s.handleOpen)
	mux.HandleFunc("POST /v1/session/{id}/seek", s.handleSeek)
	mux.HandleFunc("POST /v1/session/{id}/write", s.handleWrite)
	mux.HandleFunc("GET /v1/session/{id}/read", s.handleRead)
	mux.HandleFunc("DELETE /v1/session/{id}", s.handleRelease)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)

	return SecurityMiddleware(s.cfg.Security,
		s.metricsMiddleware(s.loggingMiddleware(mux.ServeHTTP)))
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully and releases every open handle.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", logging.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	s.releaseAll()
	s.logger.Info("server stopped")
	return err
}

// releaseAll releases every handle still held by a client.
func (s *Server) releaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		sess.h.Release()
		sess.mu.Unlock()
		delete(s.sessions, id)
		s.logger.Info("released abandoned session", logging.String("handle", id.String()))
	}
}

func (s *Server) addSession(h *fibdev.Handle) {
	s.mu.Lock()
	s.sessions[h.ID()] = &session{h: h}
	s.mu.Unlock()
}

// lookup returns the session named by the {id} path value.
func (s *Server) lookup(r *http.Request) (*session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// remove drops the session named by the {id} path value and returns it.
func (s *Server) remove(r *http.Request) (*session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	return sess, ok
}

// Sessions returns the number of handles currently held through the server.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// loggingMiddleware logs each request at debug level.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.logger.Debug("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int64("duration_us", time.Since(start).Microseconds()))
	}
}
