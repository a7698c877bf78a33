package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/civiclens/conduit-mock/pkg/config"
	"github.com/civiclens/conduit-mock/pkg/latency"
	"github.com/civiclens/conduit-mock/pkg/logging"
	"github.com/civiclens/conduit-mock/pkg/metrics"
	"github.com/civiclens/conduit-mock/pkg/ratelimit"
	"github.com/civiclens/conduit-mock/pkg/requestlog"
	"github.com/civiclens/conduit-mock/pkg/stateful"
	"github.com/civiclens/conduit-mock/pkg/validation"
)

// ShutdownTimeout bounds how long Stop waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Server is the mock Conduit API server.
type Server struct {
	cfg       *config.ServerConfiguration
	store     *stateful.Store
	router    *Router
	latency   *latency.Simulator
	limiter   *ratelimit.PerIPLimiter
	validator *validation.Validator
	requests  requestlog.Store
	metrics   *metrics.ServerMetrics
	log       *slog.Logger
	now       func() time.Time

	handler    http.Handler
	httpServer *http.Server

	mu        sync.RWMutex
	running   bool
	addr      string
	startTime time.Time
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStore serves an existing store instead of one built from the seed.
func WithStore(store *stateful.Store) ServerOption {
	return func(s *Server) {
		s.store = store
	}
}

// WithRequestLog sets the request history store.
func WithRequestLog(store requestlog.Store) ServerOption {
	return func(s *Server) {
		s.requests = store
	}
}

// WithLatency replaces the latency simulator built from configuration.
func WithLatency(sim *latency.Simulator) ServerOption {
	return func(s *Server) {
		s.latency = sim
	}
}

// NewServer creates a Server from configuration. A nil cfg uses
// config.DefaultServerConfiguration.
func NewServer(cfg *config.ServerConfiguration, opts ...ServerOption) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultServerConfiguration()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		log:       logging.Nop(),
		now:       time.Now,
		validator: validation.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		store, err := newStore(cfg)
		if err != nil {
			return nil, err
		}
		s.store = store
	}
	if s.latency == nil {
		sim, err := latency.New(cfg.Latency)
		if err != nil {
			return nil, err
		}
		s.latency = sim
	}
	if s.requests == nil {
		if cfg.MaxLogEntries > 0 {
			s.requests = requestlog.NewMemoryStore(cfg.MaxLogEntries)
		} else {
			s.requests = requestlog.Nop{}
		}
	}
	if rl := cfg.RateLimit; rl != nil && rl.Enabled {
		s.limiter = ratelimit.New(ratelimit.Config{
			Rate:  rl.RequestsPerSecond,
			Burst: rl.BurstSize,
		})
	}

	s.metrics = metrics.NewServerMetrics(s.entityCounts, func() float64 {
		return float64(s.Uptime())
	})

	router, err := NewRouter(Routes())
	if err != nil {
		return nil, err
	}
	s.router = router
	s.handler = s.buildHandler()
	return s, nil
}

func newStore(cfg *config.ServerConfiguration) (*stateful.Store, error) {
	var (
		seed *config.Seed
		err  error
	)
	if cfg.SeedFile != "" {
		seed, err = config.LoadSeedFile(cfg.SeedFile)
	} else {
		seed, err = config.DefaultSeed()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load seed: %w", err)
	}
	return stateful.New(seed)
}

// buildHandler assembles the middleware chain. The order, outermost first,
// is: request observation (id, recovery, logging) -> CORS -> rate limit ->
// admin or API dispatch.
func (s *Server) buildHandler() http.Handler {
	mux := http.NewServeMux()
	s.registerAdmin(mux)
	mux.HandleFunc("/", s.serveAPI)

	var h http.Handler = mux
	h = ratelimit.Middleware(s.limiter)(h)
	if s.cfg.CORS != nil && s.cfg.CORS.Enabled {
		h = NewCORSMiddleware(h, s.cfg.CORS)
	}
	return s.observe(h)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) entityCounts() map[string]float64 {
	o := s.store.Overview()
	return map[string]float64{
		"users":     float64(o.Users),
		"articles":  float64(o.Articles),
		"comments":  float64(o.Comments),
		"follows":   float64(o.Follows),
		"favorites": float64(o.Favorites),
		"tags":      float64(o.Tags),
	}
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server is already running")
	}

	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address(), err)
	}

	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.WriteTimeout) * time.Second,
	}
	srv := s.httpServer
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server error", "error", err)
		}
	}()

	s.addr = ln.Addr().String()
	s.running = true
	s.startTime = s.now()
	s.log.Info("conduit mock API started",
		"addr", s.addr,
		"base_path", s.cfg.BasePath,
		"latency", s.latency.Enabled(),
		"rate_limit", s.limiter != nil,
	)
	return nil
}

// Stop gracefully shuts the server down. It also releases the rate
// limiter of a server that was only used as an http.Handler.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.limiter != nil {
		s.limiter.Stop()
	}
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	srv := s.httpServer
	s.running = false
	s.mu.Unlock()

	// In-flight handlers may read server state, so shut down unlocked.
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}

	s.log.Info("conduit mock API stopped")
	return errors.Join(errs...)
}

// Addr returns the address the server listens on, once started.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// IsRunning returns whether the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Uptime returns the server uptime in seconds.
func (s *Server) Uptime() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return 0
	}
	return int(s.now().Sub(s.startTime).Seconds())
}

// Config returns the server configuration.
func (s *Server) Config() *config.ServerConfiguration { return s.cfg }

// Store returns the entity store.
func (s *Server) Store() *stateful.Store { return s.store }

// RequestLog returns the request history.
func (s *Server) RequestLog() requestlog.Store { return s.requests }

// Latency returns the latency simulator.
func (s *Server) Latency() *latency.Simulator { return s.latency }

// Routes returns the dispatch table.
func (s *Server) Routes() []Route { return s.router.Routes() }
