package conduittest

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/civiclens/conduit-mock/pkg/client"
	"github.com/civiclens/conduit-mock/pkg/config"
	"github.com/civiclens/conduit-mock/pkg/engine"
	"github.com/civiclens/conduit-mock/pkg/logging"
	"github.com/civiclens/conduit-mock/pkg/requestlog"
	"github.com/civiclens/conduit-mock/pkg/stateful"
)

// Server is a mock Conduit API bound to a test.
type Server struct {
	t       testing.TB
	engine  *engine.Server
	httpSrv *httptest.Server
	seed    *config.Seed
	apiURL  string
}

type options struct {
	cfg       *config.ServerConfiguration
	seed      *config.Seed
	seedFile  string
	storeOpts []stateful.Option
	requests  requestlog.Store
}

// Option configures a Server.
type Option func(*options)

// WithSeed replaces the built-in fixtures.
func WithSeed(seed *config.Seed) Option {
	return func(o *options) { o.seed = seed }
}

// WithSeedFile loads fixtures from a YAML or JSON seed file.
func WithSeedFile(path string) Option {
	return func(o *options) { o.seedFile = path }
}

// WithLatency turns latency simulation on with the given scale.
func WithLatency(scale float64) Option {
	return func(o *options) {
		o.cfg.Latency.Enabled = true
		o.cfg.Latency.Scale = scale
	}
}

// WithConfig lets a test adjust the server configuration directly.
func WithConfig(fn func(*config.ServerConfiguration)) Option {
	return func(o *options) { fn(o.cfg) }
}

// WithClock fixes the time source used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.storeOpts = append(o.storeOpts, stateful.WithClock(now)) }
}

// WithRequestLog records API requests into store instead of a fresh
// in-memory log sized by the configuration.
func WithRequestLog(store requestlog.Store) Option {
	return func(o *options) { o.requests = store }
}

// New starts a mock server. It is closed when the test completes.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	o := &options{cfg: config.DefaultServerConfiguration()}
	o.cfg.Latency.Enabled = false
	for _, opt := range opts {
		opt(o)
	}

	seed := o.seed
	switch {
	case seed != nil:
	case o.seedFile != "":
		loaded, err := config.LoadSeedFile(o.seedFile)
		if err != nil {
			t.Fatalf("conduittest: %v", err)
		}
		seed = loaded
	default:
		seed = config.MustDefaultSeed()
	}

	store, err := stateful.New(seed, o.storeOpts...)
	if err != nil {
		t.Fatalf("conduittest: %v", err)
	}
	engOpts := []engine.ServerOption{engine.WithStore(store), engine.WithLogger(logging.Nop())}
	if o.requests != nil {
		engOpts = append(engOpts, engine.WithRequestLog(o.requests))
	}
	eng, err := engine.NewServer(o.cfg, engOpts...)
	if err != nil {
		t.Fatalf("conduittest: %v", err)
	}

	s := &Server{
		t:       t,
		engine:  eng,
		httpSrv: httptest.NewServer(eng),
		seed:    seed,
	}
	s.apiURL = s.httpSrv.URL + o.cfg.BasePath
	t.Cleanup(s.Close)
	return s
}

// Close shuts the server down. It is safe to call more than once.
func (s *Server) Close() {
	s.httpSrv.Close()
	_ = s.engine.Stop()
}

// URL returns the server root, where the admin endpoints live.
func (s *Server) URL() string { return s.httpSrv.URL }

// APIURL returns the base URL of the API, including the base path.
func (s *Server) APIURL() string { return s.apiURL }

// Engine returns the underlying engine.Server for advanced use cases.
// Most tests should not need this.
func (s *Server) Engine() *engine.Server { return s.engine }

// Client returns an anonymous API client.
func (s *Server) Client() *client.Client {
	return client.New(s.apiURL, client.WithHTTPClient(s.httpSrv.Client()))
}

// ClientAs returns a client authenticated as a seeded user.
func (s *Server) ClientAs(username string) *client.Client {
	s.t.Helper()
	return client.New(s.apiURL,
		client.WithHTTPClient(s.httpSrv.Client()),
		client.WithToken(s.Token(username)),
	)
}

// Token returns the seeded token of username. It fails the test when the
// seed has no such user.
func (s *Server) Token(username string) string {
	s.t.Helper()
	for _, u := range s.seed.Users {
		if u.Username == username {
			return u.Token
		}
	}
	s.t.Fatalf("conduittest: no seeded user %q", username)
	return ""
}

// Reset restores the seed data and clears the request log.
func (s *Server) Reset() {
	s.engine.Store().Reset()
	s.engine.RequestLog().Clear()
}

// Requests returns logged API requests matching filter, newest first.
// A nil filter returns every entry.
func (s *Server) Requests(filter *requestlog.Filter) []*requestlog.Entry {
	return s.engine.RequestLog().List(filter)
}
