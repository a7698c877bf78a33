package engine

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclens/conduit-mock/pkg/config"
	"github.com/civiclens/conduit-mock/pkg/logging"
	"github.com/civiclens/conduit-mock/pkg/stateful"
)

func TestNewServer(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		srv, err := NewServer(nil)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultPort, srv.Config().Port)
		assert.True(t, srv.Latency().Enabled())
		assert.Equal(t, 5, srv.Store().Overview().Articles)
		assert.False(t, srv.IsRunning())
		assert.Zero(t, srv.Uptime())
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.DefaultServerConfiguration()
		cfg.BasePath = "api"
		_, err := NewServer(cfg)
		assert.ErrorContains(t, err, "basePath")
	})

	t.Run("nil logger keeps nop logger", func(t *testing.T) {
		srv, err := NewServer(nil, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, srv.log)
	})

	t.Run("store option", func(t *testing.T) {
		store, err := stateful.New(nil)
		require.NoError(t, err)
		srv, err := NewServer(nil, WithStore(store), WithLogger(logging.Nop()))
		require.NoError(t, err)
		assert.Same(t, store, srv.Store())
	})

	t.Run("missing seed file", func(t *testing.T) {
		cfg := config.DefaultServerConfiguration()
		cfg.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")
		_, err := NewServer(cfg)
		assert.ErrorContains(t, err, "failed to load seed")
	})

	t.Run("rate limit enabled", func(t *testing.T) {
		cfg := config.DefaultServerConfiguration()
		cfg.RateLimit.Enabled = true
		srv, err := NewServer(cfg)
		require.NoError(t, err)
		assert.NotNil(t, srv.limiter)
	})
}

func TestNewServer_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	seed := `users:
  - email: solo@example.com
    username: solo
    password: pw
    token: solo-token
tags: [alpha]
`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	cfg := config.DefaultServerConfiguration()
	cfg.Latency.Enabled = false
	cfg.SeedFile = path
	srv, err := NewServer(cfg)
	require.NoError(t, err)

	rec := call(t, srv, http.MethodGet, "/api/user", "solo-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"solo"`)

	rec = call(t, srv, http.MethodGet, "/api/tags", "", nil)
	assert.JSONEq(t, `{"tags":["alpha"]}`, rec.Body.String())
}

func TestServer_RateLimited(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.ServerConfiguration) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.RequestsPerSecond = 1
		cfg.RateLimit.BurstSize = 2
	})
	t.Cleanup(func() { _ = srv.Stop() })

	for range 2 {
		assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/tags", "", nil).Code)
	}
	rec := call(t, srv, http.MethodGet, "/api/tags", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestServer_StartStop(t *testing.T) {
	cfg := config.DefaultServerConfiguration()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.Latency.Enabled = false
	srv, err := NewServer(cfg)
	require.NoError(t, err)

	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Stop() })
	assert.True(t, srv.IsRunning())
	assert.Error(t, srv.Start(), "second start fails")

	resp, err := http.Get(fmt.Sprintf("http://%s/api/tags", srv.Addr()))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Stop())
	assert.False(t, srv.IsRunning())
	require.NoError(t, srv.Stop(), "stopping twice is a no-op")
}
