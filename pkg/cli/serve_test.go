package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclens/conduit-mock/pkg/config"
)

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestBuildServeConfig_Defaults(t *testing.T) {
	cfg, err := buildServeConfig(&serveFlags{port: 9999}, changedSet(), envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultPort, cfg.Port, "unchanged flags must not override")
	assert.Equal(t, config.DefaultBasePath, cfg.BasePath)
	assert.True(t, cfg.Latency.Enabled)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestBuildServeConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 4000\nbasePath: /v2\nlog:\n  level: warn\n"), 0o644))

	tests := []struct {
		name     string
		flags    serveFlags
		changed  []string
		env      map[string]string
		wantPort int
		wantLvl  string
	}{
		{
			name:     "file only",
			flags:    serveFlags{configFile: path},
			wantPort: 4000,
			wantLvl:  "warn",
		},
		{
			name:     "env beats file",
			flags:    serveFlags{configFile: path},
			env:      map[string]string{config.EnvPort: "5000", config.EnvLogLevel: "debug"},
			wantPort: 5000,
			wantLvl:  "debug",
		},
		{
			name:     "flag beats env",
			flags:    serveFlags{configFile: path, port: 6000, logLevel: "error"},
			changed:  []string{"port", "log-level"},
			env:      map[string]string{config.EnvPort: "5000", config.EnvLogLevel: "debug"},
			wantPort: 6000,
			wantLvl:  "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := buildServeConfig(&tt.flags, changedSet(tt.changed...), envMap(tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPort, cfg.Port)
			assert.Equal(t, tt.wantLvl, cfg.Log.Level)
			assert.Equal(t, "/v2", cfg.BasePath)
		})
	}
}

func TestBuildServeConfig_Latency(t *testing.T) {
	tests := []struct {
		name        string
		flags       serveFlags
		changed     []string
		env         map[string]string
		wantEnabled bool
		wantScale   float64
	}{
		{name: "default", wantEnabled: true, wantScale: 1},
		{name: "no-latency", flags: serveFlags{noLatency: true}, changed: []string{"no-latency"}, wantEnabled: false, wantScale: 1},
		{name: "env off", env: map[string]string{config.EnvLatency: "off"}, wantEnabled: false, wantScale: 1},
		{name: "flag re-enables", flags: serveFlags{latency: true}, changed: []string{"latency"}, env: map[string]string{config.EnvLatency: "off"}, wantEnabled: true, wantScale: 1},
		{name: "scale", flags: serveFlags{latencyScale: 0.25}, changed: []string{"latency-scale"}, wantEnabled: true, wantScale: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := buildServeConfig(&tt.flags, changedSet(tt.changed...), envMap(tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.wantEnabled, cfg.Latency.Enabled)
			assert.InDelta(t, tt.wantScale, cfg.Latency.Scale, 1e-9)
		})
	}
}

func TestBuildServeConfig_CORSAndRateLimit(t *testing.T) {
	f := serveFlags{corsOrigins: []string{"https://app.example"}, rateLimit: 5}
	cfg, err := buildServeConfig(&f, changedSet("cors-origin", "rate-limit"), envMap(nil))
	require.NoError(t, err)

	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"https://app.example"}, cfg.CORS.AllowOrigins)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.InDelta(t, 5.0, cfg.RateLimit.RequestsPerSecond, 1e-9)
	assert.Equal(t, config.DefaultRateLimitBurst, cfg.RateLimit.BurstSize)
}

func TestBuildServeConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		flags   serveFlags
		changed []string
		env     map[string]string
	}{
		{name: "missing config file", flags: serveFlags{configFile: filepath.Join(t.TempDir(), "nope.yaml")}},
		{name: "bad env port", env: map[string]string{config.EnvPort: "http"}},
		{name: "bad base path", flags: serveFlags{basePath: "api"}, changed: []string{"base-path"}},
		{name: "negative scale", flags: serveFlags{latencyScale: -1}, changed: []string{"latency-scale"}},
		{name: "port out of range", flags: serveFlags{port: 70000}, changed: []string{"port"}},
		{name: "unknown log level", flags: serveFlags{logLevel: "loud"}, changed: []string{"log-level"}},
		{name: "unknown env log format", env: map[string]string{config.EnvLogFormat: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildServeConfig(&tt.flags, changedSet(tt.changed...), envMap(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"[::]:3001", "localhost:3001"},
		{"0.0.0.0:3001", "localhost:3001"},
		{"127.0.0.1:8080", "127.0.0.1:8080"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, displayAddr(tt.in), tt.in)
	}
}
