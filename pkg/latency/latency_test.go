package latency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclens/conduit-mock/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LatencyConfig
		wantErr string
	}{
		{name: "nil config", cfg: nil},
		{name: "zero scale", cfg: &config.LatencyConfig{Enabled: true}},
		{
			name: "bad delay",
			cfg: &config.LatencyConfig{Rules: []config.LatencyRule{
				{PathPattern: "/tags", Delay: "soon"},
			}},
			wantErr: "latency rule 0",
		},
		{
			name: "bad pattern",
			cfg: &config.LatencyConfig{Rules: []config.LatencyRule{
				{PathPattern: "/articles/[", Delay: "1s"},
			}},
			wantErr: "invalid path pattern",
		},
		{
			name: "negative delay",
			cfg: &config.LatencyConfig{Rules: []config.LatencyRule{
				{PathPattern: "/tags", Delay: "-1s"},
			}},
			wantErr: "negative delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1.0, s.Scale())
		})
	}
}

func TestSimulator_Delay(t *testing.T) {
	s, err := New(&config.LatencyConfig{
		Enabled: true,
		Scale:   0.5,
		Rules: []config.LatencyRule{
			{PathPattern: "/articles/*/comments", Methods: []string{"post"}, Delay: "2s"},
			{PathPattern: "/articles/**", Delay: "1s"},
		},
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		base   time.Duration
		want   time.Duration
	}{
		{name: "route default", method: "GET", path: "/tags", base: 200 * time.Millisecond, want: 100 * time.Millisecond},
		{name: "glob override", method: "GET", path: "/articles/feed", base: 400 * time.Millisecond, want: 500 * time.Millisecond},
		{name: "double star spans segments", method: "DELETE", path: "/articles/x/comments/3", base: 0, want: 500 * time.Millisecond},
		{name: "method-specific rule", method: "POST", path: "/articles/x/comments", base: 0, want: time.Second},
		{name: "method mismatch falls through", method: "GET", path: "/articles/x/comments", base: 0, want: 500 * time.Millisecond},
		{name: "unmatched path keeps default", method: "PUT", path: "/user", base: 300 * time.Millisecond, want: 150 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Delay(tt.method, tt.path, tt.base))
		})
	}

	s.SetEnabled(false)
	assert.Zero(t, s.Delay("GET", "/tags", time.Second))
	assert.False(t, s.Enabled())
}

func TestSleep(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), 0))
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, Sleep(ctx, 0), context.Canceled)
}
