package engine

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civiclens/conduit-mock/pkg/config"
)

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name        string
		cfg         *config.CORSConfig
		method      string
		origin      string
		preflight   bool
		wantStatus  int
		wantAllowed string
	}{
		{
			name:        "default allows localhost dev server",
			cfg:         &config.CORSConfig{Enabled: true},
			method:      http.MethodGet,
			origin:      "http://localhost:3000",
			wantStatus:  http.StatusTeapot,
			wantAllowed: "http://localhost:3000",
		},
		{
			name:       "default rejects other origins silently",
			cfg:        &config.CORSConfig{Enabled: true},
			method:     http.MethodGet,
			origin:     "https://evil.example",
			wantStatus: http.StatusTeapot,
		},
		{
			name:        "wildcard",
			cfg:         &config.CORSConfig{Enabled: true, AllowOrigins: []string{"*"}},
			method:      http.MethodGet,
			origin:      "https://app.example",
			wantStatus:  http.StatusTeapot,
			wantAllowed: "*",
		},
		{
			name:        "preflight allowed",
			cfg:         &config.CORSConfig{Enabled: true},
			method:      http.MethodOptions,
			origin:      "http://localhost:5173",
			preflight:   true,
			wantStatus:  http.StatusNoContent,
			wantAllowed: "http://localhost:5173",
		},
		{
			name:       "preflight from unknown origin",
			cfg:        &config.CORSConfig{Enabled: true},
			method:     http.MethodOptions,
			origin:     "https://evil.example",
			preflight:  true,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "disabled passes through",
			cfg:        &config.CORSConfig{Enabled: false},
			method:     http.MethodOptions,
			origin:     "http://localhost:3000",
			preflight:  true,
			wantStatus: http.StatusTeapot,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/tags", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()
			NewCORSMiddleware(next, tt.cfg).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowed, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantAllowed != "" {
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
				assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
			}
		})
	}
}

func TestCORS_ThroughServer(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/articles", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
