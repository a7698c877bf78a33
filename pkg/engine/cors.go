package engine

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/civiclens/conduit-mock/pkg/config"
)

// Defaults applied when CORSConfig leaves a list empty.
var (
	defaultCORSMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultCORSHeaders = []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"}
	defaultCORSExpose  = []string{HeaderRequestID}
)

// DefaultCORSMaxAge is the preflight cache duration in seconds.
const DefaultCORSMaxAge = 86400

// CORSMiddleware wraps an http.Handler with CORS handling based on configuration.
type CORSMiddleware struct {
	handler http.Handler
	config  *config.CORSConfig
}

// NewCORSMiddleware creates a CORS middleware. A nil config allows the
// default localhost origins.
func NewCORSMiddleware(handler http.Handler, cfg *config.CORSConfig) *CORSMiddleware {
	if cfg == nil {
		cfg = &config.CORSConfig{Enabled: true}
	}
	return &CORSMiddleware{handler: handler, config: cfg}
}

// ServeHTTP implements the http.Handler interface.
func (m *CORSMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !m.config.Enabled {
		m.handler.ServeHTTP(w, r)
		return
	}

	origin := r.Header.Get("Origin")
	allowOrigin := ""
	if origin != "" {
		allowOrigin = m.config.AllowOriginValue(origin)
	}

	if allowOrigin != "" {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		if allowOrigin != "*" {
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Methods", strings.Join(orDefault(m.config.AllowMethods, defaultCORSMethods), ", "))
		h.Set("Access-Control-Allow-Headers", strings.Join(orDefault(m.config.AllowHeaders, defaultCORSHeaders), ", "))
		h.Set("Access-Control-Expose-Headers", strings.Join(orDefault(m.config.ExposeHeaders, defaultCORSExpose), ", "))
		if m.config.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		maxAge := m.config.MaxAge
		if maxAge <= 0 {
			maxAge = DefaultCORSMaxAge
		}
		h.Set("Access-Control-Max-Age", strconv.Itoa(maxAge))
	}

	// Preflight requests never reach the API.
	if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
		if allowOrigin != "" {
			w.WriteHeader(http.StatusNoContent)
		} else {
			w.WriteHeader(http.StatusForbidden)
		}
		return
	}

	m.handler.ServeHTTP(w, r)
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
