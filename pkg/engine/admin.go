package engine

import (
	"net/http"
	"strconv"

	"github.com/civiclens/conduit-mock/pkg/httputil"
	"github.com/civiclens/conduit-mock/pkg/requestlog"
)

// adminPrefix is where the control endpoints live. Admin requests are
// never delayed and are left out of the request log.
const adminPrefix = "/__admin"

// DefaultRequestListLimit caps GET /__admin/requests when no limit is given.
const DefaultRequestListLimit = 100

// HealthResponse is the body of GET /__admin/health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime int    `json:"uptime"`
}

// RequestListResponse is the body of GET /__admin/requests.
type RequestListResponse struct {
	Requests []*requestlog.Entry `json:"requests"`
	Total    int                 `json:"total"`
}

// RouteInfo describes one dispatch table entry.
type RouteInfo struct {
	Name      string `json:"name"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Auth      string `json:"auth"`
	Status    int    `json:"status"`
	LatencyMs int64  `json:"latencyMs"`
}

// LatencyState is the body of GET and PUT /__admin/latency.
type LatencyState struct {
	Enabled bool    `json:"enabled"`
	Scale   float64 `json:"scale,omitempty"`
}

func (s *Server) registerAdmin(mux *http.ServeMux) {
	mux.HandleFunc("GET "+adminPrefix+"/health", s.handleHealth)
	mux.HandleFunc("GET "+adminPrefix+"/state", s.handleState)
	mux.HandleFunc("POST "+adminPrefix+"/reset", s.handleReset)
	mux.HandleFunc("GET "+adminPrefix+"/requests", s.handleListRequests)
	mux.HandleFunc("GET "+adminPrefix+"/requests/{id}", s.handleGetRequest)
	mux.HandleFunc("DELETE "+adminPrefix+"/requests", s.handleClearRequests)
	mux.HandleFunc("GET "+adminPrefix+"/routes", s.handleListRoutes)
	mux.HandleFunc("GET "+adminPrefix+"/latency", s.handleGetLatency)
	mux.HandleFunc("PUT "+adminPrefix+"/latency", s.handleSetLatency)
	mux.Handle("GET "+adminPrefix+"/metrics", s.metrics.Registry.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, HealthResponse{Status: "ok", Uptime: s.Uptime()})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, s.store.Overview())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.store.Reset()
	s.logger(r).Info("store reset to seed state")
	httputil.WriteOK(w, map[string]bool{"reset": true})
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &requestlog.Filter{
		Method: query.Get("method"),
		Path:   query.Get("path"),
		Route:  query.Get("route"),
	}
	if v, err := strconv.Atoi(query.Get("status")); err == nil {
		filter.Status = v
	}

	total := len(s.requests.List(filter))

	filter.Limit = DefaultRequestListLimit
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(query.Get("offset")); err == nil && v > 0 {
		filter.Offset = v
	}

	httputil.WriteOK(w, RequestListResponse{
		Requests: s.requests.List(filter),
		Total:    total,
	})
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	entry := s.requests.Get(r.PathValue("id"))
	if entry == nil {
		httputil.WriteFieldError(w, http.StatusNotFound, "request", "not found")
		return
	}
	httputil.WriteOK(w, entry)
}

func (s *Server) handleClearRequests(w http.ResponseWriter, _ *http.Request) {
	n := s.requests.Count()
	s.requests.Clear()
	httputil.WriteOK(w, map[string]int{"cleared": n})
}

func (s *Server) handleListRoutes(w http.ResponseWriter, _ *http.Request) {
	routes := s.Routes()
	out := make([]RouteInfo, 0, len(routes))
	for _, rt := range routes {
		out = append(out, RouteInfo{
			Name:      rt.Name,
			Method:    rt.Method,
			Path:      s.cfg.BasePath + rt.Pattern,
			Auth:      rt.Auth.String(),
			Status:    rt.Status,
			LatencyMs: rt.Latency.Milliseconds(),
		})
	}
	httputil.WriteOK(w, map[string][]RouteInfo{"routes": out})
}

func (s *Server) handleGetLatency(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, LatencyState{Enabled: s.latency.Enabled(), Scale: s.latency.Scale()})
}

func (s *Server) handleSetLatency(w http.ResponseWriter, r *http.Request) {
	var body LatencyState
	if err := httputil.DecodeJSON(w, r, s.cfg.MaxBodySize, &body); err != nil {
		s.writeError(w, r, errBodyInvalid)
		return
	}
	s.latency.SetEnabled(body.Enabled)
	s.logger(r).Info("latency simulation toggled", "enabled", body.Enabled)
	httputil.WriteOK(w, LatencyState{Enabled: s.latency.Enabled(), Scale: s.latency.Scale()})
}
