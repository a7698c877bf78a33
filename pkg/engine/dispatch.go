package engine

import (
	"errors"
	"net/http"

	"github.com/civiclens/conduit-mock/internal/matching"
	"github.com/civiclens/conduit-mock/pkg/httputil"
	"github.com/civiclens/conduit-mock/pkg/latency"
	"github.com/civiclens/conduit-mock/pkg/stateful"
)

// handlerFunc serves one matched route. A returned error is rendered as a
// Conduit error envelope.
type handlerFunc func(s *Server, req *request) error

// request carries what a handler needs about the current call.
type request struct {
	w      http.ResponseWriter
	r      *http.Request
	route  *Route
	params matching.Params
	// user is the authenticated caller, nil when anonymous.
	user *stateful.User
}

// viewerID returns the caller's id, 0 when anonymous.
func (q *request) viewerID() int64 {
	if q.user == nil {
		return 0
	}
	return q.user.ID
}

func (q *request) param(name string) string {
	return q.params.Get(name)
}

// respond writes v with the route's success status.
func (q *request) respond(v any) error {
	httputil.WriteJSON(q.w, q.route.Status, v)
	return nil
}

// serveAPI dispatches a request under the base path: match, wait for the
// simulated latency, resolve the caller, run the handler.
func (s *Server) serveAPI(w http.ResponseWriter, r *http.Request) {
	rel, ok := relativePath(s.cfg.BasePath, r.URL.Path)
	if !ok {
		s.writeError(w, r, errRouteNotFound)
		return
	}

	route, params, allowed := s.router.Match(r.Method, rel)
	if route == nil {
		if len(allowed) > 0 {
			w.Header().Set("Allow", allowHeader(allowed))
			s.writeError(w, r, &statusError{status: http.StatusMethodNotAllowed, field: "method", message: "not allowed"})
			return
		}
		s.writeError(w, r, errRouteNotFound)
		return
	}

	ex := exchangeFrom(r.Context())
	delay := s.latency.Delay(r.Method, rel, route.Latency)
	if ex != nil {
		ex.route = route.Name
		ex.delay = delay
	}
	if err := latency.Sleep(r.Context(), delay); err != nil {
		s.logger(r).Debug("request abandoned during simulated latency", "route", route.Name, "error", err)
		return
	}

	req := &request{w: w, r: r, route: route, params: params}
	if route.Auth != AuthNone {
		if u, ok := s.currentUser(r); ok {
			req.user = u
			if ex != nil {
				ex.username = u.Username
			}
		}
	}
	if route.Auth == AuthRequired && req.user == nil {
		s.writeError(w, r, &stateful.UnauthorizedError{})
		return
	}

	if err := route.handle(s, req); err != nil {
		s.writeError(w, r, err)
	}
}

// decode reads the JSON body into dst and validates it.
func (s *Server) decode(q *request, dst any) error {
	if err := httputil.DecodeJSON(q.w, q.r, s.cfg.MaxBodySize, dst); err != nil {
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			return errBodyTooLarge
		}
		return errBodyInvalid
	}
	return s.validator.Validate(dst)
}
