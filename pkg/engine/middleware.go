package engine

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/civiclens/conduit-mock/internal/id"
	"github.com/civiclens/conduit-mock/pkg/httputil"
	"github.com/civiclens/conduit-mock/pkg/logging"
	"github.com/civiclens/conduit-mock/pkg/requestlog"
	"github.com/civiclens/conduit-mock/pkg/stateful"
)

// HeaderRequestID carries the request identifier in both directions.
const HeaderRequestID = "X-Request-ID"

// StatusClientClosedRequest is recorded for requests whose client went away
// before a response was written.
const StatusClientClosedRequest = 499

const maxRequestIDLen = 128

// exchange collects facts about a request while it is served so that the
// outer middleware can log them.
type exchange struct {
	requestID string
	route     string
	username  string
	delay     time.Duration
	err       error
}

type exchangeKey struct{}

func exchangeFrom(ctx context.Context) *exchange {
	ex, _ := ctx.Value(exchangeKey{}).(*exchange)
	return ex
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusRecorder) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.written {
		w.status = http.StatusOK
		w.written = true
	}
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *statusRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// observe assigns the request id, recovers from panics, writes the access
// log line and records the request in the request log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()

		reqID := r.Header.Get(HeaderRequestID)
		if reqID == "" || len(reqID) > maxRequestIDLen {
			reqID = id.RequestID()
		}
		w.Header().Set(HeaderRequestID, reqID)

		ex := &exchange{requestID: reqID}
		log := s.log.With("request_id", reqID)
		ctx := context.WithValue(r.Context(), exchangeKey{}, ex)
		ctx = logging.WithLogger(ctx, log)
		r = r.WithContext(ctx)

		rec := &statusRecorder{ResponseWriter: w}
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				log.Error("panic serving request", "panic", p, "stack", string(debug.Stack()))
				if !rec.written {
					httputil.WriteFieldError(rec, http.StatusInternalServerError, "server", stateful.MsgInternal)
				}
			}
			s.finish(r, rec, ex, start)
		}()

		next.ServeHTTP(rec, r)
	})
}

func (s *Server) finish(r *http.Request, rec *statusRecorder, ex *exchange, start time.Time) {
	status := rec.status
	if !rec.written {
		status = http.StatusOK
		if r.Context().Err() != nil {
			status = StatusClientClosedRequest
		}
	}
	elapsed := s.now().Sub(start)

	if isAdminPath(r.URL.Path) {
		s.logger(r).Debug("admin request", "method", r.Method, "path", r.URL.Path, "status", status)
		return
	}

	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger(r).Log(r.Context(), level, "request",
		"method", r.Method,
		"path", r.URL.Path,
		"route", ex.route,
		"status", status,
		"delay_ms", ex.delay.Milliseconds(),
		"duration_ms", elapsed.Milliseconds(),
	)

	entry := &requestlog.Entry{
		RequestID:   ex.requestID,
		Timestamp:   start,
		Method:      r.Method,
		Path:        r.URL.Path,
		QueryString: r.URL.RawQuery,
		Route:       ex.route,
		RemoteAddr:  r.RemoteAddr,
		Username:    ex.username,
		Status:      status,
		DelayMs:     ex.delay.Milliseconds(),
		DurationMs:  elapsed.Milliseconds(),
	}
	if ex.err != nil {
		entry.Error = ex.err.Error()
	}
	s.requests.Log(entry)
	s.metrics.Observe(ex.route, r.Method, status, ex.delay, elapsed)
}

// logger returns the request-scoped logger.
func (s *Server) logger(r *http.Request) *slog.Logger {
	return logging.FromContext(r.Context(), s.log)
}

func isAdminPath(path string) bool {
	return path == adminPrefix || strings.HasPrefix(path, adminPrefix+"/")
}
