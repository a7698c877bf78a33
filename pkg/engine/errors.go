package engine

import (
	"net/http"

	"github.com/civiclens/conduit-mock/pkg/httputil"
	"github.com/civiclens/conduit-mock/pkg/stateful"
)

// statusError is an HTTP-level failure that happens before the store is
// involved: unknown routes, oversized or unreadable bodies.
type statusError struct {
	status  int
	field   string
	message string
}

func (e *statusError) Error() string {
	return e.field + " " + e.message
}

// StatusCode returns the HTTP status code for this error.
func (e *statusError) StatusCode() int { return e.status }

// Fields returns the field messages.
func (e *statusError) Fields() map[string][]string {
	return map[string][]string{e.field: {e.message}}
}

var (
	errBodyTooLarge = &statusError{status: http.StatusRequestEntityTooLarge, field: "body", message: "is too large"}
	errBodyInvalid  = &statusError{status: http.StatusUnprocessableEntity, field: "body", message: stateful.MsgInvalid}
)

// writeError renders err as a Conduit error envelope. Errors that carry no
// status become 500 and are logged.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := stateful.ToErrorBody(err)
	if status == http.StatusInternalServerError {
		s.logger(r).Error("request failed", "error", err)
	}
	if ex := exchangeFrom(r.Context()); ex != nil {
		ex.err = err
	}
	httputil.WriteJSON(w, status, body)
}
