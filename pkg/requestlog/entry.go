package requestlog

import "time"

// Entry describes one served request.
type Entry struct {
	// ID is a unique identifier for the entry.
	ID string `json:"id"`
	// RequestID is the X-Request-ID echoed to the client.
	RequestID string `json:"requestId,omitempty"`
	// Timestamp is when the request was received.
	Timestamp time.Time `json:"timestamp"`

	Method      string `json:"method"`
	Path        string `json:"path"`
	QueryString string `json:"queryString,omitempty"`
	// Route is the name of the matched route, empty when nothing matched.
	Route      string `json:"route,omitempty"`
	RemoteAddr string `json:"remoteAddr,omitempty"`
	// Username is the authenticated caller, if any.
	Username string `json:"username,omitempty"`

	Status int `json:"status"`
	// DelayMs is the simulated latency applied before the handler ran.
	DelayMs    int64 `json:"delayMs"`
	DurationMs int64 `json:"durationMs"`
	// Error holds the error message for failed requests.
	Error string `json:"error,omitempty"`
}

// Filter selects entries. Zero fields match everything.
type Filter struct {
	Method string
	// Path matches entries whose path starts with this prefix.
	Path   string
	Route  string
	Status int
	Limit  int
	Offset int
}

// Matches reports whether e satisfies every criterion of f.
func (f *Filter) Matches(e *Entry) bool {
	if f == nil {
		return true
	}
	if f.Method != "" && e.Method != f.Method {
		return false
	}
	if f.Path != "" && !hasPrefix(e.Path, f.Path) {
		return false
	}
	if f.Route != "" && e.Route != f.Route {
		return false
	}
	if f.Status != 0 && e.Status != f.Status {
		return false
	}
	return true
}

func hasPrefix(path, prefix string) bool {
	return len(prefix) <= len(path) && path[:len(prefix)] == prefix
}
