package engine

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/civiclens/conduit-mock/pkg/config"
)

// Tokens of the default seed users.
const (
	demoToken = "mock-jwt-token-demo-user"
	janeToken = "mock-jwt-token-jane"
	johnToken = "mock-jwt-token-john"
)

const (
	slugHowTo         = "how-to-build-civic-engagement-platforms"
	slugOpenData      = "open-data-initiatives-transforming-cities"
	slugParticipatory = "participatory-budgeting-guide"
)

// newTestServer returns a server over the default seed with latency
// simulation off.
func newTestServer(t *testing.T, mutate ...func(*config.ServerConfiguration)) *Server {
	t.Helper()
	cfg := config.DefaultServerConfiguration()
	cfg.Latency.Enabled = false
	for _, m := range mutate {
		m(cfg)
	}
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	return srv
}

// call sends a request through the full handler chain. A string body is
// sent verbatim; anything else is JSON encoded.
func call(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		r = jsonReader(t, b)
	}

	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonReader(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

type errorBody struct {
	Errors map[string][]string `json:"errors"`
}
