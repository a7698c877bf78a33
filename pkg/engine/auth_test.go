package engine

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "canonical", header: "Token abc", want: "abc"},
		{name: "lowercase scheme", header: "token abc", want: "abc"},
		{name: "uppercase scheme", header: "TOKEN abc", want: "abc"},
		{name: "surrounding space", header: "  Token   abc  ", want: "abc"},
		{name: "percent encoded", header: "Token mock%2Djwt", want: "mock-jwt"},
		{name: "bad escape kept", header: "Token a%zz", want: "a%zz"},
		{name: "bearer scheme", header: "Bearer abc", want: ""},
		{name: "no value", header: "Token ", want: ""},
		{name: "empty", header: "", want: ""},
		{name: "bare token", header: "abc", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseToken(tt.header))
		})
	}
}

func TestServer_CurrentUser(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name     string
		header   string
		wantUser string
	}{
		{name: "known token", header: "Token " + janeToken, wantUser: "janedoe"},
		{name: "unknown token", header: "Token nope", wantUser: ""},
		{name: "missing header", header: "", wantUser: ""},
		{name: "wrong scheme", header: "Bearer " + janeToken, wantUser: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			u, ok := srv.currentUser(req)
			if tt.wantUser == "" {
				assert.False(t, ok)
				assert.Nil(t, u)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantUser, u.Username)
		})
	}
}

func TestAuthModes(t *testing.T) {
	srv := newTestServer(t)

	t.Run("required route rejects anonymous caller", func(t *testing.T) {
		rec := call(t, srv, http.MethodGet, "/api/user", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeBody[errorBody](t, rec)
		assert.Equal(t, []string{"Unauthorized"}, body.Errors["message"])
	})

	t.Run("required route rejects unknown token", func(t *testing.T) {
		rec := call(t, srv, http.MethodGet, "/api/articles/feed", "bogus", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("optional route serves anonymous caller", func(t *testing.T) {
		rec := call(t, srv, http.MethodGet, "/api/profiles/janedoe", "bogus", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[map[string]map[string]any](t, rec)
		assert.Equal(t, false, body["profile"]["following"])
	})

	t.Run("optional route personalizes for known token", func(t *testing.T) {
		rec := call(t, srv, http.MethodGet, "/api/profiles/janedoe", demoToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[map[string]map[string]any](t, rec)
		assert.Equal(t, true, body["profile"]["following"])
	})
}
