package engine

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/civiclens/conduit-mock/pkg/stateful"
)

var tokenHeader = regexp.MustCompile(`(?i)^\s*token\s+(\S.*?)\s*$`)

// ParseToken extracts the token from an Authorization header of the form
// "Token <value>". The scheme is case-insensitive and the value is
// percent-decoded. It returns "" when the header is absent or malformed.
func ParseToken(header string) string {
	m := tokenHeader.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	tok := m[1]
	if strings.Contains(tok, "%") {
		if decoded, err := url.PathUnescape(tok); err == nil {
			tok = decoded
		}
	}
	return tok
}

// currentUser resolves the caller from the Authorization header. An absent,
// malformed or unknown token means no user; it is not an error.
func (s *Server) currentUser(r *http.Request) (*stateful.User, bool) {
	tok := ParseToken(r.Header.Get("Authorization"))
	if tok == "" {
		return nil, false
	}
	u, ok := s.store.UserByToken(tok)
	if !ok {
		return nil, false
	}
	return &u, true
}
