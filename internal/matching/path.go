package matching

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by Compile.
var (
	ErrEmptyPattern      = errors.New("pattern is empty")
	ErrPatternNotRooted  = errors.New("pattern must start with /")
	ErrEmptyParamName    = errors.New("parameter name is empty")
	ErrDuplicateParamKey = errors.New("duplicate parameter name")
)

// Params holds path parameter values captured by a match, keyed by name.
type Params map[string]string

// Get returns the named parameter or "" when absent.
func (p Params) Get(name string) string {
	if p == nil {
		return ""
	}
	return p[name]
}

type segment struct {
	literal string
	param   string
}

func (s segment) isParam() bool { return s.param != "" }

// Pattern is a compiled route pattern such as "/articles/:slug/comments".
type Pattern struct {
	raw      string
	segments []segment
	names    []string
}

// Compile parses a route pattern. Parameter segments start with ':'.
func Compile(pattern string) (*Pattern, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("%w: %q", ErrPatternNotRooted, pattern)
	}

	p := &Pattern{raw: pattern}
	seen := make(map[string]bool)
	for _, part := range splitPath(pattern) {
		if strings.HasPrefix(part, ":") {
			name := part[1:]
			if name == "" {
				return nil, fmt.Errorf("%w in %q", ErrEmptyParamName, pattern)
			}
			if seen[name] {
				return nil, fmt.Errorf("%w %q in %q", ErrDuplicateParamKey, name, pattern)
			}
			seen[name] = true
			p.segments = append(p.segments, segment{param: name})
			p.names = append(p.names, name)
			continue
		}
		p.segments = append(p.segments, segment{literal: part})
	}
	return p, nil
}

// MustCompile is like Compile but panics on error. It is intended for
// route tables declared at package level.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("matching: " + err.Error())
	}
	return p
}

// String returns the pattern source.
func (p *Pattern) String() string { return p.raw }

// ParamNames returns parameter names in the order they appear.
func (p *Pattern) ParamNames() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Match reports whether path matches the pattern. It returns ScoreNoMatch
// and nil params when it does not.
func (p *Pattern) Match(path string) (int, Params) {
	parts := splitPath(path)
	if len(parts) != len(p.segments) {
		return ScoreNoMatch, nil
	}

	score := ScorePathMatch
	var params Params
	for i, seg := range p.segments {
		if seg.isParam() {
			if parts[i] == "" {
				return ScoreNoMatch, nil
			}
			if params == nil {
				params = make(Params, len(p.names))
			}
			params[seg.param] = parts[i]
			continue
		}
		if seg.literal != parts[i] {
			return ScoreNoMatch, nil
		}
		score += literalWeight(i)
	}
	return score, params
}

// MatchPath compiles pattern and matches it against path in one step.
// An invalid pattern never matches.
func MatchPath(pattern, path string) (int, Params) {
	p, err := Compile(pattern)
	if err != nil {
		return ScoreNoMatch, nil
	}
	return p.Match(path)
}

// splitPath splits a path into segments, ignoring a trailing slash.
// The root path has zero segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
