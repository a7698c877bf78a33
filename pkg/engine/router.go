package engine

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/civiclens/conduit-mock/internal/matching"
)

type compiledRoute struct {
	Route
	pattern *matching.Pattern
}

// Router picks the most specific route for a request path. Literal
// segments outrank parameters, so /articles/feed never reaches
// /articles/:slug. Table order breaks ties.
type Router struct {
	routes []compiledRoute
}

// NewRouter compiles the route table.
func NewRouter(routes []Route) (*Router, error) {
	rt := &Router{routes: make([]compiledRoute, 0, len(routes))}
	seen := make(map[string]bool, len(routes))
	for _, r := range routes {
		p, err := matching.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", r.Name, err)
		}
		key := r.Method + " " + r.Pattern
		if seen[key] {
			return nil, fmt.Errorf("route %s: duplicate %s", r.Name, key)
		}
		seen[key] = true
		rt.routes = append(rt.routes, compiledRoute{Route: r, pattern: p})
	}
	return rt, nil
}

// Match finds the route for method and path. Only the most specific
// matching pattern is considered; when it is not registered for method,
// route is nil and allowed lists the methods it does support.
func (rt *Router) Match(method, path string) (route *Route, params matching.Params, allowed []string) {
	bestScore := matching.ScoreNoMatch
	var best []int
	for i := range rt.routes {
		score, _ := rt.routes[i].pattern.Match(path)
		switch {
		case score == matching.ScoreNoMatch || score < bestScore:
		case score > bestScore:
			bestScore = score
			best = append(best[:0], i)
		default:
			best = append(best, i)
		}
	}

	for _, i := range best {
		cr := &rt.routes[i]
		if cr.Method == method {
			_, params = cr.pattern.Match(path)
			return &cr.Route, params, nil
		}
		if !slices.Contains(allowed, cr.Method) {
			allowed = append(allowed, cr.Method)
		}
	}
	slices.Sort(allowed)
	return nil, nil, allowed
}

// Routes returns the compiled table in declaration order.
func (rt *Router) Routes() []Route {
	out := make([]Route, 0, len(rt.routes))
	for _, cr := range rt.routes {
		out = append(out, cr.Route)
	}
	return out
}

// relativePath strips basePath from path. ok is false when path lies
// outside basePath.
func relativePath(basePath, path string) (rel string, ok bool) {
	base := strings.TrimSuffix(basePath, "/")
	if base == "" {
		return path, true
	}
	if path == base {
		return "/", true
	}
	if rest, found := strings.CutPrefix(path, base+"/"); found {
		return "/" + rest, true
	}
	return "", false
}

// allowHeader joins methods for the Allow header.
func allowHeader(methods []string) string {
	return strings.Join(methods, ", ")
}

var errRouteNotFound = &statusError{status: http.StatusNotFound, field: "route", message: "not found"}
