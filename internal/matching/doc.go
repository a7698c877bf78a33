// Package matching provides route pattern matching for the request router.
//
// Patterns are slash-separated paths whose segments are either literals
// ("articles") or named parameters (":slug"). A compiled Pattern reports a
// specificity score for each path it matches along with the captured
// parameter values.
//
// Scores are positional: a literal segment always outranks a parameter
// segment at the same position, and earlier segments weigh more than later
// ones. When several patterns match one path, the router selects the one
// with the highest score, so "/articles/feed" wins over "/articles/:slug".
// Score constants are defined in scores.go.
package matching
