package latency

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/civiclens/conduit-mock/pkg/config"
)

// Rule overrides the delay of requests matching a path glob.
type Rule struct {
	Pattern string
	Methods []string
	Delay   time.Duration
}

// Matches reports whether the rule applies to method and path.
func (r Rule) Matches(method, path string) bool {
	if len(r.Methods) > 0 {
		found := false
		for _, m := range r.Methods {
			if strings.EqualFold(m, method) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	ok, err := doublestar.Match(r.Pattern, path)
	return err == nil && ok
}

// Simulator decides and applies per-request delays.
type Simulator struct {
	mu      sync.RWMutex
	enabled bool
	scale   float64
	rules   []Rule
}

// Disabled returns a Simulator that never delays.
func Disabled() *Simulator {
	return &Simulator{scale: 1}
}

// New builds a Simulator from configuration. A nil config disables latency.
func New(cfg *config.LatencyConfig) (*Simulator, error) {
	s := Disabled()
	if cfg == nil {
		return s, nil
	}

	s.enabled = cfg.Enabled
	if cfg.Scale > 0 {
		s.scale = cfg.Scale
	}
	for i, rc := range cfg.Rules {
		if !doublestar.ValidatePattern(rc.PathPattern) {
			return nil, fmt.Errorf("latency rule %d: invalid path pattern %q", i, rc.PathPattern)
		}
		d, err := time.ParseDuration(rc.Delay)
		if err != nil {
			return nil, fmt.Errorf("latency rule %d: %w", i, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("latency rule %d: negative delay %s", i, rc.Delay)
		}
		s.rules = append(s.rules, Rule{Pattern: rc.PathPattern, Methods: rc.Methods, Delay: d})
	}
	return s, nil
}

// Enabled reports whether delays are applied.
func (s *Simulator) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// SetEnabled turns delays on or off at runtime.
func (s *Simulator) SetEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = on
}

// Scale returns the delay multiplier.
func (s *Simulator) Scale() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale
}

// Delay returns how long a request should wait. base is the route's default
// delay and path is relative to the API base path.
func (s *Simulator) Delay(method, path string, base time.Duration) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.enabled {
		return 0
	}
	d := base
	for _, r := range s.rules {
		if r.Matches(method, path) {
			d = r.Delay
			break
		}
	}
	return time.Duration(float64(d) * s.scale)
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
