package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Default per-IP limiter values.
const (
	DefaultRate            = 50
	DefaultCleanupInterval = 1 * time.Minute
	DefaultEntryTTL        = 1 * time.Minute
)

// Config configures a PerIPLimiter.
type Config struct {
	Rate            float64       // tokens per second
	Burst           int           // maximum bucket capacity
	TrustedProxies  []string      // CIDR ranges or single IPs allowed to set X-Forwarded-For
	CleanupInterval time.Duration // how often idle entries are swept
	EntryTTL        time.Duration // how long an entry lives without activity
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PerIPLimiter keeps one rate.Limiter per client IP.
type PerIPLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time

	trustedProxies []*net.IPNet
	entryTTL       time.Duration

	stopOnce  sync.Once
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// New creates a per-IP limiter and starts its sweeper goroutine.
func New(cfg Config) *PerIPLimiter {
	rps := cfg.Rate
	if rps <= 0 {
		rps = DefaultRate
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(rps * 2)
	}
	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	ttl := cfg.EntryTTL
	if ttl <= 0 {
		ttl = DefaultEntryTTL
	}

	l := &PerIPLimiter{
		limit:          rate.Limit(rps),
		burst:          burst,
		entries:        make(map[string]*entry),
		now:            time.Now,
		trustedProxies: parseProxies(cfg.TrustedProxies),
		entryTTL:       ttl,
		stopCh:         make(chan struct{}),
		stoppedCh:      make(chan struct{}),
	}
	go l.sweep(interval)
	return l
}

// Burst returns the bucket capacity.
func (l *PerIPLimiter) Burst() int {
	return l.burst
}

// Allow reports whether a request from ip may proceed. When it may not,
// retryAfter is how long until a token is available.
func (l *PerIPLimiter) Allow(ip string) (allowed bool, remaining int, retryAfter time.Duration) {
	now := l.now()
	lim := l.limiter(ip, now)

	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, 0, delay
	}
	return true, max(int(lim.TokensAt(now)), 0), 0
}

func (l *PerIPLimiter) limiter(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[ip]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

// Len returns the number of tracked clients.
func (l *PerIPLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// ClientIP extracts the client IP. Forwarding headers are honoured only
// when the direct peer is a trusted proxy.
func (l *PerIPLimiter) ClientIP(r *http.Request) string {
	remote := extractRemoteIP(r.RemoteAddr)
	if !l.isTrustedProxy(remote) {
		return remote
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(ip) != nil {
		return ip
	}
	return remote
}

// Stop terminates the sweeper. It is safe to call more than once.
func (l *PerIPLimiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
		<-l.stoppedCh
	})
}

func (l *PerIPLimiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(l.stoppedCh)

	for {
		select {
		case <-ticker.C:
			l.removeIdle()
		case <-l.stopCh:
			return
		}
	}
}

// removeIdle drops entries not seen within the TTL.
func (l *PerIPLimiter) removeIdle() {
	cutoff := l.now().Add(-l.entryTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, ip)
		}
	}
}

func (l *PerIPLimiter) isTrustedProxy(ip string) bool {
	if len(l.trustedProxies) == 0 {
		return false
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, network := range l.trustedProxies {
		if network.Contains(parsed) {
			return true
		}
	}
	return false
}

func parseProxies(list []string) []*net.IPNet {
	var out []*net.IPNet
	for _, cidr := range list {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			ip := net.ParseIP(cidr)
			if ip == nil {
				continue
			}
			bits := 128
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 32
			}
			network = &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}
		}
		out = append(out, network)
	}
	return out
}

// extractRemoteIP strips the port from RemoteAddr.
func extractRemoteIP(remoteAddr string) string {
	ip, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return ip
}
