package metrics

import (
	"strconv"
	"time"
)

// DefaultBuckets are the histogram buckets for request durations and
// simulated delays, in seconds.
var DefaultBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// unmatchedRoute labels requests that matched no route.
const unmatchedRoute = "none"

// ServerMetrics are the metrics recorded for every API request.
type ServerMetrics struct {
	Registry *Registry

	requests *Counter
	duration *Histogram
	delay    *Histogram
}

// NewServerMetrics registers the server metrics on a fresh registry.
// entities returns the current entity counts keyed by kind; uptime
// returns the server uptime in seconds. Either may be nil.
func NewServerMetrics(entities func() map[string]float64, uptime func() float64) *ServerMetrics {
	r := NewRegistry()
	m := &ServerMetrics{
		Registry: r,
		requests: r.NewCounter(
			"conduit_mock_requests_total",
			"API requests by route, method and status",
			"route", "method", "status",
		),
		duration: r.NewHistogram(
			"conduit_mock_request_duration_seconds",
			"Time spent serving API requests, simulated delay included",
			DefaultBuckets,
			"route",
		),
		delay: r.NewHistogram(
			"conduit_mock_simulated_delay_seconds",
			"Simulated latency applied before the handler ran",
			DefaultBuckets,
			"route",
		),
	}
	if entities != nil {
		r.NewGaugeFunc("conduit_mock_entities", "Entities currently held by the store", "kind", entities)
	}
	if uptime != nil {
		r.NewGaugeFunc("conduit_mock_uptime_seconds", "Seconds since the server started", "", func() map[string]float64 {
			return map[string]float64{"": uptime()}
		})
	}
	return m
}

// Observe records one finished API request.
func (m *ServerMetrics) Observe(route, method string, status int, delay, duration time.Duration) {
	if route == "" {
		route = unmatchedRoute
	}
	if vec, err := m.requests.WithLabels(route, method, strconv.Itoa(status)); err == nil {
		_ = vec.Inc()
	}
	if vec, err := m.duration.WithLabels(route); err == nil {
		vec.Observe(duration.Seconds())
	}
	if vec, err := m.delay.WithLabels(route); err == nil {
		vec.Observe(delay.Seconds())
	}
}
