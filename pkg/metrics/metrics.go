package metrics

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrLabelCountMismatch is returned when the number of label values doesn't match the defined labels.
var ErrLabelCountMismatch = errors.New("label count mismatch")

// ErrNegativeCounterValue is returned when attempting to add a negative value to a counter.
var ErrNegativeCounterValue = errors.New("counter cannot be decreased")

// ErrDuplicateMetric is returned when registering a metric with a name that is already registered.
var ErrDuplicateMetric = errors.New("duplicate metric name")

// MetricType represents the type of a metric.
type MetricType string

// Metric types.
const (
	MetricTypeCounter   MetricType = "counter"
	MetricTypeGauge     MetricType = "gauge"
	MetricTypeHistogram MetricType = "histogram"
)

// Metric is the interface implemented by all metric types.
type Metric interface {
	Name() string
	Help() string
	Type() MetricType
	// Collect returns all samples for exposition, in a stable order.
	Collect() []Sample
}

// Sample is a single value with its labels.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// atomicFloat64 stores float64 bits in a uint64 for lock-free updates.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

func (a *atomicFloat64) Add(delta float64) {
	for {
		old := a.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if a.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// family holds one child per distinct combination of label values.
type family[V any] struct {
	name       string
	labelNames []string
	newValue   func() *V

	mu       sync.RWMutex
	children map[string]*child[V]
}

type child[V any] struct {
	labels map[string]string
	value  *V
}

func newFamily[V any](name string, labelNames []string, newValue func() *V) *family[V] {
	return &family[V]{
		name:       name,
		labelNames: labelNames,
		newValue:   newValue,
		children:   make(map[string]*child[V]),
	}
}

func (f *family[V]) with(values []string) (*V, error) {
	if len(values) != len(f.labelNames) {
		return nil, fmt.Errorf("%w: %s expected %d labels, got %d", ErrLabelCountMismatch, f.name, len(f.labelNames), len(values))
	}

	key := strings.Join(values, "\x00")
	f.mu.RLock()
	c, ok := f.children[key]
	f.mu.RUnlock()
	if ok {
		return c.value, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok = f.children[key]; ok {
		return c.value, nil
	}
	labels := make(map[string]string, len(values))
	for i, name := range f.labelNames {
		labels[name] = values[i]
	}
	c = &child[V]{labels: labels, value: f.newValue()}
	f.children[key] = c
	return c.value, nil
}

// each calls fn for every child, ordered by label values.
func (f *family[V]) each(fn func(labels map[string]string, v *V)) {
	f.mu.RLock()
	keys := make([]string, 0, len(f.children))
	for k := range f.children {
		keys = append(keys, k)
	}
	children := make([]*child[V], 0, len(keys))
	sort.Strings(keys)
	for _, k := range keys {
		children = append(children, f.children[k])
	}
	f.mu.RUnlock()

	for _, c := range children {
		fn(c.labels, c.value)
	}
}

// Counter is a monotonically increasing metric.
type Counter struct {
	help string
	fam  *family[atomicFloat64]
}

// CounterVec is a Counter bound to one set of label values.
type CounterVec struct {
	v *atomicFloat64
}

func (c *Counter) Name() string     { return c.fam.name }
func (c *Counter) Help() string     { return c.help }
func (c *Counter) Type() MetricType { return MetricTypeCounter }

// WithLabels returns the child for the given label values.
func (c *Counter) WithLabels(values ...string) (*CounterVec, error) {
	v, err := c.fam.with(values)
	if err != nil {
		return nil, err
	}
	return &CounterVec{v: v}, nil
}

// Inc increments a counter without labels.
func (c *Counter) Inc() error { return c.Add(1) }

// Add adds delta to a counter without labels.
func (c *Counter) Add(delta float64) error {
	vec, err := c.WithLabels()
	if err != nil {
		return err
	}
	return vec.Add(delta)
}

// Inc increments the counter by 1.
func (v *CounterVec) Inc() error { return v.Add(1) }

// Add adds delta, which must not be negative.
func (v *CounterVec) Add(delta float64) error {
	if delta < 0 {
		return ErrNegativeCounterValue
	}
	v.v.Add(delta)
	return nil
}

func (c *Counter) Collect() []Sample {
	var samples []Sample
	c.fam.each(func(labels map[string]string, v *atomicFloat64) {
		samples = append(samples, Sample{Name: c.fam.name, Labels: labels, Value: v.Load()})
	})
	return samples
}

// Histogram tracks the distribution of observed values in cumulative
// buckets, plus their sum and count.
type Histogram struct {
	help    string
	buckets []float64
	fam     *family[histogramValue]
}

type histogramValue struct {
	counts []atomic.Uint64 // per bucket, not cumulative
	sum    atomicFloat64
	count  atomic.Uint64
}

// HistogramVec is a Histogram bound to one set of label values.
type HistogramVec struct {
	buckets []float64
	v       *histogramValue
}

func (h *Histogram) Name() string     { return h.fam.name }
func (h *Histogram) Help() string     { return h.help }
func (h *Histogram) Type() MetricType { return MetricTypeHistogram }

// WithLabels returns the child for the given label values.
func (h *Histogram) WithLabels(values ...string) (*HistogramVec, error) {
	v, err := h.fam.with(values)
	if err != nil {
		return nil, err
	}
	return &HistogramVec{buckets: h.buckets, v: v}, nil
}

// Observe records a value in a histogram without labels.
func (h *Histogram) Observe(value float64) error {
	vec, err := h.WithLabels()
	if err != nil {
		return err
	}
	vec.Observe(value)
	return nil
}

// Observe records a value.
func (v *HistogramVec) Observe(value float64) {
	i := sort.SearchFloat64s(v.buckets, value)
	if i == len(v.buckets) {
		i-- // NaN
	}
	v.v.counts[i].Add(1)
	v.v.sum.Add(value)
	v.v.count.Add(1)
}

func (h *Histogram) Collect() []Sample {
	var samples []Sample
	h.fam.each(func(labels map[string]string, v *histogramValue) {
		var cumulative uint64
		for i, bound := range h.buckets {
			cumulative += v.counts[i].Load()
			le := make(map[string]string, len(labels)+1)
			for k, val := range labels {
				le[k] = val
			}
			le["le"] = formatFloat(bound)
			samples = append(samples, Sample{Name: h.fam.name + "_bucket", Labels: le, Value: float64(cumulative)})
		}
		samples = append(samples,
			Sample{Name: h.fam.name + "_sum", Labels: labels, Value: v.sum.Load()},
			Sample{Name: h.fam.name + "_count", Labels: labels, Value: float64(v.count.Load())},
		)
	})
	return samples
}

// GaugeFunc is a gauge whose values are computed at collection time.
// fn returns one value per label value; with no label name the map has a
// single entry under "".
type GaugeFunc struct {
	name  string
	help  string
	label string
	fn    func() map[string]float64
}

func (g *GaugeFunc) Name() string     { return g.name }
func (g *GaugeFunc) Help() string     { return g.help }
func (g *GaugeFunc) Type() MetricType { return MetricTypeGauge }

func (g *GaugeFunc) Collect() []Sample {
	values := g.fn()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	samples := make([]Sample, 0, len(keys))
	for _, k := range keys {
		s := Sample{Name: g.name, Value: values[k]}
		if g.label != "" {
			s.Labels = map[string]string{g.label: k}
		}
		samples = append(samples, s)
	}
	return samples
}

// Registry holds all registered metrics.
type Registry struct {
	mu      sync.RWMutex
	metrics []Metric
	names   map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// NewCounter creates and registers a counter.
func (r *Registry) NewCounter(name, help string, labels ...string) *Counter {
	c := &Counter{
		help: help,
		fam:  newFamily(name, labels, func() *atomicFloat64 { return new(atomicFloat64) }),
	}
	r.register(c)
	return c
}

// NewHistogram creates and registers a histogram. A +Inf bucket is
// appended when buckets does not end with one.
func (r *Registry) NewHistogram(name, help string, buckets []float64, labels ...string) *Histogram {
	bounds := append([]float64(nil), buckets...)
	sort.Float64s(bounds)
	if len(bounds) == 0 || !math.IsInf(bounds[len(bounds)-1], 1) {
		bounds = append(bounds, math.Inf(1))
	}
	h := &Histogram{
		help:    help,
		buckets: bounds,
		fam: newFamily(name, labels, func() *histogramValue {
			return &histogramValue{counts: make([]atomic.Uint64, len(bounds))}
		}),
	}
	r.register(h)
	return h
}

// NewGaugeFunc creates and registers a computed gauge.
func (r *Registry) NewGaugeFunc(name, help, label string, fn func() map[string]float64) *GaugeFunc {
	g := &GaugeFunc{name: name, help: help, label: label, fn: fn}
	r.register(g)
	return g
}

// register panics on a duplicate name, which would produce invalid output.
func (r *Registry) register(m Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.names[m.Name()]; exists {
		panic(fmt.Sprintf("%s: %s", ErrDuplicateMetric, m.Name()))
	}
	r.names[m.Name()] = struct{}{}
	r.metrics = append(r.metrics, m)
}

// WriteTo writes every metric in Prometheus text format, in registration
// order. Metrics without samples are skipped.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	r.mu.RLock()
	metrics := append([]Metric(nil), r.metrics...)
	r.mu.RUnlock()

	var b strings.Builder
	for _, m := range metrics {
		samples := m.Collect()
		if len(samples) == 0 {
			continue
		}
		fmt.Fprintf(&b, "# HELP %s %s\n", m.Name(), escapeHelp(m.Help()))
		fmt.Fprintf(&b, "# TYPE %s %s\n", m.Name(), m.Type())
		for _, s := range samples {
			b.WriteString(s.Name)
			if len(s.Labels) > 0 {
				b.WriteByte('{')
				b.WriteString(formatLabels(s.Labels))
				b.WriteByte('}')
			}
			b.WriteByte(' ')
			b.WriteString(formatFloat(s.Value))
			b.WriteByte('\n')
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Handler serves the registry in Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = r.WriteTo(w)
	})
}

// formatLabels renders labels as key="value" pairs sorted by key.
func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + `="` + escapeLabelValue(labels[k]) + `"`
	}
	return strings.Join(parts, ",")
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func escapeHelp(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

func escapeLabelValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}
