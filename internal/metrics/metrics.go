package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus counters for a decode run.
type Metrics struct {
	registry *prometheus.Registry
	decoded  *prometheus.CounterVec
	skipped  *prometheus.CounterVec
	failed   *prometheus.CounterVec
	lines    prometheus.Counter
}

// New builds counters on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		decoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tokenscope_events_decoded_total",
			Help: "Total number of token events decoded",
		}, []string{"event", "standard"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tokenscope_events_skipped_total",
			Help: "Total number of events that matched no enabled token layout",
		}, []string{"event"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tokenscope_events_failed_total",
			Help: "Total number of events that failed validation or decoding",
		}, []string{"stage"}),
		lines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tokenscope_input_lines_total",
			Help: "Total number of input lines read",
		}),
	}
	m.registry.MustRegister(m.decoded, m.skipped, m.failed, m.lines)
	return m
}

// Decoded increments the decoded counter.
func (m *Metrics) Decoded(event, standard string) {
	if m != nil {
		m.decoded.WithLabelValues(event, standard).Inc()
	}
}

// Skipped increments the skipped counter. event must come from a bounded
// set: a token operation name, "system" or "other".
func (m *Metrics) Skipped(event string) {
	if m != nil {
		m.skipped.WithLabelValues(event).Inc()
	}
}

// Failed increments the failure counter for a pipeline stage.
func (m *Metrics) Failed(stage string) {
	if m != nil {
		m.failed.WithLabelValues(stage).Inc()
	}
}

// Line increments the input line counter.
func (m *Metrics) Line() {
	if m != nil {
		m.lines.Inc()
	}
}

// Registry exposes the gatherer for tests and exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values in the node exporter textfile
// format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
