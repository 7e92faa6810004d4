// Package metrics exposes Prometheus instrumentation for the editor:
// mutation throughput, pricing recompute latency, and export outcomes.
package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config labels every metric with the owning service.
type Config struct {
	ServiceName string
	Environment string
}

type EditorMetrics struct {
	mutations        *prometheus.CounterVec
	recomputeSeconds prometheus.Histogram
	elements         prometheus.Gauge
	exports          *prometheus.CounterVec
}

var (
	editorMetricsOnce sync.Once
	editorMetrics     *EditorMetrics
)

// Editor returns the process-wide editor metrics with default labels.
func Editor() *EditorMetrics {
	return EditorWithConfig(Config{})
}

// EditorWithConfig returns the process-wide editor metrics, registering
// them on first use.
func EditorWithConfig(cfg Config) *EditorMetrics {
	editorMetricsOnce.Do(func() {
		editorMetrics = newEditorMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return editorMetrics
}

// ResetEditorMetricsForTest clears the singleton so tests can register
// against their own registry.
func ResetEditorMetricsForTest() {
	editorMetricsOnce = sync.Once{}
	editorMetrics = nil
}

func newEditorMetrics(registerer prometheus.Registerer, cfg Config) *EditorMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "atelier"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	mutations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "atelier_editor_mutations_total",
			Help:        "Total editor mutations by operation.",
			ConstLabels: constLabels,
		},
		[]string{"op"}, // add | update | delete | duplicate | undo | redo | load
	)

	recomputeSeconds := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:        "atelier_pricing_recompute_seconds",
			Help:        "Duration of price breakdown recomputation.",
			Buckets:     prometheus.ExponentialBuckets(0.00001, 4, 10),
			ConstLabels: constLabels,
		},
	)

	elements := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:        "atelier_design_elements",
			Help:        "Current number of elements on the canvas.",
			ConstLabels: constLabels,
		},
	)

	exports := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "atelier_exports_total",
			Help:        "Total design exports by format and result.",
			ConstLabels: constLabels,
		},
		[]string{"format", "result"}, // result: ok | error
	)

	registerer.MustRegister(mutations, recomputeSeconds, elements, exports)

	return &EditorMetrics{
		mutations:        mutations,
		recomputeSeconds: recomputeSeconds,
		elements:         elements,
		exports:          exports,
	}
}

func (m *EditorMetrics) IncMutation(op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op).Inc()
}

func (m *EditorMetrics) ObserveRecompute(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.recomputeSeconds.Observe(elapsed.Seconds())
}

func (m *EditorMetrics) SetElementCount(count int) {
	if m == nil {
		return
	}
	m.elements.Set(float64(count))
}

func (m *EditorMetrics) IncExport(format, result string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format, result).Inc()
}
